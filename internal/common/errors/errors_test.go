// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_CodesAndRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"parse error", NewParseError("bad json"), ErrCodeParseError, false},
		{"snapshot invalid", NewSnapshotInvalidError("no major"), ErrCodeSnapshotInvalid, false},
		{"knowledge load", NewKnowledgeLoadError("file missing"), ErrCodeKnowledgeLoad, true},
		{"search query", NewSearchQueryError("index down"), ErrCodeSearchQueryFailed, true},
		{"internal", NewInternalError(fmt.Errorf("boom")), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestNormalize_PassesThroughStandardError(t *testing.T) {
	orig := NewParseError("bad json")
	assert.Same(t, orig, Normalize(orig))
}

func TestNormalize_WrapsPlainError(t *testing.T) {
	std := Normalize(fmt.Errorf("connection refused"))
	assert.Equal(t, ErrCodeInternal, std.Code)
	assert.Equal(t, "connection refused", std.Details)
	assert.False(t, std.Retryable)
}

func TestConvertToBPMNError(t *testing.T) {
	std := &StandardError{
		Code:      ErrCodeSnapshotInvalid,
		Message:   "student major is required",
		Details:   "empty field",
		Retryable: false,
	}

	bpmnErr := ConvertToBPMNError(std)
	assert.Equal(t, "SNAPSHOT_INVALID", bpmnErr.Code)
	assert.Equal(t, "student major is required", bpmnErr.Message)
	assert.Equal(t, "empty field", bpmnErr.Details)
	assert.False(t, bpmnErr.Retryable)
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:      "SEARCH_TIMEOUT",
		Message:   "search timed out",
		Retryable: true,
		ErrorVariables: map[string]interface{}{
			"index": "courses",
		},
	}

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "SEARCH_TIMEOUT", vars["errorCode"])
	assert.Equal(t, "search timed out", vars["errorMessage"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, "courses", vars["index"])
}

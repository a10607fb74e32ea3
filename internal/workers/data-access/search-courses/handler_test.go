// internal/workers/data-access/search-courses/handler_test.go
package searchcourses

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/knowledge"
)

func newTestHandler(t *testing.T) *Handler {
	courses := &knowledge.CoursesDoc{Courses: []knowledge.Course{
		{ID: "IT001", Name: "Nhập môn lập trình", Credits: 4, Majors: []string{"KHMT"}, Group: knowledge.GroupFoundation},
		{ID: "CS116", Name: "Lập trình Python cho máy học", Credits: 4, Majors: []string{"KHMT"}, Group: knowledge.GroupElective, KnowledgeAreas: []string{"AI", "Machine Learning"}},
		{ID: "CS114", Name: "Máy học", Credits: 4, Majors: []string{"KHMT"}, Group: knowledge.GroupElective, KnowledgeAreas: []string{"Machine Learning"}},
		{ID: "IS201", Name: "Cơ sở dữ liệu phân tán", Credits: 4, Majors: []string{"HTTT"}, Group: knowledge.GroupFoundation},
	}}
	store := knowledge.NewStore(courses, &knowledge.RulesDoc{}, &knowledge.PlansDoc{})
	cfg := &Config{Timeout: 10 * time.Second, Index: "courses", MaxHits: 20}
	return NewHandler(cfg, store, nil, logger.NewTestLogger(t))
}

func TestExecute_MemoryFallbackWithoutClient(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Query: "lập trình"})
	require.NoError(t, err)

	assert.Equal(t, SourceMemory, output.Source)
	ids := make([]string, len(output.Courses))
	for i, c := range output.Courses {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"IT001", "CS116"}, ids)
	assert.Equal(t, 2, output.TotalHits)
}

func TestExecute_QueryMatchesCourseID(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Query: "cs116"})
	require.NoError(t, err)

	if assert.Len(t, output.Courses, 1) {
		assert.Equal(t, "CS116", output.Courses[0].ID)
	}
}

func TestExecute_Filters(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name  string
		input Input
		want  []string
	}{
		{"by major", Input{Major: "HTTT"}, []string{"IS201"}},
		{"by course group", Input{CourseGroup: knowledge.GroupElective}, []string{"CS116", "CS114"}},
		{"by knowledge area", Input{KnowledgeArea: "Machine Learning"}, []string{"CS116", "CS114"}},
		{"area and query combined", Input{KnowledgeArea: "AI", Query: "python"}, []string{"CS116"}},
		{"no match", Input{Query: "hóa học"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)

			var ids []string
			for _, c := range output.Courses {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestExecute_LimitBoundsResults(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Limit: 2})
	require.NoError(t, err)

	assert.Len(t, output.Courses, 2)

	// Zero and oversized limits fall back to the configured maximum.
	output, err = h.Execute(context.Background(), &Input{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, output.Courses, 4)
}

func TestSearchError_CodeMapping(t *testing.T) {
	timeoutErr := searchError(fmt.Errorf("%w: index courses", ErrSearchTimeout))
	assert.Equal(t, apperrors.ErrCodeSearchTimeout, timeoutErr.Code)
	assert.True(t, timeoutErr.Retryable)

	queryErr := searchError(fmt.Errorf("%w: bad request", ErrSearchQueryFailed))
	assert.Equal(t, apperrors.ErrCodeSearchQueryFailed, queryErr.Code)
	assert.True(t, queryErr.Retryable)
}

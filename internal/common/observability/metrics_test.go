// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordedJobsReachPrometheusExporter(t *testing.T) {
	obs := New("advisor-workers-test")
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "check-eligibility")
	obs.RecordJobDuration(ctx, "check-eligibility", 25*time.Millisecond)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "advising_jobs_processed_total")
}

func TestZeroValueObservabilityIsSafe(t *testing.T) {
	var obs Observability

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "check-eligibility")
	obs.RecordJobDuration(ctx, "check-eligibility", time.Millisecond)
	obs.Shutdown()
}

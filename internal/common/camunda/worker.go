// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"advisor-workers/internal/common/config"
)

// JobHandler is the signature every advising worker exposes to Zeebe.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// JobRecorder receives a count and a duration for every job a worker
// handles, success or failure.
type JobRecorder interface {
	RecordJobProcessed(ctx context.Context, taskType string)
	RecordJobDuration(ctx context.Context, taskType string, d time.Duration)
}

type AdvisorWorker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

// NewWorker opens a job worker for taskType and routes jobs to handler,
// recording each processed job through rec.
func NewWorker(
	client zbc.Client,
	taskType string,
	cfg config.WorkerConfig,
	handler JobHandler,
	rec JobRecorder,
	logger *zap.Logger,
) *AdvisorWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(instrument(taskType, handler, rec)).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(time.Duration(cfg.Timeout) * time.Millisecond).
		Open()

	logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", cfg.MaxJobsActive),
		zap.Int("timeout_ms", cfg.Timeout),
	)

	return &AdvisorWorker{
		worker:   jobWorker,
		logger:   logger,
		taskType: taskType,
	}
}

// instrument wraps handler.Handle so every job is counted and timed.
func instrument(taskType string, handler JobHandler, rec JobRecorder) func(worker.JobClient, entities.Job) {
	if rec == nil {
		return handler.Handle
	}
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handler.Handle(client, job)

		ctx := context.Background()
		rec.RecordJobDuration(ctx, taskType, time.Since(start))
		rec.RecordJobProcessed(ctx, taskType)
	}
}

// Stop closes the underlying Zeebe job worker, letting in-flight jobs
// finish.
func (w *AdvisorWorker) Stop(ctx context.Context) {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
}

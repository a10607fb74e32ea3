// internal/workers/advising/check-eligibility/handler.go
package checkeligibility

import (
	"context"
	"encoding/json"
	"time"

	"advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/metrics"
	"advisor-workers/internal/engine"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "check-eligibility"
)

type Handler struct {
	config *Config
	engine *engine.Engine
	logger logger.Logger
}

func NewHandler(config *Config, eng *engine.Engine, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: eng,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	requestID := uuid.NewString()
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":    job.Key,
		"requestId": requestID,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, errors.NewParseError(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Student.Major == "" {
		return nil, &errors.StandardError{
			Code:      errors.ErrCodeSnapshotInvalid,
			Message:   "student major is required",
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	eligible := h.engine.EligibleCourses(&input.Student)
	if input.PrioritizeByPlan {
		eligible = h.engine.PrioritizeByPlan(
			eligible, input.Student.CurrentSemester, input.Student.Major, input.Student.Cohort)
	}

	var failedPriority []string
	for _, c := range eligible {
		if c.IsFailed && c.IsPrerequisiteForOthers {
			failedPriority = append(failedPriority, c.ID)
		}
	}

	h.logger.Info("eligibility checked", map[string]interface{}{
		"major":          input.Student.Major,
		"eligibleCount":  len(eligible),
		"failedPriority": len(failedPriority),
	})

	return &Output{
		EligibleCourses: eligible,
		EligibleCount:   len(eligible),
		FailedPriority:  failedPriority,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	bpmnErr := errors.ConvertToBPMNError(errors.Normalize(err))
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retryable":    bpmnErr.Retryable,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()

	_, sendErr := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		Send(context.Background())
	if sendErr != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": sendErr,
		})
	}
}

// internal/workers/advising/reasoning-trace/handler.go
package reasoningtrace

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
)

const (
	TaskType = "reasoning-trace"
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
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey": job.Key,
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

// Execute replays the full pipeline: eligibility, ranking, then the trace
// describing both, plus the activated hard rules for the target courses.
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
	scored := h.engine.RankElectives(&input.Student)
	trace := h.engine.ReasoningTrace(&input.Student, eligible, scored)

	targets := input.TargetCourses
	if len(targets) == 0 {
		for _, c := range eligible {
			targets = append(targets, c.ID)
		}
	}
	activated := h.engine.ActivatedRules(&input.Student, targets)

	h.logger.Info("reasoning trace built", map[string]interface{}{
		"steps":          len(trace),
		"activatedRules": len(activated),
	})

	return &Output{
		Trace:          trace,
		ActivatedRules: activated,
		EligibleCount:  len(eligible),
		ScoredCount:    len(scored),
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

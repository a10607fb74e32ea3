// internal/workers/advising/rank-electives/handler.go
package rankelectives

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/metrics"
	"advisor-workers/internal/engine"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "rank-electives"
)

type Handler struct {
	config *Config
	engine *engine.Engine
	redis  *redis.Client
	logger logger.Logger
}

// NewHandler builds the ranking worker. redis may be nil; caching is then
// skipped entirely.
func NewHandler(config *Config, eng *engine.Engine, rdb *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: eng,
		redis:  rdb,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Student.Major == "" {
		return nil, &errors.StandardError{
			Code:      errors.ErrCodeSnapshotInvalid,
			Message:   "student major is required",
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	cacheKey := h.cacheKey(&input.Student)
	if cached := h.fromCache(ctx, cacheKey); cached != nil {
		cached.CacheHit = true
		metrics.RecommendationCacheHits.WithLabelValues("hit").Inc()
		return h.limit(cached, input.Limit), nil
	}
	metrics.RecommendationCacheHits.WithLabelValues("miss").Inc()

	scored := h.engine.RankElectives(&input.Student)
	ability := h.engine.InferAbility(&input.Student)

	output := &Output{
		Recommendations: scored,
		Ability:         ability,
		ScoredCount:     len(scored),
	}
	h.toCache(ctx, cacheKey, output)

	h.logger.Info("electives ranked", map[string]interface{}{
		"major":       input.Student.Major,
		"scoredCount": len(scored),
	})

	return h.limit(output, input.Limit), nil
}

// cacheKey hashes the full snapshot; any change in the student state yields
// a different key.
func (h *Handler) cacheKey(student interface{}) string {
	data, _ := json.Marshal(student)
	sum := sha256.Sum256(data)
	return "advisor:recommendations:" + hex.EncodeToString(sum[:])
}

func (h *Handler) fromCache(ctx context.Context, key string) *Output {
	if h.redis == nil {
		return nil
	}
	val, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var output Output
	if err := json.Unmarshal([]byte(val), &output); err != nil {
		return nil
	}
	return &output
}

func (h *Handler) toCache(ctx context.Context, key string, output *Output) {
	if h.redis == nil {
		return
	}
	data, err := json.Marshal(output)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("failed to cache recommendations", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) limit(output *Output, limit int) *Output {
	if limit > 0 && len(output.Recommendations) > limit {
		output.Recommendations = output.Recommendations[:limit]
	}
	return output
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

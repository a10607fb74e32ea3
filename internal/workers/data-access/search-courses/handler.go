// internal/workers/data-access/search-courses/handler.go
package searchcourses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/metrics"
	"advisor-workers/internal/knowledge"
)

const (
	TaskType = "search-courses"

	SourceElasticsearch = "elasticsearch"
	SourceMemory        = "memory"
)

var (
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
	ErrSearchTimeout     = errors.New("SEARCH_TIMEOUT")
)

// Handler searches the course catalog. When an Elasticsearch client is
// configured it queries the courses index; otherwise, or when the index is
// unreachable, it falls back to an in-memory scan over the knowledge base.
type Handler struct {
	config *Config
	store  *knowledge.Store
	client *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, store *knowledge.Store, client *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  store,
		client: client,
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
		h.failJob(client, job, apperrors.NewParseError(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, searchError(err))
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	limit := input.Limit
	if limit <= 0 || limit > h.config.MaxHits {
		limit = h.config.MaxHits
	}

	if h.client != nil {
		courses, err := h.searchElasticsearch(ctx, input, limit)
		if err == nil {
			return &Output{Courses: courses, TotalHits: len(courses), Source: SourceElasticsearch}, nil
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrSearchTimeout
		}
		h.logger.Warn("elasticsearch search failed, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	courses := h.searchMemory(input, limit)
	return &Output{Courses: courses, TotalHits: len(courses), Source: SourceMemory}, nil
}

func (h *Handler) searchElasticsearch(ctx context.Context, input *Input, limit int) ([]knowledge.Course, error) {
	boolQuery := map[string]interface{}{}
	if input.Query != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  input.Query,
					"fields": []string{"course_name^3", "course_id^2", "knowledge_area"},
					"type":   "best_fields",
				},
			},
		}
	}

	filters := []interface{}{}
	if input.Major != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"major": input.Major},
		})
	}
	if input.CourseGroup != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"course_group.keyword": input.CourseGroup},
		})
	}
	if input.KnowledgeArea != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"knowledge_area": input.KnowledgeArea},
		})
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}

	size := limit
	req := esapi.SearchRequest{
		Index: []string{h.config.Index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, h.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: %s", ErrSearchQueryFailed, string(msg))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source knowledge.Course `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchQueryFailed, err)
	}

	courses := make([]knowledge.Course, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		courses = append(courses, hit.Source)
	}
	return courses, nil
}

// searchMemory scans the catalog in load order so results are deterministic.
func (h *Handler) searchMemory(input *Input, limit int) []knowledge.Course {
	query := strings.ToLower(input.Query)
	matched := make([]knowledge.Course, 0, limit)

	for _, course := range h.store.Courses() {
		if input.Major != "" && !course.HasMajor(input.Major) {
			continue
		}
		if input.CourseGroup != "" && course.Group != input.CourseGroup {
			continue
		}
		if input.KnowledgeArea != "" && !hasArea(&course, input.KnowledgeArea) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(course.Name), query) &&
			!strings.Contains(strings.ToLower(course.ID), query) {
			continue
		}
		matched = append(matched, course)
		if len(matched) >= limit {
			break
		}
	}
	return matched
}

func hasArea(c *knowledge.Course, area string) bool {
	for _, a := range c.KnowledgeAreas {
		if strings.EqualFold(a, area) {
			return true
		}
	}
	return false
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

// searchError maps the package sentinels onto standard error codes so the
// thrown BPMN error carries the right code and retryability.
func searchError(err error) *apperrors.StandardError {
	code := apperrors.ErrCodeSearchQueryFailed
	if errors.Is(err, ErrSearchTimeout) {
		code = apperrors.ErrCodeSearchTimeout
	}
	return &apperrors.StandardError{
		Code:      code,
		Message:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	bpmnErr := apperrors.ConvertToBPMNError(apperrors.Normalize(err))
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

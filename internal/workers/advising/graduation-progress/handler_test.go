// internal/workers/advising/graduation-progress/handler_test.go
package graduationprogress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/engine"
	"advisor-workers/internal/knowledge"
	"advisor-workers/internal/models"
)

func newTestHandler(t *testing.T) *Handler {
	courses := &knowledge.CoursesDoc{Courses: []knowledge.Course{
		{ID: "IT001", Name: "Nhập môn lập trình", Credits: 4, Majors: []string{"KHMT"}, Group: knowledge.GroupFoundation},
		{ID: "MA006", Name: "Giải tích", Credits: 4, Majors: []string{"KHMT"}, Group: knowledge.GroupGeneral},
		{ID: "SE104", Name: "Nhập môn công nghệ phần mềm", Credits: 4, Majors: []string{"KHMT"}, Group: knowledge.GroupSpecialization},
	}}
	rules := &knowledge.RulesDoc{
		GraduationRequirements: map[string]knowledge.GraduationRequirement{
			"KHMT_K2024": {
				TotalCredits: 120,
				Categories: map[string]knowledge.CategoryRequirement{
					knowledge.CategoryGeneral:        {Total: 40},
					knowledge.CategoryFoundation:     {MinCredits: 40},
					knowledge.CategorySpecialization: {MinCredits: 16},
					knowledge.CategoryGraduation:     {Credits: 14},
					knowledge.CategoryFreeElective:   {MinCredits: 10},
				},
			},
		},
	}
	plans := &knowledge.PlansDoc{
		CohortMappings: map[string]knowledge.CohortInfo{
			"K2024": {EnrollmentYear: 2024, Curriculum: "K2024"},
		},
		TeachingPlans: map[string]knowledge.TeachingPlan{},
	}
	eng := engine.New(knowledge.NewStore(courses, rules, plans), logger.NewNoOpLogger())
	return NewHandler(&Config{Timeout: 10 * time.Second}, eng, logger.NewTestLogger(t))
}

func TestExecute_RequiresMajor(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	assert.ErrorContains(t, err, "major")
}

func TestExecute_PercentRounding(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Student: models.StudentSnapshot{
		Major:            "KHMT",
		Cohort:           "K2024",
		CompletedCourses: []string{"IT001", "MA006", "SE104"},
	}})
	require.NoError(t, err)

	// 12 of 120 credits, rounded to one decimal.
	assert.Equal(t, 12, output.Progress.TotalCompleted)
	assert.Equal(t, 120, output.Progress.TotalRequired)
	assert.InDelta(t, 10.0, output.PercentComplete, 1e-9)

	assert.Equal(t, 4, output.Progress.Categories[knowledge.CategoryFoundation].Completed)
	assert.Equal(t, 4, output.Progress.Categories[knowledge.CategoryGeneral].Completed)
	assert.Equal(t, 4, output.Progress.Categories[knowledge.CategorySpecialization].Completed)
}

func TestExecute_EmptyTranscript(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Student: models.StudentSnapshot{
		Major:  "KHMT",
		Cohort: "K2024",
	}})
	require.NoError(t, err)

	assert.Zero(t, output.Progress.TotalCompleted)
	assert.Zero(t, output.PercentComplete)
	assert.Equal(t, 40, output.Progress.Categories[knowledge.CategoryGeneral].Required)
}

// internal/engine/progress_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"advisor-workers/internal/knowledge"
)

func TestGraduationProgress_SpecializationOverflowCascade(t *testing.T) {
	e := testEngine()

	// 20 specialization credits against a 16-credit requirement, 4
	// graduation credits against 10. The 4 excess specialization credits
	// fill the graduation shortfall; nothing reaches free electives.
	snap := freshSnapshot()
	snap.CompletedCourses = []string{
		"IT001",
		"SE104", "CS331", "CS336", "CS338", "CS341",
		"SE501",
	}

	progress := e.GraduationProgress(snap)

	spec := progress.Categories[knowledge.CategorySpecialization]
	assert.Equal(t, 20, spec.RawCompleted)
	assert.Equal(t, 16, spec.Completed)
	assert.Equal(t, 16, spec.Required)

	grad := progress.Categories[knowledge.CategoryGraduation]
	assert.Equal(t, 4, grad.RawCompleted)
	assert.Equal(t, 8, grad.Completed)
	assert.Equal(t, 10, grad.Required)

	free := progress.Categories[knowledge.CategoryFreeElective]
	assert.Equal(t, 0, free.Completed)

	// Transfers redistribute between categories, the literal total is
	// untouched.
	assert.Equal(t, 28, progress.TotalCompleted)
	sum := 0
	for _, cat := range progress.Categories {
		sum += cat.Completed
	}
	assert.Equal(t, progress.TotalCompleted, sum)
}

func TestGraduationProgress_FoundationOverflowToFreeElectives(t *testing.T) {
	e := testEngine()

	// K2022 requires only 8 foundation credits; the 12 completed overflow
	// by 4, all of which land in free electives.
	snap := freshSnapshot()
	snap.Cohort = "K2022"
	snap.CompletedCourses = []string{"IT001", "IT002", "IT003"}

	progress := e.GraduationProgress(snap)

	foundation := progress.Categories[knowledge.CategoryFoundation]
	assert.Equal(t, 12, foundation.RawCompleted)
	assert.Equal(t, 8, foundation.Completed)

	free := progress.Categories[knowledge.CategoryFreeElective]
	assert.Equal(t, 4, free.Completed)
	assert.Equal(t, 0, free.RawCompleted)

	assert.Equal(t, 12, progress.TotalCompleted)
}

func TestGraduationProgress_InterdisciplinaryAlias(t *testing.T) {
	e := testEngine()

	snap := freshSnapshot()
	snap.Cohort = "K2022"

	progress := e.GraduationProgress(snap)

	// The K2022 table files free electives under tu_chon_lien_nganh.
	assert.Equal(t, 6, progress.Categories[knowledge.CategoryFreeElective].Required)
	assert.Equal(t, 120, progress.TotalRequired)
}

func TestGraduationProgress_DefaultsForUnknownCurriculum(t *testing.T) {
	e := testEngine()

	snap := freshSnapshot()
	snap.Major = "HTTT"
	snap.CompletedCourses = []string{"IS201"}

	progress := e.GraduationProgress(snap)

	assert.Equal(t, knowledge.DefaultTotalCredits, progress.TotalRequired)
	for cat, want := range knowledge.DefaultCategoryRequirements {
		assert.Equal(t, want, progress.Categories[cat].Required, cat)
	}
	assert.Equal(t, 4, progress.Categories[knowledge.CategoryFoundation].Completed)
}

func TestGraduationProgress_UnknownCoursesIgnored(t *testing.T) {
	e := testEngine()

	snap := freshSnapshot()
	snap.CompletedCourses = []string{"IT001", "XX999"}

	progress := e.GraduationProgress(snap)

	assert.Equal(t, 4, progress.TotalCompleted)
}

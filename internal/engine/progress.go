// internal/engine/progress.go
package engine

import (
	"advisor-workers/internal/knowledge"
	"advisor-workers/internal/models"
)

// categoryOrder fixes iteration order for the progress output.
var categoryOrder = []string{
	knowledge.CategoryGeneral,
	knowledge.CategoryFoundation,
	knowledge.CategorySpecialization,
	knowledge.CategoryGraduation,
	knowledge.CategoryFreeElective,
}

// GraduationProgress aggregates completed credits into the five degree
// categories and applies the overflow-transfer cascade: specialization
// credits beyond the requirement fill the graduation shortfall first, the
// remainder flows to free electives; excess foundation credits flow
// entirely to free electives. TotalCompleted stays the literal credit sum,
// transfers only redistribute the category accounting.
func (e *Engine) GraduationProgress(snap *models.StudentSnapshot) models.GraduationProgress {
	key := e.CurriculumKey(snap.Cohort, snap.Major)
	reqs := e.store.GraduationRequirement(key)

	required := map[string]int{}
	for _, cat := range categoryOrder {
		r := reqs.Categories[cat].Required()
		if cat == knowledge.CategoryFreeElective && r == 0 {
			// Older curricula file free electives under an interdisciplinary
			// heading.
			r = reqs.Categories["tu_chon_lien_nganh"].Required()
		}
		if r == 0 {
			r = knowledge.DefaultCategoryRequirements[cat]
		}
		required[cat] = r
	}

	raw := map[string]int{}
	totalCompleted := 0
	for _, courseID := range snap.CompletedCourses {
		course, ok := e.store.Course(courseID)
		if !ok {
			continue
		}
		totalCompleted += course.Credits
		raw[categoryForGroup(course.Group)] += course.Credits
	}

	final := map[string]int{}
	for _, cat := range categoryOrder {
		final[cat] = raw[cat]
	}

	// Specialization excess: cap, fill graduation shortfall, rest to free.
	if excess := raw[knowledge.CategorySpecialization] - required[knowledge.CategorySpecialization]; excess > 0 {
		final[knowledge.CategorySpecialization] = required[knowledge.CategorySpecialization]

		if shortfall := required[knowledge.CategoryGraduation] - final[knowledge.CategoryGraduation]; shortfall > 0 {
			transfer := min(excess, shortfall)
			final[knowledge.CategoryGraduation] += transfer
			excess -= transfer
		}
		if excess > 0 {
			final[knowledge.CategoryFreeElective] += excess
		}
	}

	// Foundation excess flows entirely to free electives.
	if excess := raw[knowledge.CategoryFoundation] - required[knowledge.CategoryFoundation]; excess > 0 {
		final[knowledge.CategoryFoundation] = required[knowledge.CategoryFoundation]
		final[knowledge.CategoryFreeElective] += excess
	}

	totalRequired := reqs.TotalCredits
	if totalRequired == 0 {
		totalRequired = knowledge.DefaultTotalCredits
	}

	progress := models.GraduationProgress{
		TotalRequired:  totalRequired,
		TotalCompleted: totalCompleted,
		Categories:     make(map[string]models.CategoryProgress, len(categoryOrder)),
	}
	for _, cat := range categoryOrder {
		progress.Categories[cat] = models.CategoryProgress{
			Completed:    final[cat],
			Required:     required[cat],
			RawCompleted: raw[cat],
		}
	}
	return progress
}

// categoryForGroup maps a course group to its credit category. Unknown or
// empty groups count as free electives.
func categoryForGroup(group string) string {
	switch group {
	case knowledge.GroupGeneral:
		return knowledge.CategoryGeneral
	case knowledge.GroupFoundation:
		return knowledge.CategoryFoundation
	case knowledge.GroupSpecialization:
		return knowledge.CategorySpecialization
	case knowledge.GroupGraduation:
		return knowledge.CategoryGraduation
	default:
		return knowledge.CategoryFreeElective
	}
}

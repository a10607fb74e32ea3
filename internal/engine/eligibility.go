// internal/engine/eligibility.go
package engine

import (
	"advisor-workers/internal/knowledge"
	"advisor-workers/internal/models"
)

// Course codes removed from the catalog but still present in historical
// transcripts. Never offered as candidates.
var removedCourses = map[string]bool{
	"PE012": true,
}

// CheckPrerequisites reports whether every prerequisite of the course is in
// the completed set, along with the missing ids for diagnostics. Unknown
// course ids are never eligible.
func (e *Engine) CheckPrerequisites(courseID string, completed []string) (bool, []string) {
	course, ok := e.store.Course(courseID)
	if !ok {
		return false, nil
	}

	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	var missing []string
	for _, pre := range course.Prerequisites {
		if !done[pre] {
			missing = append(missing, pre)
		}
	}
	return len(missing) == 0, missing
}

// EligibleCourses determines every course the student can legally take next.
// Failed courses that block other courses as prerequisites come first; the
// remainder follows catalog order. Ranking happens downstream in the scorer.
func (e *Engine) EligibleCourses(snap *models.StudentSnapshot) []models.EligibleCourse {
	slotGroups := e.electiveSlotGroups(snap.Major, snap.Cohort)

	var failedPriority, eligible []models.EligibleCourse

	for _, course := range e.store.Courses() {
		if removedCourses[course.ID] {
			continue
		}
		if snap.HasCompleted(course.ID) || snap.IsTaking(course.ID) {
			continue
		}
		if !course.HasMajor(snap.Major) {
			continue
		}

		isFailed := snap.HasFailed(course.ID)

		// A failed elective need not be retaken when another choice in the
		// same slot is already completed or in progress.
		if isFailed {
			if alternatives, ok := slotGroups[course.ID]; ok {
				satisfied := false
				for _, alt := range alternatives {
					if alt == course.ID {
						continue
					}
					if snap.HasCompleted(alt) || snap.IsTaking(alt) {
						satisfied = true
						break
					}
				}
				if satisfied {
					continue
				}
			}
		}

		ok, _ := e.CheckPrerequisites(course.ID, snap.CompletedCourses)
		if !ok {
			continue
		}

		candidate := models.EligibleCourse{
			Course:                  course,
			IsFailed:                isFailed,
			IsPrerequisiteForOthers: e.isPrerequisiteForOthers(course.ID),
		}
		if candidate.IsFailed && candidate.IsPrerequisiteForOthers {
			failedPriority = append(failedPriority, candidate)
		} else {
			eligible = append(eligible, candidate)
		}
	}

	e.logger.Debug("eligibility evaluated", map[string]interface{}{
		"major":          snap.Major,
		"failedPriority": len(failedPriority),
		"eligible":       len(eligible),
	})

	return append(failedPriority, eligible...)
}

// electiveSlotGroups flattens every elective slot in the curriculum into a
// map from choice id to the full alternative set of its slot.
func (e *Engine) electiveSlotGroups(major, cohort string) map[string][]string {
	key := e.CurriculumKey(cohort, major)
	plan, _ := e.store.TeachingPlan(key)

	groups := map[string][]string{}
	for _, semester := range plan.Semesters {
		for _, entry := range semester.Courses {
			if !entry.IsSlot() {
				continue
			}
			for _, choice := range entry.Choices {
				groups[choice] = entry.Choices
			}
		}
	}
	return groups
}

func (e *Engine) isPrerequisiteForOthers(courseID string) bool {
	for _, course := range e.store.Courses() {
		for _, pre := range course.Prerequisites {
			if pre == courseID {
				return true
			}
		}
	}
	return false
}

// CheckSpecialRules applies the fixed-semester hard rules: English sequence
// courses are locked to their academic year, PE courses to their term
// parity, and military education to year 1 HK1. Returns false when the
// course is invalid for the given year and term.
func (e *Engine) CheckSpecialRules(courseID string, year int, semester string) bool {
	switch courseID {
	case "ENG01":
		return year <= 1
	case "ENG02":
		return year <= 2
	case "ENG03":
		return year <= 3
	case "PE231":
		return semester == knowledge.SemesterOdd
	case "PE232":
		return semester == knowledge.SemesterEven
	case "ME001":
		return year == 1 && semester == knowledge.SemesterOdd
	}
	return true
}

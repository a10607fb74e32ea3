// internal/engine/curriculum.go
package engine

import (
	"fmt"
	"strconv"

	"advisor-workers/internal/knowledge"
	"advisor-workers/internal/models"
)

// DetermineCohort maps an enrollment year to its cohort code. Unmapped years
// fall back to the default (most recent) cohort.
func (e *Engine) DetermineCohort(enrollmentYear int) string {
	for cohort, info := range e.store.CohortMappings() {
		if info.EnrollmentYear == enrollmentYear {
			return cohort
		}
	}
	return knowledge.DefaultCohort
}

// CurriculumKey combines a major with the cohort's curriculum version, the
// key used for teaching plans and graduation requirements. Unknown cohorts
// fall back to the latest curriculum version.
func (e *Engine) CurriculumKey(cohort, major string) string {
	if info, ok := e.store.CohortMappings()[cohort]; ok {
		return fmt.Sprintf("%s_%s", major, info.Curriculum)
	}
	return fmt.Sprintf("%s_%s", major, knowledge.DefaultCurriculumVersion)
}

// SemesterCourses expands one semester of the teaching plan into concrete
// compulsory courses, electives and elective slots. Slot choices that do not
// resolve in the catalog are dropped; entries without an id become
// placeholder courses. List order follows plan entry order.
func (e *Engine) SemesterCourses(major string, semesterNumber int, cohort string) models.SemesterCourses {
	key := e.CurriculumKey(cohort, major)
	plan, _ := e.store.TeachingPlan(key)
	semester := plan.Semesters[strconv.Itoa(semesterNumber)]

	out := models.SemesterCourses{TotalCredits: semester.TotalCredits}

	for _, entry := range semester.Courses {
		if entry.IsSlot() {
			credits := entry.Credits
			if credits == 0 {
				credits = knowledge.DefaultCredits
			}
			slot := models.ElectiveSlot{SlotName: entry.ElectiveSlot, Credits: credits}
			for _, choiceID := range entry.Choices {
				course, ok := e.store.Course(choiceID)
				if !ok {
					continue
				}
				slot.Choices = append(slot.Choices, models.PlannedCourse{
					Course:   *course,
					PlanType: "elective",
				})
			}
			out.Slots = append(out.Slots, slot)
			// One representative line item so callers can display the slot
			// as a single entry.
			if len(slot.Choices) > 0 {
				rep := slot.Choices[0]
				rep.IsElectiveSlot = true
				rep.SlotName = slot.SlotName
				rep.AllChoices = make([]string, len(slot.Choices))
				for i, c := range slot.Choices {
					rep.AllChoices[i] = c.ID
				}
				out.Elective = append(out.Elective, rep)
			}
			continue
		}

		if entry.ID == "" || entry.ID == "-" {
			credits := entry.Credits
			if credits == 0 {
				credits = knowledge.DefaultCredits
			}
			name := entry.Name
			if name == "" {
				name = entry.Placeholder
			}
			if name == "" {
				name = knowledge.PlaceholderName
			}
			placeholder := models.PlannedCourse{
				Course: knowledge.Course{
					ID:      entry.ID,
					Name:    name,
					Credits: credits,
				},
				PlanType:      entry.Type,
				IsPlaceholder: true,
			}
			if entry.Type == "compulsory" {
				out.Compulsory = append(out.Compulsory, placeholder)
			} else {
				out.Elective = append(out.Elective, placeholder)
			}
			continue
		}

		course, ok := e.store.Course(entry.ID)
		if !ok {
			// Unresolvable plan ids are a soft data-quality gap, skipped.
			continue
		}
		planned := models.PlannedCourse{Course: *course, PlanType: entry.Type}
		if entry.Type == "compulsory" {
			out.Compulsory = append(out.Compulsory, planned)
		} else {
			out.Elective = append(out.Elective, planned)
		}
	}

	return out
}

// OfferedSemesterTypes reports in which term parities (HK1/HK2) a course is
// offered, scanning every semester of the curriculum including elective slot
// choices. Courses never found in the plan are assumed offered in both
// terms, which avoids false negatives in retake scheduling.
func (e *Engine) OfferedSemesterTypes(courseID, major, cohort string) []string {
	key := e.CurriculumKey(cohort, major)
	plan, _ := e.store.TeachingPlan(key)

	found := map[string]bool{}
	for semStr, semester := range plan.Semesters {
		num, err := strconv.Atoi(semStr)
		if err != nil {
			continue
		}
		semType := parityType(num)
		for _, entry := range semester.Courses {
			if entry.ID == courseID {
				found[semType] = true
			}
			for _, choice := range entry.Choices {
				if choice == courseID {
					found[semType] = true
				}
			}
		}
	}

	if len(found) == 0 {
		return []string{knowledge.SemesterOdd, knowledge.SemesterEven}
	}
	out := make([]string, 0, 2)
	for _, t := range []string{knowledge.SemesterOdd, knowledge.SemesterEven} {
		if found[t] {
			out = append(out, t)
		}
	}
	return out
}

// NextRetakeSemester returns the next semester number in which a failed
// course can be retaken. Courses offered in both parities can be retaken
// immediately; otherwise the scan walks forward to the first matching
// parity up to semester 8, defaulting to a two-semester skip.
func (e *Engine) NextRetakeSemester(courseID string, currentSemester int, major, cohort string) int {
	offered := e.OfferedSemesterTypes(courseID, major, cohort)
	if len(offered) == 2 {
		return currentSemester + 1
	}

	offeredType := parityType(currentSemester)
	if len(offered) == 1 {
		offeredType = offered[0]
	}
	for next := currentSemester + 1; next <= 8; next++ {
		if parityType(next) == offeredType {
			return next
		}
	}
	return currentSemester + 2
}

// PrioritizeByPlan orders eligible courses by teaching-plan priority:
// planned compulsory, planned elective, other general/foundation courses,
// then everything else. Relative order inside each bucket is preserved.
func (e *Engine) PrioritizeByPlan(eligible []models.EligibleCourse, semesterNumber int, major, cohort string) []models.EligibleCourse {
	planned := e.SemesterCourses(major, semesterNumber, cohort)
	compulsoryIDs := map[string]bool{}
	for _, c := range planned.Compulsory {
		compulsoryIDs[c.ID] = true
	}
	electiveIDs := map[string]bool{}
	for _, c := range planned.Elective {
		electiveIDs[c.ID] = true
	}

	var p1, p2, p3, p4 []models.EligibleCourse
	for _, course := range eligible {
		switch {
		case compulsoryIDs[course.ID]:
			p1 = append(p1, course)
		case electiveIDs[course.ID]:
			p2 = append(p2, course)
		case course.Group == knowledge.GroupGeneral || course.Group == knowledge.GroupFoundation:
			p3 = append(p3, course)
		default:
			p4 = append(p4, course)
		}
	}

	out := make([]models.EligibleCourse, 0, len(eligible))
	out = append(out, p1...)
	out = append(out, p2...)
	out = append(out, p3...)
	return append(out, p4...)
}

// CurriculumPlan builds the full recommended plan for a major keyed
// "Year N - HKx", using the catalog's recommended year/semester fields.
func (e *Engine) CurriculumPlan(major string) map[string][]knowledge.Course {
	plan := map[string][]knowledge.Course{}
	for year := 1; year <= 4; year++ {
		for _, semester := range []string{knowledge.SemesterOdd, knowledge.SemesterEven} {
			key := fmt.Sprintf("Year %d - %s", year, semester)
			for _, c := range e.store.Courses() {
				if c.RecYear != year || c.RecSemester != semester {
					continue
				}
				switch c.Group {
				case knowledge.GroupGeneral, knowledge.GroupFoundation, knowledge.GroupSpecialization:
					if c.HasMajor(major) {
						plan[key] = append(plan[key], c)
					}
				}
			}
			if len(plan[key]) == 0 {
				delete(plan, key)
			}
		}
	}
	return plan
}

// HasElectives reports whether any elective is recommended for the given
// year and term.
func (e *Engine) HasElectives(major string, year int, semester string) bool {
	for _, c := range e.store.Courses() {
		if c.RecYear != year || c.RecSemester != semester || !c.HasMajor(major) {
			continue
		}
		if c.Group == knowledge.GroupElective || c.Group == knowledge.GroupFreeElective {
			return true
		}
	}
	return false
}

func parityType(semesterNumber int) string {
	if semesterNumber%2 == 1 {
		return knowledge.SemesterOdd
	}
	return knowledge.SemesterEven
}

// internal/engine/trace.go
package engine

import (
	"fmt"
	"strings"

	"advisor-workers/internal/knowledge"
	"advisor-workers/internal/models"
)

// ReasoningTrace replays the recommendation pipeline as an ordered, bounded
// explanation. It makes no new decisions; every step re-describes outputs of
// the eligibility, inference and scoring stages.
func (e *Engine) ReasoningTrace(snap *models.StudentSnapshot, eligible []models.EligibleCourse, scored []models.CourseScore) []models.TraceStep {
	var trace []models.TraceStep

	// Step 1: prerequisite checks on the leading candidates.
	var prereqResults []string
	for i, course := range eligible {
		if i >= 10 {
			break
		}
		ok, _ := e.CheckPrerequisites(course.ID, snap.CompletedCourses)
		if ok {
			prereqResults = append(prereqResults, fmt.Sprintf("%s: prerequisites satisfied", course.ID))
		}
	}
	if len(prereqResults) > 5 {
		prereqResults = prereqResults[:5]
	}
	trace = append(trace, models.TraceStep{
		Step:        1,
		RuleID:      "R001",
		RuleName:    "Prerequisite check",
		Description: e.store.RuleDescription("R001"),
		Result:      prereqResults,
		Summary:     fmt.Sprintf("%d courses satisfy prerequisites", len(eligible)),
	})

	// Step 2: failed-course alternative resolution.
	slotGroups := e.electiveSlotGroups(snap.Major, snap.Cohort)
	var altResults []string
	for _, failedID := range snap.FailedCourses {
		resolved := ""
		if alternatives, ok := slotGroups[failedID]; ok {
			for _, alt := range alternatives {
				if alt == failedID {
					continue
				}
				if snap.HasCompleted(alt) || snap.IsTaking(alt) {
					resolved = alt
					break
				}
			}
		}
		if resolved != "" {
			altResults = append(altResults, fmt.Sprintf("%s: skipped, alternative %s satisfied", failedID, resolved))
		} else {
			altResults = append(altResults, fmt.Sprintf("%s: retake required", failedID))
		}
	}
	altSummary := "no failed courses"
	if len(snap.FailedCourses) > 0 {
		altSummary = fmt.Sprintf("%d failed courses checked", len(snap.FailedCourses))
	}
	if len(altResults) == 0 {
		altResults = []string{"no failed courses"}
	}
	trace = append(trace, models.TraceStep{
		Step:        2,
		RuleID:      "F001",
		RuleName:    "Failed-course alternative check",
		Description: e.store.RuleDescription("F001"),
		Result:      altResults,
		Summary:     altSummary,
	})

	// Step 3: teaching plan alignment.
	key := e.CurriculumKey(snap.Cohort, snap.Major)
	trace = append(trace, models.TraceStep{
		Step:        3,
		RuleID:      "R008",
		RuleName:    "Teaching plan alignment",
		Description: e.store.RuleDescription("R008"),
		Result:      []string{fmt.Sprintf("applied teaching plan %s", key)},
		Summary:     fmt.Sprintf("courses filtered by %s teaching plan", snap.Major),
	})

	// Step 4: ability inference.
	ability := e.InferAbility(snap)
	trace = append(trace, models.TraceStep{
		Step:        4,
		RuleID:      knowledge.RuleIDAbilityInference,
		RuleName:    "Student ability inference",
		Description: e.store.RuleDescription(knowledge.RuleIDAbilityInference),
		Result: []string{
			fmt.Sprintf("programming level: %.1f/3 (I001)", ability.ProgrammingLevel),
			fmt.Sprintf("computational thinking: %.1f/3 (I002)", ability.ComputationalThinking),
			fmt.Sprintf("academic readiness: %.2f (I003)", ability.AcademicReadiness),
		},
		Summary: fmt.Sprintf("readiness = %.2f", ability.AcademicReadiness),
	})

	// Step 5: scoring examples.
	if len(scored) > 0 {
		var examples []string
		for i, s := range scored {
			if i >= 3 {
				break
			}
			examples = append(examples, fmt.Sprintf(
				"%s: score=%.2f (interest=%.2f, difficulty=%.2f, time=%.2f)",
				s.CourseID, s.TotalScore, s.InterestMatch, s.DifficultyFit, s.TimeFit))
		}
		trace = append(trace, models.TraceStep{
			Step:        5,
			RuleID:      "S004",
			RuleName:    "Recommendation scoring",
			Description: e.store.RuleDescription("S004"),
			Result:      examples,
			Summary:     fmt.Sprintf("%d electives scored", len(scored)),
		})
	}

	// Step 6: top-3 selection.
	var top []string
	for i, s := range scored {
		if i >= 3 {
			break
		}
		top = append(top, fmt.Sprintf("%s: %s (%.2f)", s.CourseID, s.CourseName, s.TotalScore))
	}
	if len(top) == 0 {
		top = []string{"no eligible electives"}
	}
	trace = append(trace, models.TraceStep{
		Step:        6,
		RuleID:      knowledge.RuleIDTopThree,
		RuleName:    "Top-3 selection",
		Description: e.store.RuleDescription(knowledge.RuleIDTopThree),
		Result:      top,
		Summary:     fmt.Sprintf("top 3 selected from %d electives", len(scored)),
	})

	return trace
}

// ActivatedRules reports which hard rules fire for the target courses:
// failed prerequisite checks plus the fixed-semester constraints on
// language, PE and military education courses.
func (e *Engine) ActivatedRules(snap *models.StudentSnapshot, targets []string) []models.ActivatedRule {
	var activated []models.ActivatedRule

	for _, courseID := range targets {
		ok, missing := e.CheckPrerequisites(courseID, snap.CompletedCourses)
		if !ok {
			activated = append(activated, models.ActivatedRule{
				RuleID:      "R001",
				RuleName:    "Prerequisite check",
				Description: e.store.RuleDescription("R001"),
				CourseID:    courseID,
				Status:      "FAILED",
				Message:     fmt.Sprintf("missing prerequisites: %s", strings.Join(missing, ", ")),
			})
		}
	}

	for _, courseID := range targets {
		switch {
		case strings.HasPrefix(courseID, "ENG"):
			activated = append(activated, models.ActivatedRule{
				RuleID:      "R002",
				RuleName:    "English course year constraint",
				Description: e.store.RuleDescription("R002"),
				CourseID:    courseID,
				Status:      "ACTIVE",
			})
		case strings.HasPrefix(courseID, "PE"):
			activated = append(activated, models.ActivatedRule{
				RuleID:      "R004",
				RuleName:    "PE semester constraint",
				Description: e.store.RuleDescription("R004"),
				CourseID:    courseID,
				Status:      "ACTIVE",
			})
		case courseID == "ME001":
			activated = append(activated, models.ActivatedRule{
				RuleID:      "R003",
				RuleName:    "Military education fixed semester",
				Description: e.store.RuleDescription("R003"),
				CourseID:    courseID,
				Status:      "ACTIVE",
			})
		}
	}

	return activated
}

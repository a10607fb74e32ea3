// internal/engine/scoring.go
package engine

import (
	"math"
	"sort"

	"advisor-workers/internal/knowledge"
	"advisor-workers/internal/models"
)

// Preferred credit bands per time availability level.
var creditBands = map[string][2]int{
	models.TimeLow:    {1, 3},
	models.TimeMedium: {3, 4},
	models.TimeHigh:   {4, 5},
}

// DifficultyScore computes 2*w1*Npre + w2*Yrec + w3*Wgroup with the weights
// and group-weight table from the rules document. Groups missing from the
// table weigh 1.
func (e *Engine) DifficultyScore(course *knowledge.Course) float64 {
	w := e.store.DifficultyWeights()

	groupWeight, ok := w.GroupWeights[course.Group]
	if !ok {
		groupWeight = 1
	}

	return 2*w.W1Prerequisite*float64(len(course.Prerequisites)) +
		w.W2Year*float64(course.RecYear) +
		w.W3Group*groupWeight
}

// InterestMatch scores how well a course's knowledge areas cover the
// student's stated interests. The floor values keep courses from being
// discarded on interest alone: 0.5 neutral with no stated interests, 0.3
// for untagged courses, 0.2 for a non-empty miss.
func (e *Engine) InterestMatch(course *knowledge.Course, interests []string) float64 {
	if len(interests) == 0 {
		return 0.5
	}
	if len(course.KnowledgeAreas) == 0 {
		return 0.3
	}

	areas := make(map[string]bool, len(course.KnowledgeAreas))
	for _, a := range course.KnowledgeAreas {
		areas[a] = true
	}
	matched := 0
	for _, interest := range interests {
		if areas[interest] {
			matched++
		}
	}
	if matched == 0 {
		return 0.2
	}
	return math.Min(float64(matched)/float64(len(interests)), 1.0)
}

// DifficultyFit maps the distance between course difficulty and student
// readiness onto [0,1], with a penalty for courses clearly beyond the
// student. The normalization divisor and penalty come from the rules
// document.
func (e *Engine) DifficultyFit(difficulty, readiness float64) float64 {
	w := e.store.RecommendationWeights()

	diff := math.Abs(difficulty - readiness)
	fit := 1.0 - math.Min(diff/w.MaxDifficulty, 1.0)
	if difficulty > readiness+2 {
		fit *= w.OverloadPenalty
	}
	return fit
}

// TimeFit scores a course's credit load against the student's availability
// band: 1.0 inside, 0.8 below, graduated penalty above with a 0.3 floor.
func (e *Engine) TimeFit(course *knowledge.Course, availability string) float64 {
	band, ok := creditBands[availability]
	if !ok {
		band = creditBands[models.TimeMedium]
	}

	credits := course.Credits
	switch {
	case credits >= band[0] && credits <= band[1]:
		return 1.0
	case credits < band[0]:
		return 0.8
	default:
		penalty := float64(credits-band[1]) * 0.15
		return math.Max(0.3, 1.0-penalty)
	}
}

// ScoreCourse computes the weighted recommendation score for one course:
// alpha*interest + beta*difficultyFit + gamma*timeFit.
func (e *Engine) ScoreCourse(course *knowledge.Course, snap *models.StudentSnapshot, ability models.Ability) models.CourseScore {
	w := e.store.RecommendationWeights()

	difficulty := e.DifficultyScore(course)
	interest := e.InterestMatch(course, snap.Interests)
	difficultyFit := e.DifficultyFit(difficulty, ability.AcademicReadiness)
	timeFit := e.TimeFit(course, snap.TimeAvailability)

	return models.CourseScore{
		CourseID:        course.ID,
		CourseName:      course.Name,
		Credits:         course.Credits,
		KnowledgeAreas:  course.KnowledgeAreas,
		InterestMatch:   interest,
		DifficultyFit:   difficultyFit,
		TimeFit:         timeFit,
		DifficultyScore: difficulty,
		TotalScore:      w.AlphaInterest*interest + w.BetaDifficulty*difficultyFit + w.GammaTime*timeFit,
	}
}

// RankElectives filters the student's eligible courses to electives, scores
// each and sorts descending by total score. The sort is stable: equal scores
// keep candidate order.
func (e *Engine) RankElectives(snap *models.StudentSnapshot) []models.CourseScore {
	eligible := e.EligibleCourses(snap)
	ability := e.InferAbility(snap)

	var scored []models.CourseScore
	for i := range eligible {
		course := &eligible[i].Course
		if course.Group != knowledge.GroupElective && course.Group != knowledge.GroupFreeElective {
			continue
		}
		scored = append(scored, e.ScoreCourse(course, snap, ability))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})
	return scored
}

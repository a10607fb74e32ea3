// internal/engine/ability.go
package engine

import (
	"fmt"
	"math"

	"advisor-workers/internal/knowledge"
	"advisor-workers/internal/models"
)

// Course ladders for ability inference. Each maps a course id to the level
// it evidences.
var (
	programmingLadder = map[string]int{
		"IT001": 1, // intro programming
		"IT002": 2, // object-oriented programming
		"CS116": 3, // Python programming for ML
	}
	algorithmLadder = map[string]int{
		"IT003": 1, // data structures and algorithms
		"CS112": 2, // algorithm analysis and design
		"MA006": 1, // calculus
	}
)

// foundationCourses is the fixed IT/MA set academic readiness is graded on.
var foundationCourses = []string{
	"IT001", "IT002", "IT003", "IT004", "IT005", "IT007",
	"MA003", "MA004", "MA005", "MA006",
}

// InferAbility derives the three latent ability scores from which courses
// the student completed and at what grade. Pure function of the snapshot.
func (e *Engine) InferAbility(snap *models.StudentSnapshot) models.Ability {
	ability := models.Ability{
		ProgrammingLevel:      ladderLevel(snap, programmingLadder),
		ComputationalThinking: ladderLevel(snap, algorithmLadder),
	}

	var foundationDone []string
	for _, id := range snap.CompletedCourses {
		for _, f := range foundationCourses {
			if id == f {
				foundationDone = append(foundationDone, id)
				break
			}
		}
	}

	total := len(foundationCourses)
	done := len(foundationDone)
	ability.FoundationCompletion = fmt.Sprintf("%d/%d", done, total)

	var readiness float64
	if done == 0 {
		readiness = 0.5
	} else {
		var gradeSum float64
		highCount := 0
		for _, id := range foundationDone {
			g := snap.Grade(id, knowledge.DefaultGrade)
			gradeSum += g
			if g >= 8.5 {
				highCount++
			}
		}
		avgGrade := gradeSum / float64(done)
		completionRate := float64(done) / float64(total)
		ability.FoundationAvgGrade = round2(avgGrade)

		switch {
		case completionRate >= 1.0 && float64(highCount)/float64(done) >= 0.5:
			readiness = 3.0
		case completionRate >= 0.5 && avgGrade >= 7.0:
			readiness = 2.0
			// Continuous bonus inside the medium tier: up to +0.5 for
			// completion beyond 50% and up to +0.5 for grades toward 10.
			readiness += (completionRate - 0.5) * 1.0
			readiness += (avgGrade - 7.0) / 3.0 * 0.5
		default:
			readiness = 1.0
			readiness += completionRate * 0.5
		}
	}

	yearBonus := float64(snap.CurrentYear-1) * 0.2
	readiness = math.Min(readiness+yearBonus, 4.0)
	ability.AcademicReadiness = round2(readiness)

	return ability
}

// ladderLevel takes the max level among completed ladder members plus a
// grade bonus: +0.5 when the ladder average is at least 8.5, +0.25 at 7.0.
// Zero when none completed.
func ladderLevel(snap *models.StudentSnapshot, ladder map[string]int) float64 {
	maxLevel := 0
	var gradeSum float64
	count := 0
	for _, id := range snap.CompletedCourses {
		level, ok := ladder[id]
		if !ok {
			continue
		}
		if level > maxLevel {
			maxLevel = level
		}
		gradeSum += snap.Grade(id, knowledge.DefaultGrade)
		count++
	}
	if count == 0 {
		return 0
	}

	avg := gradeSum / float64(count)
	bonus := 0.0
	switch {
	case avg >= 8.5:
		bonus = 0.5
	case avg >= 7.0:
		bonus = 0.25
	}
	return float64(maxLevel) + bonus
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

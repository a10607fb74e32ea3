// internal/workers/advising/reasoning-trace/models.go
package reasoningtrace

import "advisor-workers/internal/models"

type Input struct {
	Student models.StudentSnapshot `json:"student"`
	// TargetCourses selects the courses the activated-rules report covers;
	// defaults to the eligible set when empty.
	TargetCourses []string `json:"targetCourses"`
}

type Output struct {
	Trace          []models.TraceStep     `json:"trace"`
	ActivatedRules []models.ActivatedRule `json:"activatedRules"`
	EligibleCount  int                    `json:"eligibleCount"`
	ScoredCount    int                    `json:"scoredCount"`
}

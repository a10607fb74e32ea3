// internal/workers/advising/check-eligibility/models.go
package checkeligibility

import "advisor-workers/internal/models"

type Input struct {
	Student          models.StudentSnapshot `json:"student"`
	PrioritizeByPlan bool                   `json:"prioritizeByPlan"`
}

type Output struct {
	EligibleCourses []models.EligibleCourse `json:"eligibleCourses"`
	EligibleCount   int                     `json:"eligibleCount"`
	FailedPriority  []string                `json:"failedPriority"`
}

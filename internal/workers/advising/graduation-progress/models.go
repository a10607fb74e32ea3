// internal/workers/advising/graduation-progress/models.go
package graduationprogress

import "advisor-workers/internal/models"

type Input struct {
	Student models.StudentSnapshot `json:"student"`
}

type Output struct {
	Progress models.GraduationProgress `json:"progress"`
	// PercentComplete is TotalCompleted over TotalRequired, clamped to 100.
	PercentComplete float64 `json:"percentComplete"`
}

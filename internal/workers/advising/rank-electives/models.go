// internal/workers/advising/rank-electives/models.go
package rankelectives

import "advisor-workers/internal/models"

type Input struct {
	Student models.StudentSnapshot `json:"student"`
	// Limit bounds the returned list; zero means all scored electives.
	Limit int `json:"limit"`
}

type Output struct {
	Recommendations []models.CourseScore `json:"recommendations"`
	Ability         models.Ability       `json:"ability"`
	ScoredCount     int                  `json:"scoredCount"`
	CacheHit        bool                 `json:"cacheHit"`
}

// internal/workers/advising/infer-ability/models.go
package inferability

import "advisor-workers/internal/models"

type Input struct {
	Student models.StudentSnapshot `json:"student"`
}

type Output struct {
	Ability models.Ability `json:"ability"`
}

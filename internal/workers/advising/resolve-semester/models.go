// internal/workers/advising/resolve-semester/models.go
package resolvesemester

import "advisor-workers/internal/models"

type Input struct {
	Major          string `json:"major"`
	EnrollmentYear int    `json:"enrollmentYear"`
	// Cohort overrides the enrollment-year mapping when set.
	Cohort         string `json:"cohort"`
	SemesterNumber int    `json:"semesterNumber"`
	// FailedCourses to compute retake semesters for.
	FailedCourses []string `json:"failedCourses"`
}

type Output struct {
	Cohort           string                 `json:"cohort"`
	CurriculumKey    string                 `json:"curriculumKey"`
	Semester         models.SemesterCourses `json:"semester"`
	RetakeSemesters  map[string]int         `json:"retakeSemesters"`
	HasElectiveSlots bool                   `json:"hasElectiveSlots"`
}

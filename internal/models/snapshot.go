// internal/models/snapshot.go
package models

import "strings"

// Time availability levels as submitted by the caller.
const (
	TimeLow    = "Low"
	TimeMedium = "Medium"
	TimeHigh   = "High"
)

// Passing grade threshold on the 0-10 scale.
const PassingGrade = 5.0

// StudentSnapshot is the per-request student state. It is built fresh by the
// caller for every interaction and never mutated by the engine.
type StudentSnapshot struct {
	Major            string             `json:"major"`
	Cohort           string             `json:"cohort"`
	EnrollmentYear   int                `json:"enrollment_year"`
	CurrentSemester  int                `json:"current_semester_number"` // 1-7
	CurrentYear      int                `json:"current_year"`
	StudiedCourses   []string           `json:"studied_courses"`
	CompletedCourses []string           `json:"completed_courses"`
	CurrentCourses   []string           `json:"current_courses"`
	FailedCourses    []string           `json:"failed_courses"`
	CourseGrades     map[string]float64 `json:"course_grades"`
	Interests        []string           `json:"interests"`
	TimeAvailability string             `json:"time_availability"`
}

// Grade returns the recorded grade for a course, falling back to the neutral
// default when no grade was captured.
func (s *StudentSnapshot) Grade(courseID string, fallback float64) float64 {
	if g, ok := s.CourseGrades[courseID]; ok {
		return g
	}
	return fallback
}

// HasCompleted reports whether the course is in the completed set.
func (s *StudentSnapshot) HasCompleted(courseID string) bool {
	return contains(s.CompletedCourses, courseID)
}

// IsTaking reports whether the course is currently in progress.
func (s *StudentSnapshot) IsTaking(courseID string) bool {
	return contains(s.CurrentCourses, courseID)
}

// HasFailed reports whether the course is in the failed set.
func (s *StudentSnapshot) HasFailed(courseID string) bool {
	return contains(s.FailedCourses, courseID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Ungraded reports whether a course id belongs to a non-graded category.
// Physical education and military education courses carry no numeric grade.
func Ungraded(courseID string) bool {
	return strings.HasPrefix(courseID, "PE") || strings.HasPrefix(courseID, "ME")
}

// ClassifyStudied splits studied course ids into completed and failed sets:
// completed if the grade is at least PassingGrade or the course is ungraded,
// failed otherwise. Missing grades default to defaultGrade.
func ClassifyStudied(studied []string, grades map[string]float64, defaultGrade float64) (completed, failed []string) {
	for _, id := range studied {
		if Ungraded(id) {
			completed = append(completed, id)
			continue
		}
		g, ok := grades[id]
		if !ok {
			g = defaultGrade
		}
		if g >= PassingGrade {
			completed = append(completed, id)
		} else {
			failed = append(failed, id)
		}
	}
	return completed, failed
}

// internal/models/advising.go
package models

import "advisor-workers/internal/knowledge"

// PlannedCourse is a catalog course as it appears in a teaching plan
// semester: the full course record plus its role in the plan. Placeholder
// entries ("choose later" lines) synthesize a PlannedCourse with no id and
// no prerequisites so the caller can still render the line item.
type PlannedCourse struct {
	knowledge.Course
	PlanType       string   `json:"teaching_plan_type"` // "compulsory" or "elective"
	IsPlaceholder  bool     `json:"is_placeholder,omitempty"`
	IsElectiveSlot bool     `json:"is_elective_slot,omitempty"`
	SlotName       string   `json:"slot_name,omitempty"`
	AllChoices     []string `json:"all_choices,omitempty"`
}

// ElectiveSlot is an expanded choose-N-of-M group from a teaching plan.
type ElectiveSlot struct {
	SlotName string          `json:"slot_name"`
	Credits  int             `json:"credits"`
	Choices  []PlannedCourse `json:"choices"`
}

// SemesterCourses is one semester of a teaching plan fully expanded.
// Ordering of Compulsory and Elective follows plan entry order.
type SemesterCourses struct {
	Compulsory   []PlannedCourse `json:"compulsory"`
	Elective     []PlannedCourse `json:"elective"`
	Slots        []ElectiveSlot  `json:"elective_slots"`
	TotalCredits int             `json:"total_credits"`
}

// EligibleCourse is a candidate the eligibility engine accepted, annotated
// with its retake flags.
type EligibleCourse struct {
	knowledge.Course
	IsFailed                bool `json:"is_failed"`
	IsPrerequisiteForOthers bool `json:"is_prerequisite_for_other"`
}

// CategoryProgress is the credit accounting for one degree category.
// Completed reflects overflow transfers; RawCompleted does not.
type CategoryProgress struct {
	Completed    int `json:"completed"`
	Required     int `json:"required"`
	RawCompleted int `json:"raw_completed"`
}

// GraduationProgress is the full degree-audit view. TotalCompleted is always
// the literal sum of completed-course credits; overflow transfers only
// redistribute the per-category numbers.
type GraduationProgress struct {
	TotalRequired  int                         `json:"total_required"`
	TotalCompleted int                         `json:"total_completed"`
	Categories     map[string]CategoryProgress `json:"categories"`
}

// Ability holds the inferred latent scores.
type Ability struct {
	ProgrammingLevel      float64 `json:"programming_level"`
	ComputationalThinking float64 `json:"computational_thinking"`
	AcademicReadiness     float64 `json:"academic_readiness"`
	FoundationCompletion  string  `json:"foundation_completion"`
	FoundationAvgGrade    float64 `json:"foundation_avg_grade"`
}

// CourseScore is one scored elective with its component breakdown.
type CourseScore struct {
	CourseID        string   `json:"course_id"`
	CourseName      string   `json:"course_name"`
	Credits         int      `json:"credits"`
	KnowledgeAreas  []string `json:"knowledge_area"`
	TotalScore      float64  `json:"total_score"`
	InterestMatch   float64  `json:"interest_match"`
	DifficultyFit   float64  `json:"difficulty_fit"`
	TimeFit         float64  `json:"time_fit"`
	DifficultyScore float64  `json:"difficulty_score"`
}

// TraceStep is one step of the reasoning trace.
type TraceStep struct {
	Step        int      `json:"step"`
	RuleID      string   `json:"rule_id"`
	RuleName    string   `json:"rule_name"`
	Description string   `json:"description"`
	Result      []string `json:"result"`
	Summary     string   `json:"summary"`
}

// ActivatedRule reports a hard rule that applies to a target course.
type ActivatedRule struct {
	RuleID      string `json:"rule_id"`
	RuleName    string `json:"rule_name"`
	Description string `json:"description"`
	CourseID    string `json:"course"`
	Status      string `json:"status"` // "ACTIVE" or "FAILED"
	Message     string `json:"message,omitempty"`
}

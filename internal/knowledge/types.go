// internal/knowledge/types.go
package knowledge

// Course groups as they appear in the course catalog. The knowledge base is
// maintained in Vietnamese; these values are data identifiers, not display
// strings.
const (
	GroupGeneral        = "Đại cương"     // general education
	GroupFoundation     = "Cơ sở ngành"   // major foundation
	GroupSpecialization = "Chuyên ngành"  // specialization
	GroupGraduation     = "Tốt nghiệp"    // graduation block
	GroupElective       = "Tự chọn"       // elective
	GroupFreeElective   = "Tự chọn tự do" // free elective
)

// Credit accounting categories keyed the way the graduation requirement
// tables key them.
const (
	CategoryGeneral        = "dai_cuong"
	CategoryFoundation     = "co_so_nganh"
	CategorySpecialization = "chuyen_nganh"
	CategoryGraduation     = "tot_nghiep"
	CategoryFreeElective   = "tu_chon_tu_do"
)

// Semester parity types. Odd-numbered semesters are HK1 terms, even-numbered
// are HK2 terms; most courses repeat on a two-semester cycle.
const (
	SemesterOdd  = "HK1"
	SemesterEven = "HK2"
)

// Course is one catalog entry. Immutable after load.
type Course struct {
	ID            string   `json:"course_id"`
	Name          string   `json:"course_name"`
	Credits       int      `json:"credits"`
	Majors        []string `json:"major"`
	Prerequisites []string `json:"prerequisites"`
	RecYear       int      `json:"recommended_year"`
	RecSemester   string   `json:"recommended_semester"`
	Group         string   `json:"course_group"`
	// KnowledgeAreas is nil for courses without an area tag (PE, ME, some
	// general-education courses). Consumers must handle the nil case.
	KnowledgeAreas []string `json:"knowledge_area"`
}

// HasMajor reports whether the course is open to the given major.
func (c *Course) HasMajor(major string) bool {
	for _, m := range c.Majors {
		if m == major {
			return true
		}
	}
	return false
}

// CoursesDoc is the top-level courses document.
type CoursesDoc struct {
	Courses []Course `json:"courses"`
}

// Rule is a single declarative rule entry. All four rule categories share
// this shape.
type Rule struct {
	ID          string `json:"rule_id"`
	Name        string `json:"rule_name"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// DifficultyWeights parameterize the course difficulty formula
// 2*w1*Npre + w2*Yrec + w3*Wgroup.
type DifficultyWeights struct {
	W1Prerequisite float64            `json:"w1_prerequisite"`
	W2Year         float64            `json:"w2_year"`
	W3Group        float64            `json:"w3_group"`
	GroupWeights   map[string]float64 `json:"group_weights"`
}

// RecommendationWeights hold the alpha/beta/gamma blend plus the difficulty
// fit tuning constants. MaxDifficulty and OverloadPenalty are empirical and
// kept configurable; zero values fall back to the defaults at load.
type RecommendationWeights struct {
	AlphaInterest   float64 `json:"alpha_interest"`
	BetaDifficulty  float64 `json:"beta_difficulty"`
	GammaTime       float64 `json:"gamma_time"`
	MaxDifficulty   float64 `json:"max_difficulty"`
	OverloadPenalty float64 `json:"overload_penalty"`
}

// CategoryRequirement mirrors the slightly irregular requirement tables:
// general education uses "total", graduation uses "credits", the rest use
// "min_credits". Required() collapses the three.
type CategoryRequirement struct {
	Total      int `json:"total"`
	MinCredits int `json:"min_credits"`
	Credits    int `json:"credits"`
}

func (r CategoryRequirement) Required() int {
	if r.Total > 0 {
		return r.Total
	}
	if r.MinCredits > 0 {
		return r.MinCredits
	}
	return r.Credits
}

// GraduationRequirement is the per-curriculum credit requirement table.
type GraduationRequirement struct {
	TotalCredits int                            `json:"total_credits"`
	Categories   map[string]CategoryRequirement `json:"categories"`
}

// RulesDoc is the top-level rules document.
type RulesDoc struct {
	HardRules              []Rule                           `json:"hard_rules"`
	SoftRules              []Rule                           `json:"soft_rules"`
	RecommendationRules    []Rule                           `json:"recommendation_rules"`
	InferenceRules         []Rule                           `json:"inference_rules"`
	DifficultyWeights      DifficultyWeights                `json:"difficulty_weights"`
	RecommendationWeights  RecommendationWeights            `json:"recommendation_weights"`
	GraduationRequirements map[string]GraduationRequirement `json:"graduation_requirements"`
}

// PlanEntry is one line of a semester in a teaching plan. Exactly one of the
// three shapes applies: a concrete course reference (ID set), an elective
// slot (ElectiveSlot set, Choices listing the alternatives), or a
// placeholder (neither, or ID == "-").
type PlanEntry struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"` // "compulsory" or "elective"
	Name         string   `json:"name"`
	Placeholder  string   `json:"placeholder"`
	Credits      int      `json:"credits"`
	ElectiveSlot string   `json:"elective_slot"`
	Choices      []string `json:"choices"`
}

// IsSlot reports whether the entry declares a choose-N-of-M elective slot.
func (e *PlanEntry) IsSlot() bool { return e.ElectiveSlot != "" }

// PlanSemester is one semester of a teaching plan.
type PlanSemester struct {
	Courses      []PlanEntry `json:"courses"`
	TotalCredits int         `json:"total_credits"`
}

// TeachingPlan is the per-curriculum plan, semesters keyed "1".."7".
type TeachingPlan struct {
	Semesters map[string]PlanSemester `json:"semesters"`
}

// CohortInfo maps a cohort code to its enrollment year and curriculum
// version.
type CohortInfo struct {
	EnrollmentYear int    `json:"enrollment_year"`
	Curriculum     string `json:"curriculum"`
}

// PlansDoc is the top-level teaching plans document.
type PlansDoc struct {
	CohortMappings map[string]CohortInfo   `json:"cohort_mappings"`
	TeachingPlans  map[string]TeachingPlan `json:"teaching_plans"`
}

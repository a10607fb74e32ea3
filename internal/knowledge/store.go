// internal/knowledge/store.go
package knowledge

// Documented fallbacks for unmapped lookups. The engine never errors on a
// missing data point; it degrades to these.
const (
	DefaultCohort            = "K20"
	DefaultCurriculumVersion = "K2024"
	DefaultGrade             = 7.0
	DefaultTotalCredits      = 126
	DefaultCredits           = 4
	DefaultMaxDifficulty     = 15.0
	DefaultOverloadPenalty   = 0.7
	PlaceholderName          = "Môn tự chọn"
)

// Per-category requirement fallbacks used when a curriculum's requirement
// table omits a category.
var DefaultCategoryRequirements = map[string]int{
	CategoryGeneral:        45,
	CategoryFoundation:     45,
	CategorySpecialization: 16,
	CategoryGraduation:     10,
	CategoryFreeElective:   10,
}

// UnknownRuleDescription is returned for rule ids missing from every rule
// category.
const UnknownRuleDescription = "no description available"

// Synthetic rule ids used by the reasoning trace that have no entry in the
// rules document.
const (
	RuleIDAbilityInference = "I001-I003"
	RuleIDTopThree         = "TOP3"
)

// RuleCategory labels for the flattened rule listing.
const (
	RuleCategoryHard           = "hard"
	RuleCategorySoft           = "soft"
	RuleCategoryRecommendation = "recommendation"
	RuleCategoryInference      = "inference"
)

// CatalogRule is a rule with its category attached, for display listings.
type CatalogRule struct {
	Rule
	Category string `json:"category"`
}

// Store is the immutable knowledge base: the three reference documents plus
// the indexes every engine operation reads. Built once at process start and
// safe for concurrent readers.
type Store struct {
	courses      []Course
	rules        *RulesDoc
	plans        *PlansDoc
	byID         map[string]*Course
	descriptions map[string]string
	catalog      []CatalogRule
}

// NewStore indexes the three documents. The rule descriptions of all four
// categories are unioned into a single lookup table at construction, with
// explicit entries for the synthetic composite ids the trace uses.
func NewStore(courses *CoursesDoc, rules *RulesDoc, plans *PlansDoc) *Store {
	s := &Store{
		courses:      courses.Courses,
		rules:        rules,
		plans:        plans,
		byID:         make(map[string]*Course, len(courses.Courses)),
		descriptions: make(map[string]string),
	}

	for i := range s.courses {
		c := &s.courses[i]
		s.byID[c.ID] = c
	}

	// Hard and soft rules keep a document-supplied priority; recommendation
	// and inference priorities are fixed by category.
	categories := []struct {
		label string
		list  []Rule
		prio  int
		fixed bool
	}{
		{RuleCategoryHard, rules.HardRules, 1, false},
		{RuleCategorySoft, rules.SoftRules, 2, false},
		{RuleCategoryRecommendation, rules.RecommendationRules, 3, true},
		{RuleCategoryInference, rules.InferenceRules, 4, true},
	}
	for _, cat := range categories {
		for _, r := range cat.list {
			if _, ok := s.descriptions[r.ID]; !ok {
				s.descriptions[r.ID] = r.Description
			}
			if cat.fixed || r.Priority == 0 {
				r.Priority = cat.prio
			}
			s.catalog = append(s.catalog, CatalogRule{Rule: r, Category: cat.label})
		}
	}
	s.descriptions[RuleIDAbilityInference] = "Infer student ability from completed courses and grades"
	s.descriptions[RuleIDTopThree] = "Keep only the three highest-scoring electives as recommendations"

	return s
}

// Courses returns the catalog in document order.
func (s *Store) Courses() []Course { return s.courses }

// Course looks up a course by id. The boolean is false for unknown ids;
// callers are expected to skip, not fail.
func (s *Store) Course(id string) (*Course, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Rules returns the rules document.
func (s *Store) Rules() *RulesDoc { return s.rules }

// CohortMappings returns the enrollment-year to cohort table.
func (s *Store) CohortMappings() map[string]CohortInfo { return s.plans.CohortMappings }

// TeachingPlan returns the plan for a curriculum key. The boolean is false
// for unknown keys.
func (s *Store) TeachingPlan(key string) (TeachingPlan, bool) {
	p, ok := s.plans.TeachingPlans[key]
	return p, ok
}

// TeachingPlans returns all plans keyed by curriculum key.
func (s *Store) TeachingPlans() map[string]TeachingPlan { return s.plans.TeachingPlans }

// RuleDescription resolves a rule id against the unioned description table.
func (s *Store) RuleDescription(id string) string {
	if d, ok := s.descriptions[id]; ok {
		return d
	}
	return UnknownRuleDescription
}

// AllRules returns every rule across the four categories with its category
// label, in document order.
func (s *Store) AllRules() []CatalogRule { return s.catalog }

// GraduationRequirement returns the requirement table for a curriculum key.
// Missing keys yield a zero-valued table; per-category defaults apply at the
// point of use.
func (s *Store) GraduationRequirement(key string) GraduationRequirement {
	return s.rules.GraduationRequirements[key]
}

// DifficultyWeights returns the difficulty formula weights.
func (s *Store) DifficultyWeights() DifficultyWeights { return s.rules.DifficultyWeights }

// RecommendationWeights returns the score blend weights with the difficulty
// fit constants defaulted when the document omits them.
func (s *Store) RecommendationWeights() RecommendationWeights {
	w := s.rules.RecommendationWeights
	if w.MaxDifficulty == 0 {
		w.MaxDifficulty = DefaultMaxDifficulty
	}
	if w.OverloadPenalty == 0 {
		w.OverloadPenalty = DefaultOverloadPenalty
	}
	return w
}

// internal/engine/curriculum_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"advisor-workers/internal/knowledge"
)

func TestDetermineCohort(t *testing.T) {
	e := testEngine()

	assert.Equal(t, "K2024", e.DetermineCohort(2024))
	assert.Equal(t, "K2022", e.DetermineCohort(2022))
	assert.Equal(t, knowledge.DefaultCohort, e.DetermineCohort(1999))
}

func TestCurriculumKey(t *testing.T) {
	e := testEngine()

	assert.Equal(t, "KHMT_K2024", e.CurriculumKey("K2024", "KHMT"))
	assert.Equal(t, "KHMT_K2022", e.CurriculumKey("K2022", "KHMT"))
	// Unknown cohorts fall back to the latest curriculum version.
	assert.Equal(t, "KHMT_K2024", e.CurriculumKey("K99", "KHMT"))
}

func TestSemesterCourses_Compulsory(t *testing.T) {
	e := testEngine()

	sem := e.SemesterCourses(testMajor, 1, "K2024")

	assert.Equal(t, 10, sem.TotalCredits)
	ids := make([]string, len(sem.Compulsory))
	for i, c := range sem.Compulsory {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"IT001", "MA006", "PE231"}, ids)
	assert.Empty(t, sem.Elective)
	assert.Empty(t, sem.Slots)
}

func TestSemesterCourses_ElectiveSlotExpansion(t *testing.T) {
	e := testEngine()

	sem := e.SemesterCourses(testMajor, 3, "K2024")

	if assert.Len(t, sem.Slots, 1) {
		slot := sem.Slots[0]
		assert.Equal(t, "TC1", slot.SlotName)
		assert.Equal(t, 4, slot.Credits)
		assert.Len(t, slot.Choices, 2)
	}

	// The slot surfaces as one representative elective entry carrying the
	// full choice list.
	if assert.Len(t, sem.Elective, 1) {
		rep := sem.Elective[0]
		assert.Equal(t, "CS116", rep.ID)
		assert.True(t, rep.IsElectiveSlot)
		assert.Equal(t, "TC1", rep.SlotName)
		assert.Equal(t, []string{"CS116", "CS114"}, rep.AllChoices)
	}
}

func TestSemesterCourses_PlaceholderEntry(t *testing.T) {
	e := testEngine()

	sem := e.SemesterCourses(testMajor, 4, "K2024")

	assert.Len(t, sem.Compulsory, 1)
	assert.Equal(t, "SE104", sem.Compulsory[0].ID)

	if assert.Len(t, sem.Elective, 1) {
		placeholder := sem.Elective[0]
		assert.True(t, placeholder.IsPlaceholder)
		assert.Equal(t, knowledge.PlaceholderName, placeholder.Name)
		assert.Equal(t, 2, placeholder.Credits)
	}
}

func TestSemesterCourses_OutOfRangeSemesterIsEmpty(t *testing.T) {
	e := testEngine()

	sem := e.SemesterCourses(testMajor, 9, "K2024")

	assert.Empty(t, sem.Compulsory)
	assert.Empty(t, sem.Elective)
	assert.Empty(t, sem.Slots)
	assert.Zero(t, sem.TotalCredits)
}

func TestOfferedSemesterTypes(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name     string
		courseID string
		want     []string
	}{
		{"planned in an odd semester", "IT001", []string{knowledge.SemesterOdd}},
		{"planned in an even semester", "IT002", []string{knowledge.SemesterEven}},
		{"slot choice inherits the slot's semester", "CS114", []string{knowledge.SemesterOdd}},
		{"unplanned course assumed offered both terms", "CS331", []string{knowledge.SemesterOdd, knowledge.SemesterEven}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.OfferedSemesterTypes(tt.courseID, testMajor, "K2024"))
		})
	}
}

func TestNextRetakeSemester(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name     string
		courseID string
		current  int
		want     int
	}{
		{"both parities retake next semester", "CS331", 3, 4},
		{"odd-only course from an even semester", "CS116", 4, 5},
		{"odd-only course skips a year", "CS116", 3, 5},
		{"even-only course skips a year", "IT002", 2, 4},
		{"past the final semester defaults to two ahead", "CS116", 8, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.NextRetakeSemester(tt.courseID, tt.current, testMajor, "K2024"))
		})
	}
}

func TestPrioritizeByPlan(t *testing.T) {
	e := testEngine()
	snap := midSnapshot()

	prioritized := e.PrioritizeByPlan(e.EligibleCourses(snap), snap.CurrentSemester, snap.Major, snap.Cohort)

	ids := make([]string, len(prioritized))
	for i, c := range prioritized {
		ids[i] = c.ID
	}

	// Semester 3 plans the TC1 slot (represented by CS116), then general and
	// foundation courses, then the rest in catalog order.
	assert.Equal(t, "CS116", ids[0])
	assert.Equal(t, "PE231", ids[1])
	assert.Len(t, prioritized, 10)
}

func TestCurriculumPlan(t *testing.T) {
	e := testEngine()

	plan := e.CurriculumPlan(testMajor)

	year1 := plan["Year 1 - HK1"]
	year1IDs := make([]string, len(year1))
	for i, c := range year1 {
		year1IDs[i] = c.ID
	}
	assert.Contains(t, year1IDs, "IT001")
	assert.Contains(t, year1IDs, "MA006")

	// Electives never appear in the recommended plan grid.
	for key, courses := range plan {
		for _, c := range courses {
			assert.NotEqual(t, knowledge.GroupElective, c.Group, "%s contains elective %s", key, c.ID)
			assert.NotEqual(t, knowledge.GroupFreeElective, c.Group, "%s contains free elective %s", key, c.ID)
		}
	}
}

func TestHasElectives(t *testing.T) {
	e := testEngine()

	assert.True(t, e.HasElectives(testMajor, 3, knowledge.SemesterOdd))
	assert.False(t, e.HasElectives(testMajor, 1, knowledge.SemesterOdd))
}

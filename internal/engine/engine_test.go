// internal/engine/engine_test.go
package engine

import (
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/knowledge"
	"advisor-workers/internal/models"
)

// ==========================
// Test Fixture
// ==========================

const testMajor = "KHMT"

func testCourses() *knowledge.CoursesDoc {
	return &knowledge.CoursesDoc{Courses: []knowledge.Course{
		{ID: "IT001", Name: "Nhập môn lập trình", Credits: 4, Majors: []string{testMajor}, RecYear: 1, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupFoundation},
		{ID: "MA006", Name: "Giải tích", Credits: 4, Majors: []string{testMajor}, RecYear: 1, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupGeneral},
		{ID: "PE231", Name: "Bơi lội", Credits: 2, Majors: []string{testMajor}, RecYear: 1, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupGeneral},
		{ID: "PE012", Name: "Bóng chuyền", Credits: 2, Majors: []string{testMajor}, RecYear: 1, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupGeneral},
		{ID: "IT002", Name: "Lập trình hướng đối tượng", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT001"}, RecYear: 1, RecSemester: knowledge.SemesterEven, Group: knowledge.GroupFoundation},
		{ID: "IT003", Name: "Cấu trúc dữ liệu và giải thuật", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT001"}, RecYear: 2, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupFoundation},
		{ID: "SE104", Name: "Nhập môn công nghệ phần mềm", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT002"}, RecYear: 2, RecSemester: knowledge.SemesterEven, Group: knowledge.GroupSpecialization},
		{ID: "CS331", Name: "Thị giác máy tính", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT003"}, RecYear: 3, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupSpecialization},
		{ID: "CS336", Name: "Truy vấn thông tin đa phương tiện", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT003"}, RecYear: 3, RecSemester: knowledge.SemesterEven, Group: knowledge.GroupSpecialization},
		{ID: "CS338", Name: "Nhận dạng", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT003"}, RecYear: 3, RecSemester: knowledge.SemesterEven, Group: knowledge.GroupSpecialization},
		{ID: "CS341", Name: "Xử lý ngôn ngữ tự nhiên", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT003"}, RecYear: 4, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupSpecialization},
		{ID: "SE501", Name: "Khóa luận tốt nghiệp", Credits: 4, Majors: []string{testMajor}, RecYear: 4, RecSemester: knowledge.SemesterEven, Group: knowledge.GroupGraduation},
		{ID: "CS116", Name: "Lập trình Python cho máy học", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT001"}, RecYear: 3, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupElective, KnowledgeAreas: []string{"AI", "Machine Learning"}},
		{ID: "CS114", Name: "Máy học", Credits: 4, Majors: []string{testMajor}, Prerequisites: []string{"IT003"}, RecYear: 3, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupElective, KnowledgeAreas: []string{"Machine Learning"}},
		{ID: "CS519", Name: "Phương pháp nghiên cứu khoa học", Credits: 2, Majors: []string{testMajor}, RecYear: 3, RecSemester: knowledge.SemesterEven, Group: knowledge.GroupFreeElective},
		{ID: "IS201", Name: "Cơ sở dữ liệu phân tán", Credits: 4, Majors: []string{"HTTT"}, RecYear: 2, RecSemester: knowledge.SemesterOdd, Group: knowledge.GroupFoundation},
	}}
}

func testRules() *knowledge.RulesDoc {
	return &knowledge.RulesDoc{
		HardRules: []knowledge.Rule{
			{ID: "R001", Name: "Prerequisite check", Description: "All prerequisites must be completed before enrollment"},
			{ID: "R002", Name: "English course year constraint", Description: "English sequence courses are locked to their academic year"},
			{ID: "R003", Name: "Military education fixed semester", Description: "Military education runs in year 1 semester 1 only"},
			{ID: "R004", Name: "PE semester constraint", Description: "PE courses run in fixed term parities"},
			{ID: "R008", Name: "Teaching plan alignment", Description: "Recommendations follow the cohort teaching plan"},
		},
		SoftRules: []knowledge.Rule{
			{ID: "F001", Name: "Failed-course alternative check", Description: "A failed elective is skipped when a slot alternative is satisfied"},
		},
		RecommendationRules: []knowledge.Rule{
			{ID: "S004", Name: "Recommendation scoring", Description: "Electives are scored by interest, difficulty fit and time fit"},
		},
		InferenceRules: []knowledge.Rule{
			{ID: "I001", Name: "Programming level", Description: "Programming level follows the completed programming ladder"},
			{ID: "I002", Name: "Computational thinking", Description: "Computational thinking follows the algorithm ladder"},
			{ID: "I003", Name: "Academic readiness", Description: "Readiness follows foundation completion and grades"},
		},
		DifficultyWeights: knowledge.DifficultyWeights{
			W1Prerequisite: 1,
			W2Year:         1,
			W3Group:        1,
			GroupWeights: map[string]float64{
				knowledge.GroupElective:       2,
				knowledge.GroupSpecialization: 3,
			},
		},
		RecommendationWeights: knowledge.RecommendationWeights{
			AlphaInterest:  0.4,
			BetaDifficulty: 0.3,
			GammaTime:      0.3,
		},
		GraduationRequirements: map[string]knowledge.GraduationRequirement{
			"KHMT_K2022": {
				TotalCredits: 120,
				Categories: map[string]knowledge.CategoryRequirement{
					knowledge.CategoryGeneral:        {Total: 10},
					knowledge.CategoryFoundation:     {MinCredits: 8},
					knowledge.CategorySpecialization: {MinCredits: 16},
					knowledge.CategoryGraduation:     {Credits: 10},
					"tu_chon_lien_nganh":             {MinCredits: 6},
				},
			},
			"KHMT_K2024": {
				TotalCredits: 126,
				Categories: map[string]knowledge.CategoryRequirement{
					knowledge.CategoryGeneral:        {Total: 45},
					knowledge.CategoryFoundation:     {MinCredits: 45},
					knowledge.CategorySpecialization: {MinCredits: 16},
					knowledge.CategoryGraduation:     {Credits: 10},
					knowledge.CategoryFreeElective:   {MinCredits: 10},
				},
			},
		},
	}
}

func testPlans() *knowledge.PlansDoc {
	return &knowledge.PlansDoc{
		CohortMappings: map[string]knowledge.CohortInfo{
			"K2022": {EnrollmentYear: 2022, Curriculum: "K2022"},
			"K2024": {EnrollmentYear: 2024, Curriculum: "K2024"},
		},
		TeachingPlans: map[string]knowledge.TeachingPlan{
			"KHMT_K2024": {Semesters: map[string]knowledge.PlanSemester{
				"1": {TotalCredits: 10, Courses: []knowledge.PlanEntry{
					{ID: "IT001", Type: "compulsory"},
					{ID: "MA006", Type: "compulsory"},
					{ID: "PE231", Type: "compulsory"},
				}},
				"2": {TotalCredits: 4, Courses: []knowledge.PlanEntry{
					{ID: "IT002", Type: "compulsory"},
				}},
				"3": {TotalCredits: 8, Courses: []knowledge.PlanEntry{
					{ID: "IT003", Type: "compulsory"},
					{Type: "elective", ElectiveSlot: "TC1", Credits: 4, Choices: []string{"CS116", "CS114"}},
				}},
				"4": {TotalCredits: 8, Courses: []knowledge.PlanEntry{
					{ID: "SE104", Type: "compulsory"},
					{ID: "", Type: "elective", Credits: 2},
				}},
			}},
		},
	}
}

func testEngine() *Engine {
	store := knowledge.NewStore(testCourses(), testRules(), testPlans())
	return New(store, logger.NewNoOpLogger())
}

// freshSnapshot is a first-semester student with an empty transcript.
func freshSnapshot() *models.StudentSnapshot {
	return &models.StudentSnapshot{
		Major:            testMajor,
		Cohort:           "K2024",
		EnrollmentYear:   2024,
		CurrentSemester:  1,
		CurrentYear:      1,
		TimeAvailability: models.TimeMedium,
	}
}

// midSnapshot is a third-semester student who cleared the first year.
func midSnapshot() *models.StudentSnapshot {
	return &models.StudentSnapshot{
		Major:            testMajor,
		Cohort:           "K2024",
		EnrollmentYear:   2024,
		CurrentSemester:  3,
		CurrentYear:      2,
		CompletedCourses: []string{"IT001", "IT002", "IT003", "MA006"},
		CourseGrades: map[string]float64{
			"IT001": 8.0, "IT002": 7.5, "IT003": 7.0, "MA006": 8.5,
		},
		Interests:        []string{"AI", "Machine Learning"},
		TimeAvailability: models.TimeMedium,
	}
}

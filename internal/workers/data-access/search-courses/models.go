// internal/workers/data-access/search-courses/models.go
package searchcourses

import "advisor-workers/internal/knowledge"

type Input struct {
	Query         string `json:"query"`
	Major         string `json:"major,omitempty"`
	CourseGroup   string `json:"courseGroup,omitempty"`
	KnowledgeArea string `json:"knowledgeArea,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

type Output struct {
	Courses   []knowledge.Course `json:"courses"`
	TotalHits int                `json:"totalHits"`
	Source    string             `json:"source"`
}

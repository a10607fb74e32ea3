// internal/knowledge/schema.go
package knowledge

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for the three knowledge documents. Validation runs once at
// load; a document that fails here is a construction-time error, never a
// per-request concern.

const coursesSchema = `{
	"type": "object",
	"required": ["courses"],
	"properties": {
		"courses": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["course_id", "course_name", "credits", "major"],
				"properties": {
					"course_id": {"type": "string", "minLength": 1},
					"course_name": {"type": "string"},
					"credits": {"type": "integer", "minimum": 0},
					"major": {"type": "array", "items": {"type": "string"}},
					"prerequisites": {"type": "array", "items": {"type": "string"}},
					"recommended_year": {"type": "integer", "minimum": 1, "maximum": 4},
					"recommended_semester": {"type": "string", "enum": ["HK1", "HK2"]},
					"course_group": {"type": "string"},
					"knowledge_area": {"type": ["array", "null"], "items": {"type": "string"}}
				}
			}
		}
	}
}`

const rulesSchema = `{
	"type": "object",
	"required": ["difficulty_weights", "recommendation_weights"],
	"properties": {
		"hard_rules": {"$ref": "#/definitions/ruleList"},
		"soft_rules": {"$ref": "#/definitions/ruleList"},
		"recommendation_rules": {"$ref": "#/definitions/ruleList"},
		"inference_rules": {"$ref": "#/definitions/ruleList"},
		"difficulty_weights": {
			"type": "object",
			"required": ["w1_prerequisite", "w2_year", "w3_group", "group_weights"],
			"properties": {
				"w1_prerequisite": {"type": "number"},
				"w2_year": {"type": "number"},
				"w3_group": {"type": "number"},
				"group_weights": {"type": "object", "additionalProperties": {"type": "number"}}
			}
		},
		"recommendation_weights": {
			"type": "object",
			"required": ["alpha_interest", "beta_difficulty", "gamma_time"],
			"properties": {
				"alpha_interest": {"type": "number", "minimum": 0},
				"beta_difficulty": {"type": "number", "minimum": 0},
				"gamma_time": {"type": "number", "minimum": 0},
				"max_difficulty": {"type": "number"},
				"overload_penalty": {"type": "number"}
			}
		},
		"graduation_requirements": {"type": "object"}
	},
	"definitions": {
		"ruleList": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["rule_id"],
				"properties": {
					"rule_id": {"type": "string", "minLength": 1},
					"rule_name": {"type": "string"},
					"description": {"type": "string"},
					"priority": {"type": "integer"}
				}
			}
		}
	}
}`

const plansSchema = `{
	"type": "object",
	"required": ["cohort_mappings", "teaching_plans"],
	"properties": {
		"cohort_mappings": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["enrollment_year", "curriculum"],
				"properties": {
					"enrollment_year": {"type": "integer"},
					"curriculum": {"type": "string"}
				}
			}
		},
		"teaching_plans": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["semesters"],
				"properties": {
					"semesters": {
						"type": "object",
						"additionalProperties": {
							"type": "object",
							"properties": {
								"courses": {"type": "array"},
								"total_credits": {"type": "integer"}
							}
						}
					}
				}
			}
		}
	}
}`

// ValidateDocument checks raw document bytes against the schema for the
// given document name ("courses", "rules" or "teaching_plans").
func ValidateDocument(name string, data []byte) error {
	var schema string
	switch name {
	case "courses":
		schema = coursesSchema
	case "rules":
		schema = rulesSchema
	case "teaching_plans":
		schema = plansSchema
	default:
		return fmt.Errorf("unknown knowledge document %q", name)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s document invalid: %s", name, strings.Join(msgs, "; "))
	}
	return nil
}

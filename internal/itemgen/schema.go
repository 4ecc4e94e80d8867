package itemgen

import "tritutor/internal/llm"

var expectedAnswerSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"kind": map[string]any{
			"type":        "string",
			"enum":        []any{"point_set", "segment", "option_id", "number"},
			"description": "The answer's type, matching the interaction",
		},
		"value": map[string]any{
			"type":        "string",
			"description": "The canonical correct answer as a string",
		},
	},
	"required": []any{"kind", "value"},
}

var optionsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":   map[string]any{"type": "string"},
			"text": map[string]any{"type": "string"},
		},
		"required": []any{"id", "text"},
	},
	"description": "Choice options. Required for multiple_choice, at least 2, one matching the expected answer value by id.",
}

var numericRuleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"tolerance": map[string]any{"type": "number", "minimum": 0},
		"min_value": map[string]any{"type": "number"},
		"max_value": map[string]any{"type": "number"},
		"unit":      map[string]any{"type": "string"},
	},
	"required":    []any{"tolerance"},
	"description": "Bounds for numeric_input answers",
}

// ItemSchema is the structured-output contract for item generation
// responses.
var ItemSchema = &llm.Schema{
	Name:        SchemaVersion,
	Description: "One triangle geometry assessment item with diagram and grading contracts",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schema_version": map[string]any{
				"type":  "string",
				"const": SchemaVersion,
			},
			"question_id": map[string]any{
				"type":        "string",
				"description": "Unique id for this question",
			},
			"question_family": map[string]any{
				"type":        "string",
				"description": "Short tag naming the reusable question pattern, e.g. identify_hypotenuse_in_diagram",
			},
			"concept_id": map[string]any{"type": "string"},
			"grade":      map[string]any{"type": "integer"},
			"interaction_type": map[string]any{
				"type": "string",
				"enum": []any{"highlight", "multiple_choice", "numeric_input"},
			},
			"difficulty_metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"generator_self_rating": map[string]any{
						"type":        "integer",
						"minimum":     1,
						"maximum":     4,
						"description": "Self-assessed difficulty from 1 (easy) to 4 (hard)",
					},
				},
				"required": []any{"generator_self_rating"},
			},
			"diagram_spec": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type": map[string]any{"type": "string", "const": "triangle"},
					"points_normalized": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
								"x":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
								"y":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
							},
							"required": []any{"id", "x", "y"},
						},
						"minItems":    3,
						"maxItems":    3,
						"description": "Exactly the three vertices A, B, C inside the unit square",
					},
					"right_angle_at": map[string]any{
						"type":        "string",
						"description": "Vertex id carrying the right angle, when the triangle has one",
					},
				},
				"required": []any{"type", "points_normalized"},
			},
			"prompt":                map[string]any{"type": "string"},
			"hint":                  map[string]any{"type": "string"},
			"explanation":           map[string]any{"type": "string"},
			"real_world_connection": map[string]any{"type": "string"},
			"response_contract": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mode": map[string]any{
						"type":        "string",
						"enum":        []any{"highlight", "multiple_choice", "numeric_input"},
						"description": "Must equal interaction_type",
					},
					"answer":       expectedAnswerSchema,
					"options":      optionsSchema,
					"numeric_rule": numericRuleSchema,
				},
				"required": []any{"mode", "answer"},
			},
			"assessment_contract": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"objective_type":      map[string]any{"type": "string"},
					"answer_schema":       map[string]any{"type": "string", "enum": []any{"segment_set", "point_set", "enum", "numeric_with_tolerance"}},
					"grading_strategy_id": map[string]any{"type": "string"},
					"feedback_policy_id":  map[string]any{"type": "string"},
					"expected_answer":     expectedAnswerSchema,
					"options":             optionsSchema,
					"numeric_rule":        numericRuleSchema,
				},
				"required": []any{"objective_type", "answer_schema", "grading_strategy_id", "feedback_policy_id", "expected_answer"},
			},
		},
		"required": []any{
			"schema_version", "question_id", "question_family", "concept_id", "grade",
			"interaction_type", "difficulty_metadata", "diagram_spec", "prompt", "hint",
			"explanation", "real_world_connection", "response_contract", "assessment_contract",
		},
		"additionalProperties": false,
	},
}

// RatingSchema is the structured-output contract for difficulty rating
// responses.
var RatingSchema = &llm.Schema{
	Name:        RatingSchemaVersion,
	Description: "Difficulty and grade-fit rating for one assessment item",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schema_version": map[string]any{
				"type":  "string",
				"const": RatingSchemaVersion,
			},
			"overall": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 4,
			},
			"dimensions": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"visual":          map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
					"language":        map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
					"reasoning_steps": map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
					"numeric":         map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
				},
				"required": []any{"visual", "language", "reasoning_steps", "numeric"},
			},
			"grade_fit": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"ok":    map[string]any{"type": "boolean"},
					"notes": map[string]any{"type": "string"},
				},
				"required": []any{"ok", "notes"},
			},
			"flags": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"contains_trig":                    map[string]any{"type": "boolean"},
					"contains_formal_proof":            map[string]any{"type": "boolean"},
					"contains_surd_or_irrational_root": map[string]any{"type": "boolean"},
					"out_of_ontology":                  map[string]any{"type": "boolean"},
					"non_renderable_diagram":           map[string]any{"type": "boolean"},
					"interaction_answer_mismatch":      map[string]any{"type": "boolean"},
				},
				"required": []any{
					"contains_trig", "contains_formal_proof", "contains_surd_or_irrational_root",
					"out_of_ontology", "non_renderable_diagram", "interaction_answer_mismatch",
				},
			},
		},
		"required":             []any{"schema_version", "overall", "dimensions", "grade_fit", "flags"},
		"additionalProperties": false,
	},
}

package grading

import (
	"context"
	"encoding/json"
	"fmt"

	"tritutor/internal/llm"
)

// rubricSchemaName tags the structured output contract for rubric
// grading responses.
const rubricSchemaName = "m3.rubric_grading.v1"

var rubricSchema = &llm.Schema{
	Name:        rubricSchemaName,
	Description: "Rubric verdict for a free-text answer.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correctness": map[string]any{
				"type": "string",
				"enum": []any{"correct", "incorrect", "ambiguous"},
			},
			"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"evidence":   map[string]any{"type": "string"},
		},
		"required": []any{"correctness", "confidence", "evidence"},
	},
}

// RubricEvaluator grades free-text submissions with a model call.
type RubricEvaluator struct {
	provider  llm.Provider
	maxTokens int
}

// NewRubricEvaluator creates a rubric evaluator over the provider.
func NewRubricEvaluator(provider llm.Provider) *RubricEvaluator {
	return &RubricEvaluator{provider: provider, maxTokens: 512}
}

func (r *RubricEvaluator) Evaluate(ctx context.Context, input Input) (*Envelope, error) {
	submitted := ""
	if input.SubmittedText != nil {
		submitted = *input.SubmittedText
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeRubricGrading)
	resp, err := r.provider.Generate(ctx, llm.Request{
		System: "You grade one Grade 6 geometry answer against the expected answer. " +
			"Judge meaning, not wording. Return only the requested JSON.",
		Messages: []llm.Message{{
			Role: llm.RoleUser,
			Content: fmt.Sprintf(
				"Concept: %s\nExpected answer: %s\nLearner's answer: %s",
				input.ConceptID, input.ExpectedAnswerValue, submitted,
			),
		}},
		Schema:    rubricSchema,
		MaxTokens: r.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	var verdict struct {
		Correctness string  `json:"correctness"`
		Confidence  float64 `json:"confidence"`
		Evidence    string  `json:"evidence"`
	}
	if err := json.Unmarshal(resp.Content, &verdict); err != nil {
		return nil, fmt.Errorf("parse rubric verdict: %w", err)
	}

	return &Envelope{
		StrategyFamily:  RubricLLM,
		DetectedAnswer:  DetectedAnswer{Kind: "text", Value: submitted},
		Correctness:     Correctness(verdict.Correctness),
		Confidence:      clampConfidence(verdict.Confidence),
		AmbiguityCodes:  []string{},
		EvidenceSummary: verdict.Evidence,
	}, nil
}

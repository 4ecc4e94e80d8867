package grading

import (
	"context"
	"fmt"
	"strings"
)

// Input carries everything the router needs to grade one submission.
// Submitted fields are pointers so "absent" and "empty" stay distinct.
type Input struct {
	ConceptID string

	// Declared grading metadata from the item's assessment contract.
	GradingStrategyID string
	AnswerSchema      string

	ExpectedAnswerValue string
	ExpectedAnswerKind  string

	SubmittedChoiceID     *string
	SubmittedNumericValue *string
	SubmittedExpression   *string
	SubmittedText         *string

	NumericRule *NumericRuleSpec
}

// NumericRuleSpec bounds numeric grading.
type NumericRuleSpec struct {
	Tolerance float64
	MinValue  *float64
	MaxValue  *float64
	Unit      string
}

// DelegateEvaluator is an injected external grader. Visual and rubric
// grading happen outside this package; the router only decides whether
// to invoke them.
type DelegateEvaluator interface {
	Evaluate(ctx context.Context, input Input) (*Envelope, error)
}

// Router dispatches submissions to strategy evaluators. Visual and
// rubric delegates may be nil, in which case those families are
// skipped during candidate iteration.
type Router struct {
	visual DelegateEvaluator
	rubric DelegateEvaluator
}

// NewRouter creates a Router with optional delegates.
func NewRouter(visual, rubric DelegateEvaluator) *Router {
	return &Router{visual: visual, rubric: rubric}
}

// MapToStrategyFamily infers the canonical family from the declared
// strategy id and answer schema, covering legacy aliases. Unmapped
// combinations land on rubric grading.
func MapToStrategyFamily(gradingStrategyID, answerSchema string) StrategyFamily {
	strategy := strings.ToLower(strings.TrimSpace(gradingStrategyID))
	schema := strings.ToLower(strings.TrimSpace(answerSchema))

	switch strategy {
	case "deterministic_choice":
		return DeterministicChoice
	case "numeric_rule":
		return NumericRule
	case "symbolic_equivalence":
		return SymbolicEquivalence
	case "visual_target_locator":
		return VisualTargetLocator
	case "rubric_llm":
		return RubricLLM
	}

	// Legacy strategy ids from the v1 item generation.
	if strategy == "deterministic_rule" && schema == "enum" {
		return DeterministicChoice
	}
	if strategy == "deterministic_rule" && schema == "numeric_with_tolerance" {
		return NumericRule
	}
	if strategy == "vision_locator" || strategy == "hybrid" {
		return VisualTargetLocator
	}

	switch schema {
	case "enum":
		return DeterministicChoice
	case "numeric_with_tolerance":
		return NumericRule
	case "expression_equivalence":
		return SymbolicEquivalence
	case "segment_set", "point_set":
		return VisualTargetLocator
	}

	return RubricLLM
}

// Grade evaluates one submission. The returned envelope's
// StrategyFamily reflects the evaluator that actually ran, which may
// differ from the inferred family when a fallback fired.
func (r *Router) Grade(ctx context.Context, input Input) *Envelope {
	inferred := MapToStrategyFamily(input.GradingStrategyID, input.AnswerSchema)
	policy := PolicyFor(input.ConceptID)

	candidates := make([]StrategyFamily, 0, 1+len(policy.FallbackOrder))
	candidates = append(candidates, inferred)
	for _, family := range policy.FallbackOrder {
		if family != inferred {
			candidates = append(candidates, family)
		}
	}

	for _, family := range candidates {
		if !policy.Accepts(family) {
			continue
		}
		switch family {
		case DeterministicChoice:
			return evaluateChoice(input)
		case NumericRule:
			return evaluateNumeric(input)
		case SymbolicEquivalence:
			return evaluateSymbolic(input)
		case VisualTargetLocator:
			if r.visual != nil {
				return r.runDelegate(ctx, family, r.visual, input)
			}
		case RubricLLM:
			if r.rubric != nil {
				return r.runDelegate(ctx, family, r.rubric, input)
			}
		}
	}

	return &Envelope{
		StrategyFamily:  inferred,
		DetectedAnswer:  DetectedAnswer{Kind: detectedKindForMissing(input), Value: nil},
		Correctness:     GradeErr,
		Confidence:      0,
		AmbiguityCodes:  []string{CodeNoAvailableStrategy},
		EvidenceSummary: fmt.Sprintf("No usable strategy for inferred=%q and concept=%q.", inferred, input.ConceptID),
	}
}

// runDelegate invokes an external evaluator and shields callers from
// its failures.
func (r *Router) runDelegate(ctx context.Context, family StrategyFamily, delegate DelegateEvaluator, input Input) *Envelope {
	env, err := delegate.Evaluate(ctx, input)
	if err != nil || env == nil {
		return &Envelope{
			StrategyFamily:  family,
			DetectedAnswer:  DetectedAnswer{Kind: "unknown", Value: nil},
			Correctness:     GradeErr,
			Confidence:      0,
			AmbiguityCodes:  []string{CodeDelegateFailed},
			EvidenceSummary: fmt.Sprintf("Delegate evaluator for %q failed: %v.", family, err),
		}
	}
	env.StrategyFamily = family
	env.Confidence = clampConfidence(env.Confidence)
	return env
}

func detectedKindForMissing(input Input) string {
	if input.ExpectedAnswerKind == "number" {
		return "number"
	}
	return "unknown"
}

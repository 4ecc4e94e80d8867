package grading

import "slices"

// ConceptPolicy lists which strategy families may grade a concept's
// items and in what order fallbacks are tried.
type ConceptPolicy struct {
	ConceptID            string
	AcceptableStrategies []StrategyFamily
	FallbackOrder        []StrategyFamily
}

// Accepts reports whether the family may grade this concept.
func (p ConceptPolicy) Accepts(family StrategyFamily) bool {
	return slices.Contains(p.AcceptableStrategies, family)
}

// defaultPolicy permits every family in canonical order.
var defaultPolicy = ConceptPolicy{
	ConceptID: "*",
	AcceptableStrategies: []StrategyFamily{
		DeterministicChoice, NumericRule, VisualTargetLocator, SymbolicEquivalence, RubricLLM,
	},
	FallbackOrder: []StrategyFamily{
		DeterministicChoice, NumericRule, VisualTargetLocator, SymbolicEquivalence, RubricLLM,
	},
}

// conceptPolicies holds per-concept overrides. The equation concept is
// graded symbolically first and never numerically.
var conceptPolicies = map[string]ConceptPolicy{
	"tri.pyth.equation_a2_b2_c2": {
		ConceptID: "tri.pyth.equation_a2_b2_c2",
		AcceptableStrategies: []StrategyFamily{
			SymbolicEquivalence, DeterministicChoice, RubricLLM,
		},
		FallbackOrder: []StrategyFamily{
			SymbolicEquivalence, DeterministicChoice, RubricLLM,
		},
	},
}

// PolicyFor returns the concept's policy, or the permissive default.
func PolicyFor(conceptID string) ConceptPolicy {
	if p, ok := conceptPolicies[conceptID]; ok {
		return p
	}
	return defaultPolicy
}

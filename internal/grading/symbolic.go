package grading

import (
	"fmt"
	"sort"
	"strings"
)

// evaluateSymbolic grades an expression by canonicalizing both sides
// and comparing the resulting strings.
func evaluateSymbolic(input Input) *Envelope {
	submitted := ""
	if input.SubmittedExpression != nil {
		submitted = strings.TrimSpace(*input.SubmittedExpression)
	}
	if submitted == "" {
		return &Envelope{
			StrategyFamily:  SymbolicEquivalence,
			DetectedAnswer:  DetectedAnswer{Kind: "expression", Value: nil},
			Correctness:     Ambiguous,
			Confidence:      0,
			AmbiguityCodes:  []string{CodeMissingSymbolicInput},
			EvidenceSummary: "No symbolic expression was submitted.",
		}
	}

	canonSubmitted := canonicalizeExpression(submitted)
	canonExpected := canonicalizeExpression(input.ExpectedAnswerValue)
	equivalent := canonSubmitted != "" && canonSubmitted == canonExpected

	verdict := Incorrect
	confidence := 0.75
	if equivalent {
		verdict = Correct
		confidence = 0.95
	}

	return &Envelope{
		StrategyFamily:  SymbolicEquivalence,
		DetectedAnswer:  DetectedAnswer{Kind: "expression", Value: submitted},
		Correctness:     verdict,
		Confidence:      confidence,
		AmbiguityCodes:  []string{},
		EvidenceSummary: fmt.Sprintf("Canonical comparison used. submitted=%q expected=%q.", canonSubmitted, canonExpected),
	}
}

// normalizeExpression lowercases, strips whitespace, and rewrites the
// superscript-two exponent to caret notation.
func normalizeExpression(v string) string {
	s := strings.ToLower(v)
	s = strings.Join(strings.Fields(s), "")
	return strings.ReplaceAll(s, "²", "^2")
}

// canonicalizeExpression additionally sorts the "+"-separated terms on
// each side of an equation so term order does not affect equality.
func canonicalizeExpression(v string) string {
	normalized := normalizeExpression(v)
	if !strings.Contains(normalized, "=") {
		return normalized
	}

	left, right, _ := strings.Cut(normalized, "=")
	return canonicalSide(left) + "=" + canonicalSide(right)
}

func canonicalSide(side string) string {
	terms := strings.Split(side, "+")
	kept := terms[:0]
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	sort.Strings(kept)
	return strings.Join(kept, "+")
}

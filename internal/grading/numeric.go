package grading

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// evaluateNumeric grades a numeric submission against the expected
// value within tolerance, flagging out-of-range values without forcing
// them incorrect on range alone.
func evaluateNumeric(input Input) *Envelope {
	var rule NumericRuleSpec
	if input.NumericRule != nil {
		rule = *input.NumericRule
	}

	submitted, ok := parseNumeric(input.SubmittedNumericValue)
	if !ok {
		return &Envelope{
			StrategyFamily:  NumericRule,
			DetectedAnswer:  DetectedAnswer{Kind: "number", Value: nil, Unit: rule.Unit},
			Correctness:     Ambiguous,
			Confidence:      0,
			AmbiguityCodes:  []string{CodeInvalidNumericInput},
			EvidenceSummary: "Submitted value is missing or not parseable as a number.",
		}
	}

	expected, ok := parseNumeric(&input.ExpectedAnswerValue)
	if !ok {
		return &Envelope{
			StrategyFamily:  NumericRule,
			DetectedAnswer:  DetectedAnswer{Kind: "number", Value: submitted, Unit: rule.Unit},
			Correctness:     GradeErr,
			Confidence:      0,
			AmbiguityCodes:  []string{CodeMissingExpectedNumericRule},
			EvidenceSummary: "Expected numeric answer is missing or invalid in the assessment contract.",
		}
	}

	tolerance := math.Abs(rule.Tolerance)
	inRange := (rule.MinValue == nil || submitted >= *rule.MinValue) &&
		(rule.MaxValue == nil || submitted <= *rule.MaxValue)
	delta := math.Abs(submitted - expected)
	correct := inRange && delta <= tolerance

	verdict := Incorrect
	if correct {
		verdict = Correct
	}
	codes := []string{}
	if !inRange {
		codes = append(codes, CodeNumericOutsideAllowedRange)
	}

	return &Envelope{
		StrategyFamily:  NumericRule,
		DetectedAnswer:  DetectedAnswer{Kind: "number", Value: submitted, Unit: rule.Unit},
		Correctness:     verdict,
		Confidence:      1,
		AmbiguityCodes:  codes,
		EvidenceSummary: fmt.Sprintf("submitted=%v, expected=%v, tolerance=±%v, in_range=%t, |delta|=%v.", submitted, expected, tolerance, inRange, delta),
	}
}

func parseNumeric(v *string) (float64, bool) {
	if v == nil {
		return 0, false
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

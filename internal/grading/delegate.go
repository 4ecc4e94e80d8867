package grading

import (
	"context"
	"fmt"
	"strings"
)

// DefaultAmbiguityThreshold classifies a visual observation as
// ambiguous when its ambiguity score reaches this cutoff. Tunable, not
// structural.
const DefaultAmbiguityThreshold = 0.6

// VisualObservation is what an external ink/vision locator reports
// about rendered evidence.
type VisualObservation struct {
	DetectedTargetClass string
	DetectedTarget      string
	AmbiguityScore      float64
	Confidence          float64
	ReasonCodes         []string
}

// TargetLocator finds the learner's highlighted target in rendered
// evidence. Implemented outside this core.
type TargetLocator interface {
	Locate(ctx context.Context, input Input) (*VisualObservation, error)
}

// VisualEvaluator adapts a TargetLocator into a DelegateEvaluator,
// applying the ambiguity threshold and comparing the detected target
// against the expected answer.
type VisualEvaluator struct {
	locator   TargetLocator
	threshold float64
}

// NewVisualEvaluator wraps locator. A non-positive threshold falls
// back to the default.
func NewVisualEvaluator(locator TargetLocator, ambiguityThreshold float64) *VisualEvaluator {
	if ambiguityThreshold <= 0 {
		ambiguityThreshold = DefaultAmbiguityThreshold
	}
	return &VisualEvaluator{locator: locator, threshold: ambiguityThreshold}
}

func (v *VisualEvaluator) Evaluate(ctx context.Context, input Input) (*Envelope, error) {
	obs, err := v.locator.Locate(ctx, input)
	if err != nil {
		return nil, err
	}

	detected := DetectedAnswer{
		Kind:  obs.DetectedTargetClass,
		Value: obs.DetectedTarget,
	}

	if obs.AmbiguityScore >= v.threshold {
		codes := append([]string{CodeVisualAmbiguous}, obs.ReasonCodes...)
		return &Envelope{
			StrategyFamily:  VisualTargetLocator,
			DetectedAnswer:  detected,
			Correctness:     Ambiguous,
			Confidence:      clampConfidence(obs.Confidence),
			AmbiguityCodes:  codes,
			EvidenceSummary: fmt.Sprintf("Locator ambiguity %.2f at or above threshold %.2f.", obs.AmbiguityScore, v.threshold),
		}, nil
	}

	correct := canonicalTarget(obs.DetectedTarget) == canonicalTarget(input.ExpectedAnswerValue)
	verdict := Incorrect
	if correct {
		verdict = Correct
	}

	return &Envelope{
		StrategyFamily:  VisualTargetLocator,
		DetectedAnswer:  detected,
		Correctness:     verdict,
		Confidence:      clampConfidence(obs.Confidence),
		AmbiguityCodes:  append([]string{}, obs.ReasonCodes...),
		EvidenceSummary: fmt.Sprintf("Detected %s %q vs expected %q (ambiguity %.2f).", obs.DetectedTargetClass, obs.DetectedTarget, input.ExpectedAnswerValue, obs.AmbiguityScore),
	}, nil
}

// canonicalTarget compares segment names order-insensitively, so "AB"
// and "BA" identify the same segment.
func canonicalTarget(v string) string {
	s := strings.ToUpper(strings.TrimSpace(v))
	if len(s) == 2 && s[0] > s[1] {
		return string([]byte{s[1], s[0]})
	}
	return s
}

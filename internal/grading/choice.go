package grading

import "fmt"

// evaluateChoice grades an option-id submission by exact match.
func evaluateChoice(input Input) *Envelope {
	expected := normalizeChoiceID(&input.ExpectedAnswerValue)
	submitted := normalizeChoiceID(input.SubmittedChoiceID)

	if submitted == "" {
		return &Envelope{
			StrategyFamily:  DeterministicChoice,
			DetectedAnswer:  DetectedAnswer{Kind: "option_id", Value: nil},
			Correctness:     Ambiguous,
			Confidence:      0,
			AmbiguityCodes:  []string{CodeNoChoiceSubmitted},
			EvidenceSummary: "No option id was submitted for deterministic choice grading.",
		}
	}

	correct := expected != "" && submitted == expected
	verdict := Incorrect
	summary := fmt.Sprintf("Submitted option %q did not match expected option %q.", submitted, expected)
	if correct {
		verdict = Correct
		summary = fmt.Sprintf("Submitted option %q matched expected option %q.", submitted, expected)
	}

	return &Envelope{
		StrategyFamily:  DeterministicChoice,
		DetectedAnswer:  DetectedAnswer{Kind: "option_id", Value: submitted},
		Correctness:     verdict,
		Confidence:      1,
		AmbiguityCodes:  []string{},
		EvidenceSummary: summary,
	}
}

func normalizeChoiceID(v *string) string {
	if v == nil {
		return ""
	}
	return trimmed(*v)
}

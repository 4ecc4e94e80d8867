// Package grading routes a learner's submitted response to one of five
// strategy families and evaluates it into a structured result envelope.
// The router never fails: unresolvable situations become envelopes with
// correctness "error" and an explicit code.
package grading

// StrategyFamily is one of the five canonical grading strategies.
type StrategyFamily string

const (
	DeterministicChoice StrategyFamily = "deterministic_choice"
	NumericRule         StrategyFamily = "numeric_rule"
	SymbolicEquivalence StrategyFamily = "symbolic_equivalence"
	VisualTargetLocator StrategyFamily = "visual_target_locator"
	RubricLLM           StrategyFamily = "rubric_llm"
)

// Correctness is the graded verdict.
type Correctness string

const (
	Correct   Correctness = "correct"
	Incorrect Correctness = "incorrect"
	Ambiguous Correctness = "ambiguous"
	GradeErr  Correctness = "error"
)

// Ambiguity and error codes attached to envelopes.
const (
	CodeNoChoiceSubmitted          = "NO_CHOICE_SUBMITTED"
	CodeInvalidNumericInput        = "INVALID_NUMERIC_INPUT"
	CodeMissingExpectedNumericRule = "MISSING_EXPECTED_NUMERIC_RULE"
	CodeNumericOutsideAllowedRange = "NUMERIC_OUTSIDE_ALLOWED_RANGE"
	CodeMissingSymbolicInput       = "MISSING_SYMBOLIC_INPUT"
	CodeNoAvailableStrategy        = "NO_AVAILABLE_STRATEGY"
	CodeDelegateFailed             = "DELEGATE_FAILED"
	CodeVisualAmbiguous            = "VISUAL_AMBIGUOUS"
)

// DetectedAnswer is the typed interpretation of what the learner
// submitted, as understood by the evaluator that ran.
type DetectedAnswer struct {
	// Kind is option_id, number, expression, segment, point_set, text,
	// or unknown.
	Kind  string `json:"kind"`
	Value any    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Envelope is the terminal grading result handed back to the session.
type Envelope struct {
	StrategyFamily  StrategyFamily `json:"strategy_family"`
	DetectedAnswer  DetectedAnswer `json:"detected_answer"`
	Correctness     Correctness    `json:"correctness"`
	Confidence      float64        `json:"confidence"`
	AmbiguityCodes  []string       `json:"ambiguity_codes"`
	EvidenceSummary string         `json:"evidence_summary"`
}

func clampConfidence(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Package itemgen turns a (concept, difficulty, intent) request into a
// validated assessment item. Generation and rating are delegated to
// capability interfaces; validation and the retry/fallback loop live
// here.
package itemgen

import (
	"fmt"

	"tritutor/internal/history"
	"tritutor/internal/mastery"
)

// SchemaVersion is the canonical item document version. Older flat
// answer shapes are not accepted.
const SchemaVersion = "m3.question_spec.v2"

// RatingSchemaVersion tags difficulty rating documents.
const RatingSchemaVersion = "m3.difficulty_rating.v1"

// Interaction types a generated item may use.
const (
	InteractionHighlight      = "highlight"
	InteractionMultipleChoice = "multiple_choice"
	InteractionNumericInput   = "numeric_input"
)

// Point is one named diagram vertex in normalized [0,1] coordinates.
type Point struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// DiagramSpec describes the triangle rendered alongside the prompt.
type DiagramSpec struct {
	Type             string  `json:"type"`
	PointsNormalized []Point `json:"points_normalized"`
	RightAngleAt     string  `json:"right_angle_at,omitempty"`
}

// Option is one multiple-choice entry.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ExpectedAnswer is the typed correct answer.
type ExpectedAnswer struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// NumericRule bounds numeric_input answers.
type NumericRule struct {
	Tolerance float64  `json:"tolerance"`
	MinValue  *float64 `json:"min_value,omitempty"`
	MaxValue  *float64 `json:"max_value,omitempty"`
	Unit      string   `json:"unit,omitempty"`
}

// ResponseContract fixes how the learner answers the item.
type ResponseContract struct {
	Mode        string         `json:"mode"`
	Answer      ExpectedAnswer `json:"answer"`
	Options     []Option       `json:"options,omitempty"`
	NumericRule *NumericRule   `json:"numeric_rule,omitempty"`
}

// AssessmentContract fixes how the answer is graded. Its expected
// answer must agree with the response contract's.
type AssessmentContract struct {
	ObjectiveType     string         `json:"objective_type"`
	AnswerSchema      string         `json:"answer_schema"`
	GradingStrategyID string         `json:"grading_strategy_id"`
	FeedbackPolicyID  string         `json:"feedback_policy_id"`
	ExpectedAnswer    ExpectedAnswer `json:"expected_answer"`
	Options           []Option       `json:"options,omitempty"`
	NumericRule       *NumericRule   `json:"numeric_rule,omitempty"`
}

// DifficultyMetadata carries the generator's own difficulty estimate.
type DifficultyMetadata struct {
	GeneratorSelfRating int `json:"generator_self_rating"`
}

// ItemSpec is one candidate assessment item as produced by a generator,
// before validation and rating.
type ItemSpec struct {
	SchemaVersion       string              `json:"schema_version"`
	QuestionID          string              `json:"question_id"`
	QuestionFamily      string              `json:"question_family"`
	ConceptID           string              `json:"concept_id"`
	Grade               int                 `json:"grade"`
	InteractionType     string              `json:"interaction_type"`
	DifficultyMetadata  DifficultyMetadata  `json:"difficulty_metadata"`
	DiagramSpec         DiagramSpec         `json:"diagram_spec"`
	Prompt              string              `json:"prompt"`
	Hint                string              `json:"hint"`
	Explanation         string              `json:"explanation"`
	RealWorldConnection string              `json:"real_world_connection"`
	ResponseContract    ResponseContract    `json:"response_contract"`
	AssessmentContract  *AssessmentContract `json:"assessment_contract"`
}

// PromptHash returns the stable identity hash of the item's normalized
// prompt, shared by novelty validation and history recording.
func (s *ItemSpec) PromptHash() string {
	return history.PromptHash(normalizeSignal(s.Prompt))
}

// AnswerKey returns the identity string of the item's expected answer.
func (s *ItemSpec) AnswerKey() string {
	return history.AnswerKey(s.ResponseContract.Answer.Kind, s.ResponseContract.Answer.Value)
}

// GradeFit reports whether the item suits the target grade.
type GradeFit struct {
	OK    bool   `json:"ok"`
	Notes string `json:"notes"`
}

// RatingDimensions scores difficulty per dimension, each 1..4.
type RatingDimensions struct {
	Visual         int `json:"visual"`
	Language       int `json:"language"`
	ReasoningSteps int `json:"reasoning_steps"`
	Numeric        int `json:"numeric"`
}

// RatingFlags are the disqualifying content checks. Any set flag
// rejects the item regardless of its difficulty score.
type RatingFlags struct {
	ContainsTrig                 bool `json:"contains_trig"`
	ContainsFormalProof          bool `json:"contains_formal_proof"`
	ContainsSurdOrIrrationalRoot bool `json:"contains_surd_or_irrational_root"`
	OutOfOntology                bool `json:"out_of_ontology"`
	NonRenderableDiagram         bool `json:"non_renderable_diagram"`
	InteractionAnswerMismatch    bool `json:"interaction_answer_mismatch"`
}

// Any reports whether any disqualifying flag is set.
func (f RatingFlags) Any() bool {
	return f.ContainsTrig || f.ContainsFormalProof || f.ContainsSurdOrIrrationalRoot ||
		f.OutOfOntology || f.NonRenderableDiagram || f.InteractionAnswerMismatch
}

// DifficultyRating is the rater's verdict on one item.
type DifficultyRating struct {
	SchemaVersion string           `json:"schema_version"`
	Overall       int              `json:"overall"`
	Dimensions    RatingDimensions `json:"dimensions"`
	GradeFit      GradeFit         `json:"grade_fit"`
	Flags         RatingFlags      `json:"flags"`
}

// Validate checks the rating document itself: schema tag and every
// numeric score an integer in [1,4].
func (r *DifficultyRating) Validate() error {
	if r.SchemaVersion != RatingSchemaVersion {
		return fmt.Errorf("unexpected rating schema %q", r.SchemaVersion)
	}
	scores := map[string]int{
		"overall":         r.Overall,
		"visual":          r.Dimensions.Visual,
		"language":        r.Dimensions.Language,
		"reasoning_steps": r.Dimensions.ReasoningSteps,
		"numeric":         r.Dimensions.Numeric,
	}
	for name, v := range scores {
		if v < 1 || v > 4 {
			return fmt.Errorf("rating %s=%d outside [1,4]", name, v)
		}
	}
	return nil
}

// GenerateInput is the full request context handed to a Generator.
type GenerateInput struct {
	ConceptID    string
	ConceptTitle string
	Grade        int

	// Target bounds the difficulty the item should land on.
	Target              mastery.Target
	RequestedDifficulty int
	Intent              mastery.Intent

	AllowedInteractionTypes []string

	// Learner is the bounded recent-item history, used to steer the
	// generator away from repeats. May be nil.
	Learner *history.LearnerContext
}

// ItemBundle is the consumer-facing result of one orchestrated request.
type ItemBundle struct {
	RequestID string
	Item      *ItemSpec

	// Rating is nil when the fallback path produced the item.
	Rating          *DifficultyRating
	RatedDifficulty int
	FallbackUsed    bool
}

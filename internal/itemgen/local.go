package itemgen

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"tritutor/internal/curriculum"
)

// fallbackPoints is the one known-good diagram: a wide triangle with
// its right angle at C, safely inside the unit square.
var fallbackPoints = []Point{
	{ID: "A", X: 0.2, Y: 0.78},
	{ID: "B", X: 0.8, Y: 0.78},
	{ID: "C", X: 0.55, Y: 0.18},
}

// LocalGenerator produces items from canned per-concept templates. It
// is deterministic, never fails, and serves both as the orchestrator's
// terminal fallback and as a test double.
type LocalGenerator struct {
	Grade int
}

func (g *LocalGenerator) Generate(_ context.Context, input GenerateInput) (*ItemSpec, error) {
	interaction := defaultInteractionType(input.ConceptID)
	if len(input.AllowedInteractionTypes) > 0 && !slices.Contains(input.AllowedInteractionTypes, interaction) {
		interaction = input.AllowedInteractionTypes[0]
	}

	t := templateFor(input.ConceptID, interaction)
	difficulty := min(max(input.RequestedDifficulty, input.Target.MinDifficulty), input.Target.MaxDifficulty)

	item := &ItemSpec{
		SchemaVersion:   SchemaVersion,
		QuestionID:      fmt.Sprintf("local.%s.d%d.%s", input.ConceptID, difficulty, input.Intent),
		QuestionFamily:  t.family,
		ConceptID:       input.ConceptID,
		Grade:           g.Grade,
		InteractionType: interaction,
		DifficultyMetadata: DifficultyMetadata{
			GeneratorSelfRating: difficulty,
		},
		DiagramSpec: DiagramSpec{
			Type:             "triangle",
			PointsNormalized: slices.Clone(fallbackPoints),
			RightAngleAt:     "C",
		},
		Prompt:              t.prompt,
		Hint:                t.hint,
		Explanation:         t.explanation,
		RealWorldConnection: t.realWorld,
	}
	item.ResponseContract, item.AssessmentContract = contractsFor(interaction, t)
	return item, nil
}

func defaultInteractionType(conceptID string) string {
	switch {
	case strings.HasPrefix(conceptID, "tri.basics."),
		strings.HasPrefix(conceptID, "tri.structure."),
		strings.HasPrefix(conceptID, "tri.reasoning."):
		return InteractionHighlight
	default:
		return InteractionMultipleChoice
	}
}

type localTemplate struct {
	family      string
	prompt      string
	hint        string
	explanation string
	realWorld   string

	// answer is the expected value: a vertex or segment name for
	// highlight, an option id for multiple choice, a number string for
	// numeric input.
	answer     string
	answerKind string
	options    []Option
}

var yesNoOptions = []Option{
	{ID: "opt_yes", Text: "Yes"},
	{ID: "opt_no", Text: "No"},
}

// templateFor picks a canned item body. Concept-specific entries come
// first; prefix defaults cover the rest of the ontology.
func templateFor(conceptID, interaction string) localTemplate {
	switch conceptID {
	case "tri.structure.legs":
		return localTemplate{
			family:      "local.identify_legs",
			prompt:      "Highlight one of the two legs of this triangle.",
			hint:        "The legs are the two sides that meet at the right angle.",
			explanation: "Sides AC and BC form the right angle at C, so each of them is a leg.",
			realWorld:   "The wall and the floor act as the legs when a ladder leans against a house.",
			answer:      "AC",
			answerKind:  "segment",
		}
	case "tri.structure.opposite_adjacent_relative":
		return localTemplate{
			family:      "local.opposite_side",
			prompt:      "Highlight the side opposite vertex A.",
			hint:        "A side is adjacent to a vertex when it touches it, and opposite when it does not.",
			explanation: "Side BC never touches vertex A, so BC is the side opposite A.",
			realWorld:   "Builders name beams by the corner they face when planning a frame.",
			answer:      "BC",
			answerKind:  "segment",
		}
	case "tri.pyth.check_if_right_triangle":
		return localTemplate{
			family:      "local.check_right_triangle",
			prompt:      "A triangle has sides 6, 8, and 10. Is it a right triangle?",
			hint:        "Apply the Pythagorean check: compare 6²+8² with 10².",
			explanation: "36+64 equals 100, which matches 10², so the triangle is a right triangle.",
			realWorld:   "Carpenters check corners with the 6-8-10 rule before fixing a frame.",
			answer:      "opt_yes",
			answerKind:  "option_id",
			options:     yesNoOptions,
		}
	case "tri.pyth.solve_missing_side":
		if interaction == InteractionNumericInput {
			return localTemplate{
				family:      "local.solve_hypotenuse",
				prompt:      "Solve for the unknown side: a right triangle has legs 5 and 12. Enter the hypotenuse length.",
				hint:        "Apply the Pythagorean rule a²+b²=c² and take the square root.",
				explanation: "25+144 equals 169, and 169 is 13 squared, so the hypotenuse is 13.",
				realWorld:   "This is how a decorator works out the diagonal of a door frame.",
				answer:      "13",
				answerKind:  "number",
			}
		}
		return localTemplate{
			family:      "local.solve_hypotenuse",
			prompt:      "Solve for the unknown side: a right triangle has legs 5 and 12. Which is the hypotenuse length?",
			hint:        "Apply the Pythagorean rule a²+b²=c² and take the square root.",
			explanation: "25+144 equals 169, and 169 is 13 squared, so the hypotenuse is 13.",
			realWorld:   "This is how a decorator works out the diagonal of a door frame.",
			answer:      "opt_13",
			answerKind:  "option_id",
			options: []Option{
				{ID: "opt_13", Text: "13"},
				{ID: "opt_17", Text: "17"},
				{ID: "opt_7", Text: "7"},
			},
		}
	}

	switch {
	case strings.HasPrefix(conceptID, "tri.basics."):
		t := localTemplate{
			family:      "local.right_angle_vertex",
			hint:        "The right angle measures 90 degrees and is marked with a tiny square.",
			explanation: "A triangle has three sides, three vertices, and three angles; the square marker shows the right angle at C, so this is a right triangle.",
			realWorld:   "Carpenters rely on square corners when framing doors and windows.",
		}
		if interaction == InteractionHighlight {
			t.prompt = "Highlight the vertex that holds the right angle."
			t.answer = "C"
			t.answerKind = "point_set"
		} else {
			t.prompt = "Which vertex of this triangle holds the right angle?"
			t.answer = "opt_c"
			t.answerKind = "option_id"
			t.options = []Option{
				{ID: "opt_a", Text: "Vertex A"},
				{ID: "opt_b", Text: "Vertex B"},
				{ID: "opt_c", Text: "Vertex C"},
			}
		}
		return t

	case strings.HasPrefix(conceptID, "tri.structure."):
		t := localTemplate{
			family:      "local.identify_hypotenuse",
			hint:        "The hypotenuse is the side opposite the right angle.",
			explanation: "The right angle sits at C, so the side AB across from it is the hypotenuse.",
			realWorld:   "A ramp's sloped surface is the hypotenuse of the triangle it forms with the ground.",
		}
		if interaction == InteractionHighlight {
			t.prompt = "Highlight the hypotenuse of this right triangle."
			t.answer = "AB"
			t.answerKind = "segment"
		} else {
			t.prompt = "Which side of this right triangle is the hypotenuse?"
			t.answer = "opt_ab"
			t.answerKind = "option_id"
			t.options = []Option{
				{ID: "opt_ab", Text: "AB"},
				{ID: "opt_bc", Text: "BC"},
				{ID: "opt_ca", Text: "CA"},
			}
		}
		return t

	case strings.HasPrefix(conceptID, "tri.reasoning."):
		t := localTemplate{
			family:      "local.longest_side",
			hint:        "The hypotenuse lies opposite the largest angle.",
			explanation: "The right angle is the largest angle here, so the hypotenuse AB across from it must be the longest side.",
			realWorld:   "The longest brace in a shelf bracket always spans the widest gap.",
		}
		if interaction == InteractionHighlight {
			t.prompt = "Highlight the longest side of this right triangle."
			t.answer = "AB"
			t.answerKind = "segment"
		} else {
			t.prompt = "Which side of this right triangle is the longest?"
			t.answer = "opt_ab"
			t.answerKind = "option_id"
			t.options = []Option{
				{ID: "opt_ab", Text: "AB"},
				{ID: "opt_bc", Text: "BC"},
				{ID: "opt_ca", Text: "CA"},
			}
		}
		return t

	case strings.HasPrefix(conceptID, "tri.pyth."):
		if interaction == InteractionNumericInput {
			return localTemplate{
				family:      "local.pythagorean_compute",
				prompt:      "A right triangle has legs 5 and 12. Enter the hypotenuse length.",
				hint:        "Apply the Pythagorean rule a²+b²=c².",
				explanation: "25 plus 144 equals 169, and 169 is 13 squared, so the hypotenuse is 13.",
				realWorld:   "This is how a decorator works out the diagonal of a door frame.",
				answer:      "13",
				answerKind:  "number",
			}
		}
		return localTemplate{
			family:      "local.pythagorean_equation",
			prompt:      "Which equation shows the Pythagorean relationship?",
			hint:        "The square of the hypotenuse equals the sum of the squares of the legs.",
			explanation: "In a right triangle the legs a and b and hypotenuse c always satisfy a²+b²=c².",
			realWorld:   "Architects apply this check when laying out square building corners.",
			answer:      "opt_a",
			answerKind:  "option_id",
			options: []Option{
				{ID: "opt_a", Text: "a²+b²=c²"},
				{ID: "opt_b", Text: "a+b=c"},
				{ID: "opt_c", Text: "a²=b²+c²"},
			},
		}
	}

	if interaction == InteractionNumericInput {
		return localTemplate{
			family:      "local.ladder_model",
			prompt:      "A ladder is 13 m long and reaches 12 m up a wall. Enter how far its base stands from the wall.",
			hint:        "Model the story as a right triangle and apply the Pythagorean rule.",
			explanation: "169 minus 144 equals 25, and 25 is 5 squared, so the base stands 5 m out.",
			realWorld:   "Fire crews position ladder trucks with exactly this triangle model.",
			answer:      "5",
			answerKind:  "number",
		}
	}
	return localTemplate{
		family:      "local.ladder_model",
		prompt:      "A ladder, a wall, and the ground form a triangle. Which side is the hypotenuse?",
		hint:        "The hypotenuse is the side opposite the right angle.",
		explanation: "The wall meets the ground at a right angle, so the leaning ladder across from it is the hypotenuse.",
		realWorld:   "This model appears in building work and rescue planning.",
		answer:      "opt_ladder",
		answerKind:  "option_id",
		options: []Option{
			{ID: "opt_ladder", Text: "The ladder"},
			{ID: "opt_wall", Text: "The wall"},
			{ID: "opt_ground", Text: "The ground"},
		},
	}
}

// contractsFor assembles matching response and assessment contracts for
// a template.
func contractsFor(interaction string, t localTemplate) (ResponseContract, *AssessmentContract) {
	answer := ExpectedAnswer{Kind: t.answerKind, Value: t.answer}
	rc := ResponseContract{Mode: interaction, Answer: answer}
	ac := &AssessmentContract{
		FeedbackPolicyID: "supportive.v1",
		ExpectedAnswer:   answer,
	}

	switch interaction {
	case InteractionHighlight:
		ac.ObjectiveType = "identify_target"
		ac.GradingStrategyID = "visual_target_locator"
		if t.answerKind == "segment" {
			ac.AnswerSchema = "segment_set"
		} else {
			ac.AnswerSchema = "point_set"
		}
	case InteractionNumericInput:
		rc.NumericRule = &NumericRule{Tolerance: 0}
		ac.ObjectiveType = "compute_value"
		ac.AnswerSchema = "numeric_with_tolerance"
		ac.GradingStrategyID = "numeric_rule"
		ac.NumericRule = rc.NumericRule
	default:
		rc.Options = t.options
		ac.ObjectiveType = "select_option"
		ac.AnswerSchema = "enum"
		ac.GradingStrategyID = "deterministic_choice"
		ac.Options = t.options
	}
	return rc, ac
}

// HeuristicRater scores items with fixed rules instead of a model call.
// Used to rate fallback items and as a test double.
type HeuristicRater struct {
	Graph *curriculum.Graph
}

func (r *HeuristicRater) Rate(_ context.Context, item *ItemSpec, _ int) (*DifficultyRating, error) {
	boost := 0
	numericScore := 1
	if item.InteractionType == InteractionNumericInput {
		boost = 1
		numericScore = 3
	}
	visualScore := 2
	if item.InteractionType == InteractionHighlight {
		visualScore = 3
	}

	reasoning := 2
	if len(strings.Fields(item.Prompt)) > 20 {
		reasoning = 3
	}

	self := item.DifficultyMetadata.GeneratorSelfRating
	overall := int(math.Round(float64(reasoning+boost+self) / 2))
	overall = min(max(overall, 1), 4)

	flags := RatingFlags{
		ContainsTrig:              trigRe.MatchString(proseFields(item)),
		OutOfOntology:             r.Graph != nil && !r.Graph.Contains(item.ConceptID),
		NonRenderableDiagram:      len(validateDiagram(item.DiagramSpec)) > 0,
		InteractionAnswerMismatch: len(validateResponseContract(item)) > 0,
	}

	fit := GradeFit{OK: !flags.Any()}
	if !fit.OK {
		fit.Notes = "heuristic checks failed"
	}

	return &DifficultyRating{
		SchemaVersion: RatingSchemaVersion,
		Overall:       overall,
		Dimensions: RatingDimensions{
			Visual:         visualScore,
			Language:       2,
			ReasoningSteps: min(max(reasoning, 1), 4),
			Numeric:        numericScore,
		},
		GradeFit: fit,
		Flags:    flags,
	}, nil
}

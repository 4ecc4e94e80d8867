package itemgen

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"tritutor/internal/curriculum"
	"tritutor/internal/grading"
)

// Violated-rule tags accumulated by the validators. One attempt can
// carry several so its diagnostics are complete.
const (
	TagSchema                    = "schema"
	TagGradeCap                  = "grade_cap"
	TagOntology                  = "ontology"
	TagInteractionNotAllowed     = "interaction_not_allowed"
	TagContainsTrig              = "contains_trig"
	TagDiagramInvalid            = "diagram_invalid"
	TagDiagramPoints             = "diagram_points"
	TagDiagramBounds             = "diagram_bounds"
	TagDiagramDegenerate         = "diagram_degenerate"
	TagAnswerMismatch            = "answer_mismatch"
	TagAssessmentContractMissing = "assessment_contract_missing"
	TagAssessmentContractInvalid = "assessment_contract_invalid"
	TagStrategyNotAllowed        = "strategy_not_allowed"
	TagConceptMismatch           = "concept_mismatch"
	TagGenericRepetition         = "generic_repetition"
	TagNoveltyViolation          = "novelty_violation"
)

// minTriangleArea rejects degenerate diagrams whose three points are
// collinear or nearly so.
const minTriangleArea = 0.001

var (
	trigRe     = regexp.MustCompile(`(?i)\b(sin|cos|tan)\b`)
	advancedRe = regexp.MustCompile(`(?i)\b(proof|surd|irrational)\b`)
)

// StructuralValidator checks a candidate item against the fixed
// structural and cross-contract rules.
type StructuralValidator struct {
	Graph *curriculum.Graph
	Grade int
}

// Validate returns every violated rule tag, empty when the item is
// structurally sound for the requested concept.
func (v *StructuralValidator) Validate(item *ItemSpec, conceptID string, allowedInteractionTypes []string) []string {
	var tags []string

	if item.SchemaVersion != SchemaVersion {
		tags = append(tags, TagSchema)
	}

	prose := proseFields(item)
	if item.Grade != v.Grade || advancedRe.MatchString(prose) {
		tags = append(tags, TagGradeCap)
	}
	if item.ConceptID != conceptID || !v.Graph.Contains(item.ConceptID) {
		tags = append(tags, TagOntology)
	}
	if !slices.Contains(allowedInteractionTypes, item.InteractionType) {
		tags = append(tags, TagInteractionNotAllowed)
	}
	if trigRe.MatchString(prose) {
		tags = append(tags, TagContainsTrig)
	}

	tags = append(tags, validateDiagram(item.DiagramSpec)...)
	tags = append(tags, validateResponseContract(item)...)
	tags = append(tags, validateAssessmentContract(item)...)

	return tags
}

func proseFields(item *ItemSpec) string {
	parts := []string{item.Prompt, item.Hint, item.Explanation, item.RealWorldConnection}
	for _, opt := range item.ResponseContract.Options {
		parts = append(parts, opt.Text)
	}
	return strings.Join(parts, "\n")
}

func validateDiagram(d DiagramSpec) []string {
	if d.Type != "triangle" || len(d.PointsNormalized) != 3 {
		return []string{TagDiagramInvalid}
	}

	var tags []string
	ids := map[string]bool{}
	for _, p := range d.PointsNormalized {
		ids[p.ID] = true
	}
	if !ids["A"] || !ids["B"] || !ids["C"] {
		tags = append(tags, TagDiagramPoints)
	}

	inBounds := true
	for _, p := range d.PointsNormalized {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			inBounds = false
		}
	}
	if !inBounds {
		tags = append(tags, TagDiagramBounds)
	}

	if triangleArea(d.PointsNormalized) <= minTriangleArea {
		tags = append(tags, TagDiagramDegenerate)
	}
	return tags
}

func triangleArea(pts []Point) float64 {
	a, b, c := pts[0], pts[1], pts[2]
	return math.Abs(a.X*(b.Y-c.Y)+b.X*(c.Y-a.Y)+c.X*(a.Y-b.Y)) / 2
}

// validateResponseContract checks mode agreement and the per-interaction
// expected-answer table.
func validateResponseContract(item *ItemSpec) []string {
	rc := item.ResponseContract
	if rc.Mode != item.InteractionType {
		return []string{TagAnswerMismatch}
	}

	switch item.InteractionType {
	case InteractionHighlight:
		if rc.Answer.Kind != "point_set" && rc.Answer.Kind != "segment" {
			return []string{TagAnswerMismatch}
		}
	case InteractionMultipleChoice:
		if rc.Answer.Kind != "option_id" || len(rc.Options) < 2 {
			return []string{TagAnswerMismatch}
		}
		found := false
		for _, opt := range rc.Options {
			if opt.ID == rc.Answer.Value {
				found = true
			}
		}
		if !found {
			return []string{TagAnswerMismatch}
		}
	case InteractionNumericInput:
		if rc.Answer.Kind != "number" {
			return []string{TagAnswerMismatch}
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(rc.Answer.Value), 64); err != nil {
			return []string{TagAnswerMismatch}
		}
	}
	return nil
}

// answerSchemaByInteraction is the fixed compatibility table between
// interaction types and assessment answer schemas.
var answerSchemaByInteraction = map[string][]string{
	InteractionHighlight:      {"segment_set", "point_set"},
	InteractionMultipleChoice: {"enum"},
	InteractionNumericInput:   {"numeric_with_tolerance"},
}

func validateAssessmentContract(item *ItemSpec) []string {
	ac := item.AssessmentContract
	if ac == nil {
		return []string{TagAssessmentContractMissing}
	}

	var tags []string
	invalid := ac.ObjectiveType == "" || ac.AnswerSchema == "" ||
		ac.GradingStrategyID == "" || ac.FeedbackPolicyID == ""
	if ac.ExpectedAnswer != item.ResponseContract.Answer {
		invalid = true
	}
	if compatible, ok := answerSchemaByInteraction[item.InteractionType]; ok && !slices.Contains(compatible, ac.AnswerSchema) {
		invalid = true
	}
	if invalid {
		tags = append(tags, TagAssessmentContractInvalid)
	}

	family := grading.MapToStrategyFamily(ac.GradingStrategyID, ac.AnswerSchema)
	if !grading.PolicyFor(item.ConceptID).Accepts(family) {
		tags = append(tags, TagStrategyNotAllowed)
	}
	return tags
}

package itemgen

import "strings"

// AllowedInteractionTypes returns the interaction types an item for the
// concept may use. Early identification concepts stay visual; the
// Pythagoras computation concepts move to typed numeric answers.
// Unknown concepts get the safe multiple_choice default.
func AllowedInteractionTypes(conceptID string) []string {
	switch conceptID {
	case "tri.pyth.check_if_right_triangle", "tri.pyth.square_area_intuition":
		return []string{InteractionHighlight, InteractionMultipleChoice, InteractionNumericInput}
	case "tri.pyth.equation_a2_b2_c2", "tri.pyth.solve_missing_side", "tri.pyth.square_numbers_refresher":
		return []string{InteractionMultipleChoice, InteractionNumericInput}
	}

	switch {
	case strings.HasPrefix(conceptID, "tri.basics."),
		strings.HasPrefix(conceptID, "tri.structure."),
		strings.HasPrefix(conceptID, "tri.reasoning."):
		return []string{InteractionHighlight, InteractionMultipleChoice}
	case strings.HasPrefix(conceptID, "tri.app."):
		return []string{InteractionMultipleChoice, InteractionNumericInput}
	}

	return []string{InteractionMultipleChoice}
}

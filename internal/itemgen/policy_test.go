package itemgen

import (
	"slices"
	"testing"
)

func TestAllowedInteractionTypes(t *testing.T) {
	tests := []struct {
		conceptID string
		want      []string
	}{
		{"tri.basics.identify_right_angle", []string{InteractionHighlight, InteractionMultipleChoice}},
		{"tri.structure.hypotenuse", []string{InteractionHighlight, InteractionMultipleChoice}},
		{"tri.reasoning.hypotenuse_longest", []string{InteractionHighlight, InteractionMultipleChoice}},
		{"tri.pyth.check_if_right_triangle", []string{InteractionHighlight, InteractionMultipleChoice, InteractionNumericInput}},
		{"tri.pyth.square_area_intuition", []string{InteractionHighlight, InteractionMultipleChoice, InteractionNumericInput}},
		{"tri.pyth.equation_a2_b2_c2", []string{InteractionMultipleChoice, InteractionNumericInput}},
		{"tri.pyth.solve_missing_side", []string{InteractionMultipleChoice, InteractionNumericInput}},
		{"tri.pyth.square_numbers_refresher", []string{InteractionMultipleChoice, InteractionNumericInput}},
		{"tri.app.ladder_problem", []string{InteractionMultipleChoice, InteractionNumericInput}},
		{"geo.circle.radius", []string{InteractionMultipleChoice}},
	}
	for _, tt := range tests {
		if got := AllowedInteractionTypes(tt.conceptID); !slices.Equal(got, tt.want) {
			t.Errorf("AllowedInteractionTypes(%q) = %v, want %v", tt.conceptID, got, tt.want)
		}
	}
}

package itemgen

// semanticRule pins an item's prose to its concept. An item passes a
// required group when any of the group's phrases appears in the
// normalized text pool; any forbidden phrase fails the item.
type semanticRule struct {
	requiredGroups [][]string
	forbidden      []string
}

// conceptSemanticRules covers the concepts where off-topic generation
// has been observed. Concepts without an entry skip the check.
var conceptSemanticRules = map[string]semanticRule{
	"tri.basics.identify_right_angle": {
		requiredGroups: [][]string{{"right angle", "90"}},
		forbidden:      []string{"hypotenuse", "a2+b2", "a²+b²", "pythag"},
	},
	"tri.basics.identify_right_triangle": {
		requiredGroups: [][]string{{"right triangle", "right-angled triangle", "right angle"}},
		forbidden:      []string{"a2+b2", "a²+b²", "pythag"},
	},
	"tri.basics.vertices_sides_angles": {
		requiredGroups: [][]string{{"vertex", "vertices"}, {"side"}, {"angle"}},
		forbidden:      []string{"a2+b2", "a²+b²", "pythag"},
	},
	"tri.structure.hypotenuse": {
		requiredGroups: [][]string{{"hypotenuse"}, {"right angle", "right triangle"}},
		forbidden:      []string{"a2+b2", "a²+b²", "pythag"},
	},
	"tri.structure.legs": {
		requiredGroups: [][]string{{"leg", "legs"}},
		forbidden:      []string{"hypotenuse only", "a2+b2", "a²+b²"},
	},
	"tri.structure.opposite_adjacent_relative": {
		requiredGroups: [][]string{{"opposite"}, {"adjacent"}},
		forbidden:      []string{"sin", "cos", "tan"},
	},
	"tri.reasoning.hypotenuse_longest": {
		requiredGroups: [][]string{{"hypotenuse"}, {"longest"}},
		forbidden:      []string{"a2+b2", "a²+b²", "pythag"},
	},
	"tri.pyth.check_if_right_triangle": {
		requiredGroups: [][]string{{"right triangle", "right-angle triangle"}, {"a2+b2", "a²+b²", "pythag"}},
		forbidden:      []string{"sin", "cos", "tan"},
	},
	"tri.pyth.equation_a2_b2_c2": {
		requiredGroups: [][]string{{"a2+b2", "a²+b²", "c2", "c²", "pythag"}},
		forbidden:      []string{"sin", "cos", "tan"},
	},
	"tri.pyth.solve_missing_side": {
		requiredGroups: [][]string{{"missing side", "unknown side", "find side", "solve"}, {"a2+b2", "a²+b²", "pythag"}},
		forbidden:      []string{"sin", "cos", "tan"},
	},
}

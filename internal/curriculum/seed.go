package curriculum

// DefaultGraphID identifies the seed curriculum. Persisted in session
// blobs; bump only with a migration.
const DefaultGraphID = "g6.geometry.triangles.v1"

// TrianglesGrade6 is the built-in Grade 6 triangles curriculum:
// seventeen concepts across five levels, from angle basics up to
// applied Pythagorean problems. Every level requires full mastery of
// the previous one.
var TrianglesGrade6 = NewGraph(
	DefaultGraphID,
	"geometry.triangles",
	[]Concept{
		{ID: "tri.basics.identify_right_angle", LevelIndex: 1, Title: "Identify right angle"},
		{ID: "tri.basics.identify_right_triangle", LevelIndex: 1, Title: "Identify right-angled triangle"},
		{ID: "tri.basics.vertices_sides_angles", LevelIndex: 1, Title: "Vertices, sides, and angles"},

		{ID: "tri.structure.hypotenuse", LevelIndex: 2, Title: "Hypotenuse"},
		{ID: "tri.structure.legs", LevelIndex: 2, Title: "Legs"},
		{ID: "tri.structure.opposite_adjacent_relative", LevelIndex: 2, Title: "Opposite/Adjacent (relative)"},

		{ID: "tri.reasoning.compare_side_lengths", LevelIndex: 3, Title: "Compare side lengths"},
		{ID: "tri.reasoning.hypotenuse_longest", LevelIndex: 3, Title: "Hypotenuse is longest"},
		{ID: "tri.reasoning.informal_side_relationships", LevelIndex: 3, Title: "Informal side relationships"},

		{ID: "tri.pyth.check_if_right_triangle", LevelIndex: 4, Title: "Check if triangle is right"},
		{ID: "tri.pyth.equation_a2_b2_c2", LevelIndex: 4, Title: "a² + b² = c²"},
		{ID: "tri.pyth.solve_missing_side", LevelIndex: 4, Title: "Solve missing side"},
		{ID: "tri.pyth.square_area_intuition", LevelIndex: 4, Title: "Square area intuition"},
		{ID: "tri.pyth.square_numbers_refresher", LevelIndex: 4, Title: "Square numbers refresher"},

		{ID: "tri.app.mixed_mastery_test", LevelIndex: 5, Title: "Mixed mastery test"},
		{ID: "tri.app.real_life_modeling", LevelIndex: 5, Title: "Real-life modeling"},
		{ID: "tri.app.word_problems", LevelIndex: 5, Title: "Word problems"},
	},
	[]Level{
		{Index: 1, Title: "Triangle & Angle Basics", ConceptIDs: []string{
			"tri.basics.identify_right_angle",
			"tri.basics.identify_right_triangle",
			"tri.basics.vertices_sides_angles",
		}, UnlockThreshold: 1.0},
		{Index: 2, Title: "Right Triangle Structure", ConceptIDs: []string{
			"tri.structure.hypotenuse",
			"tri.structure.legs",
			"tri.structure.opposite_adjacent_relative",
		}, UnlockThreshold: 1.0},
		{Index: 3, Title: "Properties & Reasoning", ConceptIDs: []string{
			"tri.reasoning.compare_side_lengths",
			"tri.reasoning.hypotenuse_longest",
			"tri.reasoning.informal_side_relationships",
		}, UnlockThreshold: 1.0},
		{Index: 4, Title: "Pythagorean Theorem", ConceptIDs: []string{
			"tri.pyth.check_if_right_triangle",
			"tri.pyth.equation_a2_b2_c2",
			"tri.pyth.solve_missing_side",
			"tri.pyth.square_area_intuition",
			"tri.pyth.square_numbers_refresher",
		}, UnlockThreshold: 1.0},
		{Index: 5, Title: "Applications", ConceptIDs: []string{
			"tri.app.mixed_mastery_test",
			"tri.app.real_life_modeling",
			"tri.app.word_problems",
		}, UnlockThreshold: 1.0},
	},
)

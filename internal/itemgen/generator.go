package itemgen

import "context"

// Generator produces candidate items. Implementations: LLMGenerator
// (remote) and LocalGenerator (deterministic, used as the terminal
// fallback and as a test double).
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*ItemSpec, error)
}

// Rater scores a candidate item's difficulty and grade fit.
type Rater interface {
	Rate(ctx context.Context, item *ItemSpec, grade int) (*DifficultyRating, error)
}

package itemgen

// Config controls generation and the orchestration loop.
type Config struct {
	// Grade is the product's supported grade. Items for any other grade
	// are rejected.
	Grade int

	// MaxRetries is the number of regeneration attempts after the first,
	// so MaxRetries+1 generator calls happen before the fallback fires.
	MaxRetries int

	// MaxTokens is the token budget for one generation response.
	MaxTokens int

	// Temperature controls generation randomness (0.0-1.0).
	Temperature float64

	// NoveltyWindow and NoveltyRepeatLimit tune repeat detection against
	// the learner's recent history.
	NoveltyWindow      int
	NoveltyRepeatLimit int
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
		Grade:              6,
		MaxRetries:         2,
		MaxTokens:          1024,
		Temperature:        0.7,
		NoveltyWindow:      NoveltyWindow,
		NoveltyRepeatLimit: NoveltyRepeatLimit,
	}
}

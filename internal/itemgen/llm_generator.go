package itemgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tritutor/internal/llm"
)

// LLMGenerator implements Generator over a model provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLMGenerator creates a generator with the given provider and
// config.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate produces one candidate item. The result is unvalidated; the
// orchestrator runs the validators.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*ItemSpec, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeItemGeneration)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: generateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerateMessage(input)},
		},
		Schema:      ItemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("item generation failed: %w", err)
	}

	var item ItemSpec
	if err := json.Unmarshal(resp.Content, &item); err != nil {
		return nil, fmt.Errorf("parse item document: %w", err)
	}
	if item.QuestionID == "" {
		item.QuestionID = uuid.NewString()
	}
	return &item, nil
}

// LLMRater implements Rater over a model provider.
type LLMRater struct {
	provider  llm.Provider
	maxTokens int
}

// NewLLMRater creates a rater with the given provider.
func NewLLMRater(provider llm.Provider) *LLMRater {
	return &LLMRater{provider: provider, maxTokens: 512}
}

// Rate scores one item. The caller validates the returned document.
func (r *LLMRater) Rate(ctx context.Context, item *ItemSpec, grade int) (*DifficultyRating, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeDifficultyRating)

	itemJSON, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode item for rating: %w", err)
	}

	resp, err := r.provider.Generate(ctx, llm.Request{
		System: rateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildRateMessage(itemJSON, grade)},
		},
		Schema:    RatingSchema,
		MaxTokens: r.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("difficulty rating failed: %w", err)
	}

	var rating DifficultyRating
	if err := json.Unmarshal(resp.Content, &rating); err != nil {
		return nil, fmt.Errorf("parse rating document: %w", err)
	}
	return &rating, nil
}

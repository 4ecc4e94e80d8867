package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the tutoring pipeline talks to.
// Item generation, difficulty rating, and rubric grading all go through
// Generate with a schema-constrained request.
type Provider interface {
	// Generate sends the request and returns structured output. When
	// Request.Schema is set the returned Content is JSON validated
	// against that schema; otherwise it is the raw text response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Request is a single model invocation.
type Request struct {
	// System sets the model's role and hard constraints.
	System string

	// Messages is the turn history. The pipeline is single-turn, so
	// this is almost always one user message.
	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode and gates the response through schema validation.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]. Zero means deterministic.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON shape the model must produce.
type Schema struct {
	// Name identifies the schema to the provider (tool name for
	// Anthropic, response format name for OpenAI).
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	// Content is the validated JSON object when a Schema was requested,
	// or the raw text otherwise.
	Content json.RawMessage

	// Usage is the token accounting for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type purposeKeyType struct{}

var purposeKey purposeKeyType

// Purposes attached to contexts by the pipeline, used to label
// recorded calls.
const (
	PurposeItemGeneration   = "item_generation"
	PurposeDifficultyRating = "difficulty_rating"
	PurposeRubricGrading    = "rubric_grading"
)

// WithPurpose labels the context so call recording can attribute the
// request to a pipeline stage.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom reads the purpose label, defaulting to "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

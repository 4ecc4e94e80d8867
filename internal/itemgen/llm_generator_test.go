package itemgen

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"tritutor/internal/history"
	"tritutor/internal/llm"
	"tritutor/internal/mastery"
)

func generateInputFixture() GenerateInput {
	return GenerateInput{
		ConceptID:               "tri.structure.hypotenuse",
		ConceptTitle:            "Hypotenuse",
		Grade:                   6,
		Target:                  mastery.TargetFor(mastery.IntentPractice, 2, mastery.DefaultDifficultyCeiling),
		RequestedDifficulty:     2,
		Intent:                  mastery.IntentPractice,
		AllowedInteractionTypes: []string{InteractionHighlight, InteractionMultipleChoice},
	}
}

func TestLLMGeneratorParsesItem(t *testing.T) {
	doc, err := json.Marshal(validHighlightItem())
	if err != nil {
		t.Fatal(err)
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: doc})
	gen := NewLLMGenerator(mock, DefaultConfig())

	item, err := gen.Generate(context.Background(), generateInputFixture())
	if err != nil {
		t.Fatal(err)
	}
	if item.ConceptID != "tri.structure.hypotenuse" {
		t.Errorf("concept = %q", item.ConceptID)
	}
	if item.AssessmentContract == nil {
		t.Fatal("assessment contract missing after decode")
	}

	req := mock.Calls[0]
	if req.Schema != ItemSchema {
		t.Error("request should carry the item schema")
	}
	if !strings.Contains(req.Messages[0].Content, "tri.structure.hypotenuse") {
		t.Errorf("user message = %q", req.Messages[0].Content)
	}
	if !strings.Contains(req.Messages[0].Content, "highlight, multiple_choice") {
		t.Errorf("allowed types missing from message: %q", req.Messages[0].Content)
	}
}

func TestLLMGeneratorAssignsQuestionID(t *testing.T) {
	item := validHighlightItem()
	item.QuestionID = ""
	doc, err := json.Marshal(item)
	if err != nil {
		t.Fatal(err)
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: doc})
	gen := NewLLMGenerator(mock, DefaultConfig())

	got, err := gen.Generate(context.Background(), generateInputFixture())
	if err != nil {
		t.Fatal(err)
	}
	if got.QuestionID == "" {
		t.Error("question id should be assigned when the model omits it")
	}
}

func TestLLMGeneratorPropagatesProviderError(t *testing.T) {
	gen := NewLLMGenerator(llm.NewMockProvider(), DefaultConfig())
	if _, err := gen.Generate(context.Background(), generateInputFixture()); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestLLMGeneratorMalformedDocument(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{`)})
	gen := NewLLMGenerator(mock, DefaultConfig())
	if _, err := gen.Generate(context.Background(), generateInputFixture()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLLMGeneratorIncludesLearnerHistory(t *testing.T) {
	doc, err := json.Marshal(validHighlightItem())
	if err != nil {
		t.Fatal(err)
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: doc})
	gen := NewLLMGenerator(mock, DefaultConfig())

	input := generateInputFixture()
	input.Learner = history.NewLearnerContext()
	input.Learner.RecordAccepted("tri.structure.hypotenuse", "hash", "highlight", "segment:ab", "identify_hypotenuse")

	if _, err := gen.Generate(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "identify_hypotenuse") {
		t.Errorf("recent families missing from message: %q", msg)
	}
	if !strings.Contains(msg, "segment:ab") {
		t.Errorf("recent answers missing from message: %q", msg)
	}
}

func TestLLMRaterParsesRating(t *testing.T) {
	rating := ratingWith(3)
	doc, err := json.Marshal(rating)
	if err != nil {
		t.Fatal(err)
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: doc})
	rater := NewLLMRater(mock)

	got, err := rater.Rate(context.Background(), validHighlightItem(), 6)
	if err != nil {
		t.Fatal(err)
	}
	if got.Overall != 3 {
		t.Errorf("overall = %d", got.Overall)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("rating invalid: %v", err)
	}

	req := mock.Calls[0]
	if req.Schema != RatingSchema {
		t.Error("request should carry the rating schema")
	}
	if !strings.Contains(req.Messages[0].Content, "Grade: 6") {
		t.Errorf("grade missing from message: %q", req.Messages[0].Content)
	}
}

func TestDifficultyRatingValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DifficultyRating)
		ok     bool
	}{
		{"valid", func(_ *DifficultyRating) {}, true},
		{"wrong schema", func(r *DifficultyRating) { r.SchemaVersion = "m3.difficulty_rating.v0" }, false},
		{"overall too high", func(r *DifficultyRating) { r.Overall = 5 }, false},
		{"overall too low", func(r *DifficultyRating) { r.Overall = 0 }, false},
		{"dimension out of range", func(r *DifficultyRating) { r.Dimensions.Numeric = 7 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ratingWith(2)
			tt.mutate(r)
			err := r.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

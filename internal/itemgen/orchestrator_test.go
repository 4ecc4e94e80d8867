package itemgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tritutor/internal/curriculum"
	"tritutor/internal/history"
	"tritutor/internal/mastery"
)

type genResult struct {
	item *ItemSpec
	err  error
}

type fakeGenerator struct {
	script []genResult
	calls  int
}

func (g *fakeGenerator) Generate(_ context.Context, _ GenerateInput) (*ItemSpec, error) {
	if g.calls >= len(g.script) {
		return nil, errors.New("script exhausted")
	}
	r := g.script[g.calls]
	g.calls++
	return r.item, r.err
}

type fakeRater struct {
	ratings []*DifficultyRating
	err     error
	calls   int
}

func (r *fakeRater) Rate(_ context.Context, _ *ItemSpec, _ int) (*DifficultyRating, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	rating := r.ratings[min(r.calls-1, len(r.ratings)-1)]
	return rating, nil
}

type captureObserver struct {
	entries []TelemetryEntry
	fail    bool
}

func (o *captureObserver) RecordAttempt(_ context.Context, entry TelemetryEntry) error {
	o.entries = append(o.entries, entry)
	if o.fail {
		return errors.New("sink offline")
	}
	return nil
}

func ratingWith(overall int) *DifficultyRating {
	return &DifficultyRating{
		SchemaVersion: RatingSchemaVersion,
		Overall:       overall,
		Dimensions:    RatingDimensions{Visual: 2, Language: 2, ReasoningSteps: 2, Numeric: 2},
		GradeFit:      GradeFit{OK: true},
	}
}

func validItemFor(t *testing.T, conceptID string) *ItemSpec {
	t.Helper()
	gen := &LocalGenerator{Grade: 6}
	item, err := gen.Generate(context.Background(), GenerateInput{
		ConceptID:               conceptID,
		Grade:                   6,
		Target:                  mastery.TargetFor(mastery.IntentPractice, 2, mastery.DefaultDifficultyCeiling),
		RequestedDifficulty:     2,
		Intent:                  mastery.IntentPractice,
		AllowedInteractionTypes: AllowedInteractionTypes(conceptID),
	})
	if err != nil {
		t.Fatal(err)
	}
	return item
}

func TestOrchestratorAcceptsFirstAttempt(t *testing.T) {
	item := validItemFor(t, "tri.structure.hypotenuse")
	gen := &fakeGenerator{script: []genResult{{item: item}}}
	rater := &fakeRater{ratings: []*DifficultyRating{ratingWith(2)}}
	obs := &captureObserver{}

	o := NewOrchestrator(gen, rater, curriculum.TrianglesGrade6, obs, DefaultConfig())
	bundle, err := o.Request(context.Background(), "tri.structure.hypotenuse", 2, mastery.IntentPractice, nil)
	if err != nil {
		t.Fatal(err)
	}

	if bundle.FallbackUsed {
		t.Error("fallback should not fire on an accepted attempt")
	}
	if bundle.RatedDifficulty != 2 {
		t.Errorf("rated difficulty = %d", bundle.RatedDifficulty)
	}
	if bundle.RequestID == "" {
		t.Error("request id missing")
	}
	if len(obs.entries) != 1 {
		t.Fatalf("telemetry entries = %d, want 1", len(obs.entries))
	}
	e := obs.entries[0]
	if !e.Accepted || e.Reason != "accepted" || e.Attempt != 0 || e.RatedOverall != 2 {
		t.Errorf("entry = %+v", e)
	}
}

// Three rejected attempts (schema failure, difficulty miss, transport
// error) with maxRetries=2 must exhaust the loop and return the
// fallback item.
func TestOrchestratorExhaustionFallsBack(t *testing.T) {
	good := validItemFor(t, "tri.structure.hypotenuse")
	bad := validItemFor(t, "tri.structure.hypotenuse")
	bad.SchemaVersion = "m3.question_spec.v1"

	gen := &fakeGenerator{script: []genResult{
		{item: bad},
		{item: good},
		{err: errors.New("transport timeout")},
	}}
	rater := &fakeRater{ratings: []*DifficultyRating{ratingWith(4)}}
	obs := &captureObserver{}

	o := NewOrchestrator(gen, rater, curriculum.TrianglesGrade6, obs, DefaultConfig())
	bundle, err := o.Request(context.Background(), "tri.structure.hypotenuse", 2, mastery.IntentPractice, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !bundle.FallbackUsed {
		t.Fatal("fallback should have fired")
	}
	if bundle.Item == nil {
		t.Fatal("fallback item missing")
	}
	v := newStructuralValidator()
	if tags := v.Validate(bundle.Item, "tri.structure.hypotenuse", AllowedInteractionTypes("tri.structure.hypotenuse")); len(tags) != 0 {
		t.Errorf("fallback item tags = %v", tags)
	}

	if len(obs.entries) != 4 {
		t.Fatalf("telemetry entries = %d, want 4", len(obs.entries))
	}
	if !strings.Contains(obs.entries[0].Reason, TagSchema) {
		t.Errorf("attempt 0 reason = %q", obs.entries[0].Reason)
	}
	if obs.entries[1].Reason != "difficulty_miss" || obs.entries[1].RatedOverall != 4 {
		t.Errorf("attempt 1 entry = %+v", obs.entries[1])
	}
	if !strings.Contains(obs.entries[2].Reason, "transport timeout") {
		t.Errorf("attempt 2 reason = %q", obs.entries[2].Reason)
	}
	final := obs.entries[3]
	if final.Reason != "fallback" || !final.FallbackUsed || final.Accepted || final.Attempt != 2 {
		t.Errorf("final entry = %+v", final)
	}
}

func TestOrchestratorInvalidRatingRetries(t *testing.T) {
	item := validItemFor(t, "tri.structure.hypotenuse")
	gen := &fakeGenerator{script: []genResult{{item: item}, {item: item}, {item: item}}}
	rater := &fakeRater{ratings: []*DifficultyRating{
		{SchemaVersion: "m3.difficulty_rating.v0", Overall: 2,
			Dimensions: RatingDimensions{Visual: 2, Language: 2, ReasoningSteps: 2, Numeric: 2},
			GradeFit:   GradeFit{OK: true}},
		ratingWith(2),
	}}
	obs := &captureObserver{}

	o := NewOrchestrator(gen, rater, curriculum.TrianglesGrade6, obs, DefaultConfig())
	bundle, err := o.Request(context.Background(), "tri.structure.hypotenuse", 2, mastery.IntentPractice, nil)
	if err != nil {
		t.Fatal(err)
	}

	if bundle.FallbackUsed {
		t.Error("second attempt should have been accepted")
	}
	if len(obs.entries) != 2 {
		t.Fatalf("telemetry entries = %d, want 2", len(obs.entries))
	}
	if obs.entries[0].Accepted {
		t.Error("first attempt must be rejected for its rating schema")
	}
}

func TestOrchestratorDisqualifyingFlagRejects(t *testing.T) {
	item := validItemFor(t, "tri.structure.hypotenuse")
	flagged := ratingWith(2)
	flagged.Flags.ContainsTrig = true

	gen := &fakeGenerator{script: []genResult{{item: item}, {item: item}, {item: item}}}
	rater := &fakeRater{ratings: []*DifficultyRating{flagged}}
	obs := &captureObserver{}

	o := NewOrchestrator(gen, rater, curriculum.TrianglesGrade6, obs, DefaultConfig())
	bundle, err := o.Request(context.Background(), "tri.structure.hypotenuse", 2, mastery.IntentPractice, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !bundle.FallbackUsed {
		t.Error("a flagged rating must never be accepted")
	}
}

func TestOrchestratorNoveltyRejection(t *testing.T) {
	item := validItemFor(t, "tri.structure.hypotenuse")
	learner := history.NewLearnerContext()
	learner.PromptHashes.Push(item.PromptHash())

	gen := &fakeGenerator{script: []genResult{{item: item}, {item: item}, {item: item}}}
	rater := &fakeRater{ratings: []*DifficultyRating{ratingWith(2)}}
	obs := &captureObserver{}

	o := NewOrchestrator(gen, rater, curriculum.TrianglesGrade6, obs, DefaultConfig())
	bundle, err := o.Request(context.Background(), "tri.structure.hypotenuse", 2, mastery.IntentPractice, learner)
	if err != nil {
		t.Fatal(err)
	}

	if !bundle.FallbackUsed {
		t.Error("repeated prompt must exhaust into fallback")
	}
	if rater.calls != 0 {
		t.Errorf("rater calls = %d, want 0 when validation rejects first", rater.calls)
	}
	for _, e := range obs.entries[:3] {
		if !strings.Contains(e.Reason, TagNoveltyViolation) {
			t.Errorf("reason = %q, want novelty_violation", e.Reason)
		}
	}
}

func TestOrchestratorUnknownConcept(t *testing.T) {
	o := NewOrchestrator(&fakeGenerator{}, &fakeRater{}, curriculum.TrianglesGrade6, nil, DefaultConfig())
	if _, err := o.Request(context.Background(), "geo.circle.radius", 2, mastery.IntentPractice, nil); err == nil {
		t.Fatal("expected error for a concept outside the curriculum")
	}
}

func TestOrchestratorObserverFailureDoesNotAffectOutcome(t *testing.T) {
	item := validItemFor(t, "tri.structure.hypotenuse")
	gen := &fakeGenerator{script: []genResult{{item: item}}}
	rater := &fakeRater{ratings: []*DifficultyRating{ratingWith(2)}}
	obs := &captureObserver{fail: true}

	o := NewOrchestrator(gen, rater, curriculum.TrianglesGrade6, obs, DefaultConfig())
	bundle, err := o.Request(context.Background(), "tri.structure.hypotenuse", 2, mastery.IntentPractice, nil)
	if err != nil {
		t.Fatal(err)
	}
	if bundle.FallbackUsed {
		t.Error("telemetry failures must not change the pipeline outcome")
	}
}

package itemgen

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"tritutor/internal/curriculum"
	"tritutor/internal/history"
	"tritutor/internal/mastery"
)

// TelemetryEntry describes one pipeline attempt. RatedOverall is 0 when
// the attempt never reached rating.
type TelemetryEntry struct {
	RequestID    string `json:"request_id"`
	ConceptID    string `json:"concept_id"`
	Attempt      int    `json:"attempt"`
	Accepted     bool   `json:"accepted"`
	Reason       string `json:"reason"`
	RatedOverall int    `json:"rated_overall,omitempty"`
	FallbackUsed bool   `json:"fallback_used"`
}

// Observer receives pipeline telemetry. Implementations must not block;
// a failure never influences the pipeline outcome.
type Observer interface {
	RecordAttempt(ctx context.Context, entry TelemetryEntry) error
}

// Orchestrator drives the generate/validate/rate/accept loop and falls
// back to the local generator when every attempt is rejected.
type Orchestrator struct {
	generator  Generator
	rater      Rater
	fallback   Generator
	localRater Rater
	graph      *curriculum.Graph
	observer   Observer
	validator  *StructuralValidator
	cfg        Config
}

// NewOrchestrator wires the pipeline. The observer may be nil.
func NewOrchestrator(generator Generator, rater Rater, graph *curriculum.Graph, observer Observer, cfg Config) *Orchestrator {
	return &Orchestrator{
		generator:  generator,
		rater:      rater,
		fallback:   &LocalGenerator{Grade: cfg.Grade},
		localRater: &HeuristicRater{Graph: graph},
		graph:      graph,
		observer:   observer,
		validator:  &StructuralValidator{Graph: graph, Grade: cfg.Grade},
		cfg:        cfg,
	}
}

// Request produces one accepted item for the concept at the requested
// difficulty. Generation or rating failures trigger retries; exhaustion
// triggers the local fallback, so an error is only possible for a
// concept outside the curriculum.
func (o *Orchestrator) Request(ctx context.Context, conceptID string, requestedDifficulty int, intent mastery.Intent, learner *history.LearnerContext) (*ItemBundle, error) {
	concept, err := o.graph.Concept(conceptID)
	if err != nil {
		return nil, err
	}

	target := mastery.TargetFor(intent, requestedDifficulty, mastery.DefaultDifficultyCeiling)
	input := GenerateInput{
		ConceptID:               concept.ID,
		ConceptTitle:            concept.Title,
		Grade:                   o.cfg.Grade,
		Target:                  target,
		RequestedDifficulty:     requestedDifficulty,
		Intent:                  intent,
		AllowedInteractionTypes: AllowedInteractionTypes(conceptID),
		Learner:                 learner,
	}
	requestID := uuid.NewString()

	for attempt := 0; attempt <= o.cfg.MaxRetries; attempt++ {
		item, err := o.generator.Generate(ctx, input)
		if err != nil {
			o.record(ctx, TelemetryEntry{
				RequestID: requestID, ConceptID: conceptID, Attempt: attempt,
				Reason: err.Error(),
			})
			continue
		}

		tags := o.validator.Validate(item, conceptID, input.AllowedInteractionTypes)
		tags = append(tags, ValidateSemantics(item)...)
		tags = append(tags, ValidateNovelty(item, learner, o.cfg.NoveltyWindow, o.cfg.NoveltyRepeatLimit)...)
		if len(tags) > 0 {
			o.record(ctx, TelemetryEntry{
				RequestID: requestID, ConceptID: conceptID, Attempt: attempt,
				Reason: strings.Join(tags, ","),
			})
			continue
		}

		rating, err := o.rater.Rate(ctx, item, o.cfg.Grade)
		if err != nil {
			o.record(ctx, TelemetryEntry{
				RequestID: requestID, ConceptID: conceptID, Attempt: attempt,
				Reason: err.Error(),
			})
			continue
		}
		if err := rating.Validate(); err != nil {
			o.record(ctx, TelemetryEntry{
				RequestID: requestID, ConceptID: conceptID, Attempt: attempt,
				Reason: err.Error(),
			})
			continue
		}

		if !shouldAccept(rating, target, requestedDifficulty) {
			o.record(ctx, TelemetryEntry{
				RequestID: requestID, ConceptID: conceptID, Attempt: attempt,
				Reason: "difficulty_miss", RatedOverall: rating.Overall,
			})
			continue
		}

		o.record(ctx, TelemetryEntry{
			RequestID: requestID, ConceptID: conceptID, Attempt: attempt,
			Accepted: true, Reason: "accepted", RatedOverall: rating.Overall,
		})
		return &ItemBundle{
			RequestID:       requestID,
			Item:            item,
			Rating:          rating,
			RatedDifficulty: rating.Overall,
			FallbackUsed:    false,
		}, nil
	}

	o.record(ctx, TelemetryEntry{
		RequestID: requestID, ConceptID: conceptID, Attempt: o.cfg.MaxRetries,
		Reason: "fallback", FallbackUsed: true,
	})

	item, _ := o.fallback.Generate(ctx, input)
	bundle := &ItemBundle{
		RequestID:       requestID,
		Item:            item,
		RatedDifficulty: requestedDifficulty,
		FallbackUsed:    true,
	}
	if rating, err := o.localRater.Rate(ctx, item, o.cfg.Grade); err == nil {
		bundle.Rating = rating
		bundle.RatedDifficulty = rating.Overall
	}
	return bundle, nil
}

// shouldAccept applies grade fit, the disqualifying flags, and then the
// difficulty target. A computed band wins over direction comparison.
func shouldAccept(rating *DifficultyRating, target mastery.Target, requestedDifficulty int) bool {
	if !rating.GradeFit.OK || rating.Flags.Any() {
		return false
	}
	if target.MinDifficulty > 0 && target.MaxDifficulty > 0 {
		return target.Contains(rating.Overall)
	}
	switch target.Direction {
	case mastery.DirectionEasier:
		return rating.Overall < requestedDifficulty
	case mastery.DirectionHarder:
		return rating.Overall > requestedDifficulty
	default:
		return rating.Overall == requestedDifficulty
	}
}

func (o *Orchestrator) record(ctx context.Context, entry TelemetryEntry) {
	if o.observer == nil {
		return
	}
	if err := o.observer.RecordAttempt(ctx, entry); err != nil {
		fmt.Fprintf(os.Stderr, "itemgen: telemetry record failed: %v\n", err)
	}
}

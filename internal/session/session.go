// Package session owns the learner's progression across runs: it
// bootstraps or resumes state from storage, serializes mastery
// updates, and maps grading envelopes to mastery outcomes.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"tritutor/internal/curriculum"
	"tritutor/internal/grading"
	"tritutor/internal/history"
	"tritutor/internal/itemgen"
	"tritutor/internal/mastery"
)

// Storage persists the session blob between runs. Satisfied by
// store.SessionRepo; may be nil for an ephemeral session.
type Storage interface {
	Save(ctx context.Context, data json.RawMessage) error
	Load(ctx context.Context) (json.RawMessage, error)
}

// blob is the persisted session shape.
type blob struct {
	Progression *mastery.ProgressionState `json:"progression"`
	Learner     *history.LearnerContext   `json:"learner"`
}

// Session is the single-learner progression service. All state
// mutation goes through the mutex: progression is an unguarded
// read-modify-write, so one update must finish before the next starts.
type Session struct {
	mu      sync.Mutex
	graph   *curriculum.Graph
	engine  *mastery.Engine
	state   *mastery.ProgressionState
	learner *history.LearnerContext
	storage Storage
}

// Resume loads the persisted session, or bootstraps a fresh one when
// none exists or the stored state belongs to a different curriculum
// graph.
func Resume(ctx context.Context, graph *curriculum.Graph, engine *mastery.Engine, storage Storage) (*Session, error) {
	s := &Session{
		graph:   graph,
		engine:  engine,
		storage: storage,
	}

	var data json.RawMessage
	if storage != nil {
		var err error
		data, err = storage.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
	}

	if data != nil {
		var b blob
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		if b.Progression != nil && b.Progression.ConceptGraphID == graph.ID() {
			s.state = b.Progression
			s.learner = b.Learner
		}
	}

	if s.state == nil {
		s.state = engine.Bootstrap(graph, mastery.DefaultDifficultyCeiling)
	}
	if s.learner == nil {
		s.learner = history.NewLearnerContext()
	}
	return s, nil
}

// NextStep returns the engine's recommendation for what to practice
// next.
func (s *Session) NextStep() mastery.LearningStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.NextLearningStep(s.state, s.graph)
}

// Learner returns the recent-item context fed to generation.
func (s *Session) Learner() *history.LearnerContext {
	return s.learner
}

// Progression returns the live progression state. Read-only use; all
// writes go through ApplyEnvelope.
func (s *Session) Progression() *mastery.ProgressionState {
	return s.state
}

// RecordAccepted notes an accepted item in the learner context so
// later generations avoid repeating it, then persists.
func (s *Session) RecordAccepted(ctx context.Context, item *itemgen.ItemSpec) error {
	s.mu.Lock()
	s.learner.RecordAccepted(item.ConceptID, item.PromptHash(), item.InteractionType, item.AnswerKey(), item.QuestionFamily)
	s.mu.Unlock()
	return s.save(ctx)
}

// ApplyEnvelope maps a grading envelope to a mastery outcome, applies
// it, and persists. Error envelopes leave progression untouched; the
// returned bool reports whether an outcome was applied.
func (s *Session) ApplyEnvelope(ctx context.Context, conceptID string, env *grading.Envelope) (mastery.Outcome, bool, error) {
	outcome, ok := outcomeFor(env.Correctness)
	if !ok {
		return "", false, nil
	}

	s.mu.Lock()
	s.engine.ApplyOutcome(s.state, s.graph, conceptID, outcome)
	s.mu.Unlock()

	if err := s.save(ctx); err != nil {
		return outcome, true, err
	}
	return outcome, true, nil
}

// save persists the current blob; a nil storage makes it a no-op.
func (s *Session) save(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}

	s.mu.Lock()
	data, err := json.Marshal(blob{Progression: s.state, Learner: s.learner})
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.storage.Save(ctx, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// outcomeFor maps envelope correctness to a mastery outcome. Error
// verdicts carry no pedagogical signal and map to nothing.
func outcomeFor(c grading.Correctness) (mastery.Outcome, bool) {
	switch c {
	case grading.Correct:
		return mastery.OutcomeCorrect, true
	case grading.Incorrect:
		return mastery.OutcomeIncorrect, true
	case grading.Ambiguous:
		return mastery.OutcomeAmbiguous, true
	}
	return "", false
}

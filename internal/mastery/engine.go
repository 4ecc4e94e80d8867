package mastery

import (
	"slices"

	"tritutor/internal/curriculum"
)

// Engine applies the deterministic mastery transition rules.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the given tunables.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Bootstrap creates a fresh ProgressionState: every concept at
// difficulty 1, unmastered, with only level 1 unlocked.
func (e *Engine) Bootstrap(graph *curriculum.Graph, ceiling int) *ProgressionState {
	byConcept := make(map[string]ConceptMastery)
	for _, c := range graph.Concepts() {
		byConcept[c.ID] = ConceptMastery{
			CurrentDifficulty: 1,
			LastOutcome:       LastNone,
		}
	}

	var first string
	if ids := graph.OrderedConceptIDs(); len(ids) > 0 {
		first = ids[0]
	}

	return &ProgressionState{
		ConceptGraphID:       graph.ID(),
		MasteryByConcept:     byConcept,
		CurrentConceptID:     first,
		DifficultyCeiling:    ceiling,
		UnlockedLevelIndices: []int{1},
	}
}

// NextLearningStep scans unlocked levels in index order and each
// level's concepts in declared order, returning the first unmastered
// concept. Intent is remediate when the concept is flagged, practice
// otherwise. Returns a completed step when nothing remains.
func (e *Engine) NextLearningStep(state *ProgressionState, graph *curriculum.Graph) LearningStep {
	if state.TopicCompleted {
		return completedStep()
	}

	for _, level := range graph.Levels() {
		if !state.IsLevelUnlocked(level.Index) {
			continue
		}
		for _, conceptID := range level.ConceptIDs {
			m, ok := state.MasteryByConcept[conceptID]
			if !ok || m.Mastered {
				continue
			}
			intent := IntentPractice
			if m.NeedsRemediation {
				intent = IntentRemediate
			}
			return LearningStep{
				ConceptID:  conceptID,
				Difficulty: m.CurrentDifficulty,
				Intent:     intent,
			}
		}
	}

	return completedStep()
}

// ApplyOutcome records a graded outcome for a concept and updates
// counters, difficulty, remediation, mastery, level unlocks, and the
// topic-completed flag. Unknown concept IDs are a silent no-op;
// callers guarantee valid IDs.
func (e *Engine) ApplyOutcome(state *ProgressionState, graph *curriculum.Graph, conceptID string, outcome Outcome) {
	m, ok := state.MasteryByConcept[conceptID]
	if !ok {
		return
	}

	m.AttemptCount++

	switch outcome {
	case OutcomeCorrect:
		m.CorrectCount++
		m.LastOutcome = LastCorrect
		m.NeedsRemediation = false
		m.CurrentDifficulty = min(m.CurrentDifficulty+e.cfg.DifficultyUpStep, state.DifficultyCeiling)
		m.HighestDifficultyPassed = max(m.HighestDifficultyPassed, m.CurrentDifficulty)
	case OutcomeIncorrect:
		m.IncorrectCount++
		m.LastOutcome = LastIncorrect
		m.CurrentDifficulty = max(1, m.CurrentDifficulty-e.cfg.DifficultyDownStep)
		if m.IncorrectCount >= e.cfg.RemediationIncorrectThreshold {
			m.NeedsRemediation = true
		}
	case OutcomeAmbiguous:
		m.LastOutcome = LastAmbiguous
		m.CurrentDifficulty = max(1, m.CurrentDifficulty-e.cfg.DifficultyDownStep)
		m.NeedsRemediation = true
	}

	if m.CorrectCount >= e.cfg.RequiredCorrectCount && m.HighestDifficultyPassed >= e.cfg.RequiredDifficulty {
		m.Mastered = true
		m.NeedsRemediation = false
	}

	state.MasteryByConcept[conceptID] = m
	state.CurrentConceptID = conceptID

	e.unlockLevels(state, graph)

	unlocked := state.unlockedSet()
	hasUnmastered := false
	for _, id := range graph.OrderedConceptIDs() {
		cm, ok := state.MasteryByConcept[id]
		if !ok {
			continue
		}
		if !cm.Mastered && graph.IsConceptUnlocked(id, unlocked) {
			hasUnmastered = true
			break
		}
	}
	state.TopicCompleted = !hasUnmastered
}

// unlockLevels opens each locked level whose previous level has
// reached its mastered-fraction threshold.
func (e *Engine) unlockLevels(state *ProgressionState, graph *curriculum.Graph) {
	unlocked := state.unlockedSet()

	for _, level := range graph.Levels() {
		if unlocked[level.Index] {
			continue
		}
		prev, ok := graph.Level(level.Index - 1)
		if !ok {
			continue
		}
		mastered := 0
		for _, id := range prev.ConceptIDs {
			if state.MasteryByConcept[id].Mastered {
				mastered++
			}
		}
		ratio := float64(mastered) / float64(max(len(prev.ConceptIDs), 1))
		if ratio >= prev.UnlockThreshold {
			unlocked[level.Index] = true
		}
	}

	indices := make([]int, 0, len(unlocked))
	for idx := range unlocked {
		indices = append(indices, idx)
	}
	slices.Sort(indices)
	state.UnlockedLevelIndices = indices
}

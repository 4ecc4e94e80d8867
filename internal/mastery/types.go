package mastery

// Intent is the pedagogical purpose of the next item, driving
// difficulty targeting.
type Intent string

const (
	IntentTeach     Intent = "teach"
	IntentPractice  Intent = "practice"
	IntentRemediate Intent = "remediate"
	IntentAssess    Intent = "assess"
)

// Outcome is the graded result of one attempt.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeAmbiguous Outcome = "ambiguous"
)

// LastOutcome records the most recent outcome on a concept,
// including "none" before any attempt.
type LastOutcome string

const (
	LastCorrect   LastOutcome = "correct"
	LastIncorrect LastOutcome = "incorrect"
	LastAmbiguous LastOutcome = "ambiguous"
	LastNone      LastOutcome = "none"
)

// ConceptMastery holds per-concept progress counters and flags.
//
// Invariants maintained by the engine: Mastered implies
// NeedsRemediation is false, and CurrentDifficulty stays in
// [1, ceiling].
type ConceptMastery struct {
	CorrectCount            int         `json:"correctCount"`
	IncorrectCount          int         `json:"incorrectCount"`
	AttemptCount            int         `json:"attemptCount"`
	CurrentDifficulty       int         `json:"currentDifficulty"`
	HighestDifficultyPassed int         `json:"highestDifficultyPassed"`
	Mastered                bool        `json:"mastered"`
	NeedsRemediation        bool        `json:"needsRemediation"`
	LastOutcome             LastOutcome `json:"lastOutcome"`
}

// ProgressionState is the single-owner mastery state for one learner
// on one curriculum graph. Mutated only via Engine.ApplyOutcome.
type ProgressionState struct {
	ConceptGraphID       string                    `json:"conceptGraphId"`
	MasteryByConcept     map[string]ConceptMastery `json:"masteryByConcept"`
	CurrentConceptID     string                    `json:"currentConceptId,omitempty"`
	DifficultyCeiling    int                       `json:"difficultyCeiling"`
	UnlockedLevelIndices []int                     `json:"unlockedLevelIndices"`
	TopicCompleted       bool                      `json:"topicCompleted"`
}

// unlockedSet builds the unlocked levels as a lookup map.
func (s *ProgressionState) unlockedSet() map[int]bool {
	set := make(map[int]bool, len(s.UnlockedLevelIndices))
	for _, idx := range s.UnlockedLevelIndices {
		set[idx] = true
	}
	return set
}

// IsLevelUnlocked reports whether the level index is in the unlocked set.
func (s *ProgressionState) IsLevelUnlocked(index int) bool {
	for _, idx := range s.UnlockedLevelIndices {
		if idx == index {
			return true
		}
	}
	return false
}

// LearningStep is the engine's recommendation for what to practice next.
type LearningStep struct {
	ConceptID  string
	Difficulty int
	Intent     Intent
	IsComplete bool
}

// completedStep is returned when no unlocked concept remains unmastered.
func completedStep() LearningStep {
	return LearningStep{Intent: IntentAssess, IsComplete: true}
}

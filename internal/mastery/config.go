package mastery

// Config holds the deterministic mastery tunables.
type Config struct {
	// RequiredCorrectCount is the correct-answer count needed for mastery.
	RequiredCorrectCount int

	// RequiredDifficulty is the highest difficulty that must have been
	// passed before mastery is granted.
	RequiredDifficulty int

	// DifficultyUpStep / DifficultyDownStep adjust difficulty after
	// correct / incorrect outcomes.
	DifficultyUpStep   int
	DifficultyDownStep int

	// RemediationIncorrectThreshold is the incorrect count at which a
	// concept is flagged for remediation.
	RemediationIncorrectThreshold int
}

// DefaultConfig returns the standard Grade 6 settings.
func DefaultConfig() Config {
	return Config{
		RequiredCorrectCount:          3,
		RequiredDifficulty:            3,
		DifficultyUpStep:              1,
		DifficultyDownStep:            1,
		RemediationIncorrectThreshold: 1,
	}
}

// DefaultDifficultyCeiling is the Grade 6 difficulty cap.
const DefaultDifficultyCeiling = 4

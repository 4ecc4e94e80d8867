package mastery

// Direction is the difficulty adjustment a generated item should aim for
// relative to the learner's current difficulty.
type Direction string

const (
	DirectionEasier Direction = "easier"
	DirectionSame   Direction = "same"
	DirectionHarder Direction = "harder"
)

// Target bounds the difficulty a generated item may carry.
type Target struct {
	Direction Direction

	// MinDifficulty and MaxDifficulty form the inclusive acceptance band.
	MinDifficulty int
	MaxDifficulty int
}

// Contains reports whether d falls inside the acceptance band.
func (t Target) Contains(d int) bool {
	return d >= t.MinDifficulty && d <= t.MaxDifficulty
}

// TargetFor derives the difficulty target from the step intent and the
// learner's current difficulty. Remediation aims easier, assessment
// harder, teaching and practice stay level. The band is one step either
// side of current, clamped to [1, ceiling].
func TargetFor(intent Intent, currentDifficulty, ceiling int) Target {
	var dir Direction
	switch intent {
	case IntentRemediate:
		dir = DirectionEasier
	case IntentAssess:
		dir = DirectionHarder
	default:
		dir = DirectionSame
	}

	return Target{
		Direction:     dir,
		MinDifficulty: max(1, currentDifficulty-1),
		MaxDifficulty: min(ceiling, currentDifficulty+1),
	}
}

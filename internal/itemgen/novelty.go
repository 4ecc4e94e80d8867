package itemgen

import "tritutor/internal/history"

// Novelty defaults. The window bounds how far back an identical prompt
// is still considered a repeat; the repeat limit bounds how often the
// same answer or question family may recur in recorded history.
const (
	NoveltyWindow      = 3
	NoveltyRepeatLimit = 2
)

// ValidateNovelty rejects items the learner has effectively just seen:
// a prompt hash within the last window entries, or an expected answer
// or question family that already hit the repeat limit.
func ValidateNovelty(item *ItemSpec, learner *history.LearnerContext, window, repeatLimit int) []string {
	if learner == nil {
		return nil
	}

	hash := item.PromptHash()
	for _, recent := range learner.PromptHashes.Last(window) {
		if recent == hash {
			return []string{TagNoveltyViolation}
		}
	}
	if learner.AnswerKeys.Count(item.AnswerKey()) >= repeatLimit {
		return []string{TagNoveltyViolation}
	}
	if item.QuestionFamily != "" && learner.FamilyTags.Count(item.QuestionFamily) >= repeatLimit {
		return []string{TagNoveltyViolation}
	}
	return nil
}

package itemgen

import (
	"testing"

	"tritutor/internal/history"
)

func noveltyItem() *ItemSpec {
	return &ItemSpec{
		QuestionFamily: "identify_hypotenuse",
		Prompt:         "Highlight the hypotenuse of this right triangle.",
		ResponseContract: ResponseContract{
			Answer: ExpectedAnswer{Kind: "segment", Value: "AB"},
		},
	}
}

func TestValidateNoveltyFreshItemPasses(t *testing.T) {
	learner := history.NewLearnerContext()
	learner.RecordAccepted("tri.structure.hypotenuse", "deadbeefdeadbeef", "highlight", "segment:bc", "other_family")

	if tags := ValidateNovelty(noveltyItem(), learner, NoveltyWindow, NoveltyRepeatLimit); len(tags) != 0 {
		t.Errorf("tags = %v, want none", tags)
	}
}

func TestValidateNoveltyRecentPromptHash(t *testing.T) {
	item := noveltyItem()
	learner := history.NewLearnerContext()
	learner.PromptHashes.Push(item.PromptHash())

	if tags := ValidateNovelty(item, learner, NoveltyWindow, NoveltyRepeatLimit); len(tags) != 1 || tags[0] != TagNoveltyViolation {
		t.Errorf("tags = %v, want novelty_violation", tags)
	}
}

func TestValidateNoveltyPromptHashOutsideWindow(t *testing.T) {
	item := noveltyItem()
	learner := history.NewLearnerContext()
	learner.PromptHashes.Push(item.PromptHash())
	// Three newer hashes push the repeat outside the window.
	learner.PromptHashes.Push("1111111111111111")
	learner.PromptHashes.Push("2222222222222222")
	learner.PromptHashes.Push("3333333333333333")

	if tags := ValidateNovelty(item, learner, NoveltyWindow, NoveltyRepeatLimit); len(tags) != 0 {
		t.Errorf("tags = %v, want none when the hash left the window", tags)
	}
}

func TestValidateNoveltyAnswerKeyRepeat(t *testing.T) {
	item := noveltyItem()
	learner := history.NewLearnerContext()
	learner.AnswerKeys.Push(item.AnswerKey())
	learner.AnswerKeys.Push(item.AnswerKey())

	if tags := ValidateNovelty(item, learner, NoveltyWindow, NoveltyRepeatLimit); len(tags) != 1 || tags[0] != TagNoveltyViolation {
		t.Errorf("tags = %v, want novelty_violation for repeated answer", tags)
	}
}

func TestValidateNoveltyFamilyRepeat(t *testing.T) {
	item := noveltyItem()
	learner := history.NewLearnerContext()
	learner.FamilyTags.Push("identify_hypotenuse")
	learner.FamilyTags.Push("identify_hypotenuse")

	if tags := ValidateNovelty(item, learner, NoveltyWindow, NoveltyRepeatLimit); len(tags) != 1 || tags[0] != TagNoveltyViolation {
		t.Errorf("tags = %v, want novelty_violation for repeated family", tags)
	}
}

func TestValidateNoveltyNilContext(t *testing.T) {
	if tags := ValidateNovelty(noveltyItem(), nil, NoveltyWindow, NoveltyRepeatLimit); tags != nil {
		t.Errorf("tags = %v, want nil", tags)
	}
}

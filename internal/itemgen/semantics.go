package itemgen

import (
	"strings"
	"unicode"
)

// normalizeSignal lowercases text and strips everything except letters,
// digits, the superscript two, plus signs, and spaces, then collapses
// whitespace. Both the text pool and the rule phrases go through it so
// punctuation differences never break a match.
func normalizeSignal(v string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(v) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '²', r == '+':
			b.WriteRune(r)
		case r == ' ' || unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ValidateSemantics checks that the item's prose actually teaches its
// declared concept and is not a degenerate repetition. Returns violated
// rule tags, empty when the item passes.
func ValidateSemantics(item *ItemSpec) []string {
	var tags []string

	if rule, ok := conceptSemanticRules[item.ConceptID]; ok {
		pool := normalizeSignal(textPool(item))
		if !rule.matches(pool) {
			tags = append(tags, TagConceptMismatch)
		}
	}

	if isGenericRepetition(item.Prompt, item.Hint, item.Explanation) {
		tags = append(tags, TagGenericRepetition)
	}

	return tags
}

func (r semanticRule) matches(pool string) bool {
	for _, group := range r.requiredGroups {
		found := false
		for _, phrase := range group {
			if strings.Contains(pool, normalizeSignal(phrase)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, phrase := range r.forbidden {
		if strings.Contains(pool, normalizeSignal(phrase)) {
			return false
		}
	}
	return true
}

// textPool joins every prose field that could carry concept signals.
func textPool(item *ItemSpec) string {
	parts := []string{
		item.Prompt,
		item.Hint,
		item.Explanation,
		item.RealWorldConnection,
		item.ResponseContract.Answer.Value,
	}
	for _, opt := range item.ResponseContract.Options {
		parts = append(parts, opt.Text)
	}
	return strings.Join(parts, " ")
}

// isGenericRepetition detects items whose prompt, hint, and explanation
// collapse to the same text or to a vocabulary too small to teach
// anything.
func isGenericRepetition(prompt, hint, explanation string) bool {
	blocks := []string{normalizeSignal(prompt), normalizeSignal(hint), normalizeSignal(explanation)}

	distinct := map[string]bool{}
	for _, b := range blocks {
		if b != "" {
			distinct[b] = true
		}
	}
	if len(distinct) <= 1 {
		return true
	}

	words := map[string]bool{}
	for _, b := range blocks {
		for _, w := range strings.Fields(b) {
			if len(w) > 2 {
				words[w] = true
			}
		}
	}
	return len(words) < 8
}

package itemgen

import (
	"fmt"
	"strings"

	"tritutor/internal/mastery"
)

const generateSystemPrompt = `You create single assessment items about triangles for Grade 6 learners.

Rules:
- Stay strictly on the given concept. Never use trigonometry (sin, cos, tan), formal proofs, surds, or irrational roots.
- The diagram is always one triangle with exactly the three vertices A, B, C, each inside the unit square (coordinates between 0 and 1). The triangle must not be degenerate.
- Use the requested interaction type. For highlight, the learner marks a point or segment on the diagram. For multiple_choice, give at least 2 options with distractors reflecting common mistakes. For numeric_input, the answer must be a plain number with a tolerance rule.
- The response contract's mode must equal the interaction type, and the assessment contract must repeat the same expected answer.
- Prompt, hint, and explanation must each say something different. The hint scaffolds without giving the answer away; the explanation shows why the answer is right.
- Aim the item's difficulty at the requested target.
- Do not repeat any recent question the learner has already seen.`

// buildGenerateMessage renders one generation request.
func buildGenerateMessage(input GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concept: %s", input.ConceptID)
	if input.ConceptTitle != "" {
		fmt.Fprintf(&b, " (%s)", input.ConceptTitle)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Grade: %d\n", input.Grade)
	fmt.Fprintf(&b, "Intent: %s\n", input.Intent)
	fmt.Fprintf(&b, "Requested difficulty: %d\n", input.RequestedDifficulty)
	fmt.Fprintf(&b, "Target difficulty: %s (aim for %d to %d on a 1-4 scale)\n",
		directionLabel(input.Target.Direction), input.Target.MinDifficulty, input.Target.MaxDifficulty)
	fmt.Fprintf(&b, "Allowed interaction types: %s\n", strings.Join(input.AllowedInteractionTypes, ", "))

	if input.Learner != nil {
		b.WriteString("\nRecent question families already used (avoid these):\n")
		b.WriteString(recentList(input.Learner.FamilyTags.Items()))
		b.WriteString("\nRecent expected answers already used (avoid these):\n")
		b.WriteString(recentList(input.Learner.AnswerKeys.Items()))
	}

	return b.String()
}

func directionLabel(d mastery.Direction) string {
	switch d {
	case mastery.DirectionEasier:
		return "easier than the learner's current level"
	case mastery.DirectionHarder:
		return "harder than the learner's current level"
	default:
		return "at the learner's current level"
	}
}

// recentList formats history entries for the prompt, "None" when empty.
func recentList(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	var b strings.Builder
	for i, v := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, v)
	}
	return strings.TrimRight(b.String(), "\n")
}

const rateSystemPrompt = `You rate one Grade 6 triangle assessment item for difficulty and grade fit.

Rules:
- Score overall difficulty and each dimension (visual, language, reasoning_steps, numeric) as an integer from 1 (easy) to 4 (hard).
- Set grade_fit.ok to false with a short note when the item does not suit Grade 6.
- Set each flag to true only when the problem is actually present: trigonometry, formal proof, surds or irrational roots, a concept outside the triangles curriculum, a diagram that cannot render as one triangle, or an answer contract that does not match the interaction.
- Rate the item as written. Do not rewrite it.`

func buildRateMessage(itemJSON []byte, grade int) string {
	return fmt.Sprintf("Grade: %d\n\nItem document:\n%s", grade, itemJSON)
}

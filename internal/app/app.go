// Package app runs the interactive practice loop: next step, item
// generation, answer collection, grading, progression update.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tritutor/internal/curriculum"
	"tritutor/internal/grading"
	"tritutor/internal/itemgen"
	"tritutor/internal/llm"
	"tritutor/internal/mastery"
	"tritutor/internal/session"
)

// Options wires the practice loop's dependencies. Provider, Storage,
// and Observer may all be nil: without a provider the built-in
// generator serves items, and without storage progress is ephemeral.
type Options struct {
	Graph    *curriculum.Graph
	Provider llm.Provider
	Storage  session.Storage
	Observer itemgen.Observer
	Config   itemgen.Config

	In  io.Reader
	Out io.Writer

	// Rounds caps the number of items served; 0 means run until the
	// topic is completed or input ends.
	Rounds int
}

// Run executes the practice loop until the topic completes, the round
// cap is reached, or stdin closes.
func Run(ctx context.Context, opts Options) error {
	sess, err := session.Resume(ctx, opts.Graph, mastery.NewEngine(mastery.DefaultConfig()), opts.Storage)
	if err != nil {
		return err
	}

	var generator itemgen.Generator
	var rater itemgen.Rater
	if opts.Provider != nil {
		generator = itemgen.NewLLMGenerator(opts.Provider, opts.Config)
		rater = itemgen.NewLLMRater(opts.Provider)
	} else {
		generator = &itemgen.LocalGenerator{Grade: opts.Config.Grade}
		rater = &itemgen.HeuristicRater{Graph: opts.Graph}
	}
	orch := itemgen.NewOrchestrator(generator, rater, opts.Graph, opts.Observer, opts.Config)

	var rubric grading.DelegateEvaluator
	if opts.Provider != nil {
		rubric = grading.NewRubricEvaluator(opts.Provider)
	}
	visual := grading.NewVisualEvaluator(typedLocator{}, grading.DefaultAmbiguityThreshold)
	router := grading.NewRouter(visual, rubric)

	in := bufio.NewScanner(opts.In)
	out := opts.Out

	for round := 0; opts.Rounds == 0 || round < opts.Rounds; round++ {
		step := sess.NextStep()
		if step.IsComplete {
			fmt.Fprintln(out, "\nTopic complete. Every concept is mastered!")
			return nil
		}

		concept, err := opts.Graph.Concept(step.ConceptID)
		if err != nil {
			return err
		}

		bundle, err := orch.Request(ctx, step.ConceptID, step.Difficulty, step.Intent, sess.Learner())
		if err != nil {
			return fmt.Errorf("generate item: %w", err)
		}
		item := bundle.Item

		if err := sess.RecordAccepted(ctx, item); err != nil {
			return err
		}

		fmt.Fprintf(out, "\n[%s] %s (difficulty %d)\n", concept.ID, concept.Title, bundle.RatedDifficulty)
		renderItem(out, item)

		fmt.Fprint(out, "> ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return err
			}
			return nil
		}
		answer := strings.TrimSpace(in.Text())

		env := router.Grade(ctx, gradingInputFor(item, answer))
		renderVerdict(out, item, env)

		if _, applied, err := sess.ApplyEnvelope(ctx, item.ConceptID, env); err != nil {
			return err
		} else if !applied {
			fmt.Fprintln(out, "That answer could not be graded; it will not count.")
		}
	}

	return nil
}

// renderItem prints the item's prompt, diagram, and answer surface.
func renderItem(out io.Writer, item *itemgen.ItemSpec) {
	fmt.Fprintln(out, item.Prompt)

	if item.DiagramSpec.Type == "triangle" {
		fmt.Fprintln(out, "Triangle vertices:")
		for _, p := range item.DiagramSpec.PointsNormalized {
			fmt.Fprintf(out, "  %s (%.2f, %.2f)\n", p.ID, p.X, p.Y)
		}
		if item.DiagramSpec.RightAngleAt != "" {
			fmt.Fprintf(out, "  Right angle at %s\n", item.DiagramSpec.RightAngleAt)
		}
	}

	switch item.InteractionType {
	case itemgen.InteractionMultipleChoice:
		for i, opt := range item.ResponseContract.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Text)
		}
		fmt.Fprintln(out, "Enter the number of your choice.")
	case itemgen.InteractionNumericInput:
		fmt.Fprintln(out, "Enter a number.")
	case itemgen.InteractionHighlight:
		fmt.Fprintln(out, "Name the point or segment (for example C or AB).")
	}
}

// renderVerdict prints the grading result with the item's explanation
// on a wrong answer.
func renderVerdict(out io.Writer, item *itemgen.ItemSpec, env *grading.Envelope) {
	switch env.Correctness {
	case grading.Correct:
		fmt.Fprintln(out, "Correct!")
	case grading.Incorrect:
		fmt.Fprintln(out, "Not quite.")
		if item.Explanation != "" {
			fmt.Fprintln(out, item.Explanation)
		}
	case grading.Ambiguous:
		fmt.Fprintln(out, "That answer was unclear. Let's revisit this one.")
		if item.Hint != "" {
			fmt.Fprintln(out, "Hint:", item.Hint)
		}
	default:
		fmt.Fprintln(out, "Grading problem:", strings.Join(env.AmbiguityCodes, ", "))
	}
}

// gradingInputFor builds the router input from the item's assessment
// contract and the typed answer.
func gradingInputFor(item *itemgen.ItemSpec, answer string) grading.Input {
	in := grading.Input{
		ConceptID:           item.ConceptID,
		ExpectedAnswerKind:  item.ResponseContract.Answer.Kind,
		ExpectedAnswerValue: item.ResponseContract.Answer.Value,
	}
	if ac := item.AssessmentContract; ac != nil {
		in.GradingStrategyID = ac.GradingStrategyID
		in.AnswerSchema = ac.AnswerSchema
		if nr := ac.NumericRule; nr != nil {
			in.NumericRule = &grading.NumericRuleSpec{
				Tolerance: nr.Tolerance,
				MinValue:  nr.MinValue,
				MaxValue:  nr.MaxValue,
				Unit:      nr.Unit,
			}
		}
	}

	switch item.InteractionType {
	case itemgen.InteractionMultipleChoice:
		choice := resolveChoice(item.ResponseContract.Options, answer)
		in.SubmittedChoiceID = &choice
	case itemgen.InteractionNumericInput:
		in.SubmittedNumericValue = &answer
	default:
		in.SubmittedText = &answer
	}
	return in
}

// resolveChoice maps typed input to an option id, accepting a 1-based
// index, the id itself, or the option text.
func resolveChoice(options []itemgen.Option, answer string) string {
	trimmed := strings.TrimSpace(answer)
	if idx, err := strconv.Atoi(trimmed); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1].ID
	}
	for _, opt := range options {
		if strings.EqualFold(opt.ID, trimmed) || strings.EqualFold(opt.Text, trimmed) {
			return opt.ID
		}
	}
	return trimmed
}

// typedLocator treats the typed answer as the located target. Typed
// input is never ambiguous in the way rendered ink is.
type typedLocator struct{}

func (typedLocator) Locate(_ context.Context, input grading.Input) (*grading.VisualObservation, error) {
	if input.SubmittedText == nil {
		return nil, errors.New("no highlight submitted")
	}
	class := "segment"
	if len(strings.TrimSpace(*input.SubmittedText)) == 1 {
		class = "point_set"
	}
	return &grading.VisualObservation{
		DetectedTargetClass: class,
		DetectedTarget:      strings.TrimSpace(*input.SubmittedText),
		Confidence:          1,
	}, nil
}

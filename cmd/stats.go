package cmd

import (
	"context"
	"fmt"
	"strings"

	"tritutor/internal/curriculum"
	"tritutor/internal/mastery"
	"tritutor/internal/session"
	"tritutor/internal/store"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning progress and pipeline activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		graph := curriculum.TrianglesGrade6
		sess, err := session.Resume(ctx, graph, mastery.NewEngine(mastery.DefaultConfig()), st.Sessions())
		if err != nil {
			return err
		}
		state := sess.Progression()

		fmt.Printf("Topic: %s\n", graph.Topic())
		fmt.Println(strings.Repeat("─", 72))

		for _, level := range graph.Levels() {
			locked := ""
			if !state.IsLevelUnlocked(level.Index) {
				locked = "  (locked)"
			}
			fmt.Printf("Level %d: %s%s\n", level.Index, level.Title, locked)

			for _, c := range graph.ConceptsForLevel(level.Index) {
				m := state.MasteryByConcept[c.ID]
				mark := " "
				switch {
				case m.Mastered:
					mark = "✓"
				case m.NeedsRemediation:
					mark = "!"
				case m.AttemptCount > 0:
					mark = "·"
				}
				fmt.Printf("  %s %-40s  d%-2d  %d/%d correct\n",
					mark, c.Title, m.CurrentDifficulty, m.CorrectCount, m.AttemptCount)
			}
		}

		if state.TopicCompleted {
			fmt.Println("\nTopic completed!")
		}

		pipeline, err := st.Events().PipelineStats(ctx)
		if err != nil {
			return err
		}
		if pipeline.Attempts > 0 {
			fmt.Println()
			fmt.Println("Item generation")
			fmt.Println(strings.Repeat("─", 72))
			fmt.Printf("Attempts: %d   Accepted: %d   Fallbacks: %d\n",
				pipeline.Attempts, pipeline.Accepted, pipeline.Fallbacks)
		}

		return nil
	},
}

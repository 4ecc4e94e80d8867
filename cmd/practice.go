package cmd

import (
	"fmt"
	"os"

	"tritutor/internal/app"
	"tritutor/internal/curriculum"
	"tritutor/internal/itemgen"
	"tritutor/internal/llm"
	"tritutor/internal/store"

	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

// runPractice opens the store, builds dependencies, and starts the
// practice loop.
func runPractice(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Graph:    curriculum.TrianglesGrade6,
		Storage:  st.Sessions(),
		Observer: st.Events(),
		Config:   itemgen.DefaultConfig(),
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
	}

	var cfg llm.Config
	var found bool
	if os.Getenv("TRITUTOR_LLM_PROVIDER") != "" {
		cfg, found = llm.ConfigFromEnv(), true
	} else {
		cfg, found = llm.DiscoverConfig()
	}
	if !found {
		fmt.Fprintln(os.Stderr, "No LLM provider configured; using built-in items.")
		fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY to enable generated items.")
	} else {
		provider, err := llm.NewProvider(ctx, cfg, st.Events())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
			fmt.Fprintln(os.Stderr, "Falling back to built-in items.")
		} else {
			opts.Provider = provider
		}
	}

	return app.Run(ctx, opts)
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"tritutor/internal/llm"
	"tritutor/internal/store"

	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM usage",
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		stats, err := s.Events().LLMStats(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println("Usage by Model and Purpose")
		fmt.Println(strings.Repeat("─", 92))
		fmt.Printf("%-28s  %-18s  %6s  %6s  %10s  %10s  %9s\n",
			"Model", "Purpose", "Calls", "Failed", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 92))

		var totalIn, totalOut, totalCalls int
		var totalCost float64
		var unknownModels []string
		for _, st := range stats {
			costStr := "?"
			if cost := llm.LookupCost(st.Model); cost != nil {
				c := cost.Cost(st.InputTokens, st.OutputTokens)
				totalCost += c
				costStr = formatCost(c)
			} else {
				unknownModels = append(unknownModels, st.Model)
			}
			fmt.Printf("%-28s  %-18s  %6d  %6d  %10d  %10d  %9s\n",
				truncate(st.Model, 28), st.Purpose, st.Calls, st.Failures,
				st.InputTokens, st.OutputTokens, costStr)
			totalCalls += st.Calls
			totalIn += st.InputTokens
			totalOut += st.OutputTokens
		}

		fmt.Println(strings.Repeat("─", 92))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-28s  %-18s  %6d  %6s  %10d  %10d  %9s\n",
			label, "", totalCalls, "", totalIn, totalOut, formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}

		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmStatsCmd)
}

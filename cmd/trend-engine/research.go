// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/internal/store"
)

var researchCmd = &cobra.Command{
	Use:   "research [keywords...]",
	Short: "Run trend research across all signal sources",
	Long: `Research collects demand signals for the configured keywords (or the
keywords given as arguments), aggregates them into composite trend scores,
enriches each trend with velocity and confidence, and saves the ranked
results as a new research run.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().Bool("offline", false, "skip live sources, use simulated signals only")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if len(args) > 0 {
		cfg.Signals.Keywords = args
	}
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg.Signals.EnableTrends = false
		cfg.Signals.EnableDiscussion = false
		cfg.Signals.EnableSimulated = true
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	pipeline := &research.Pipeline{
		Store:    st,
		Adapters: buildAdapters(cfg.Signals),
		Cfg:      cfg,
		Out:      os.Stderr,
	}
	result, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	printTrends(result)
	return nil
}

func printTrends(result research.RunResult) {
	if len(result.Trends) == 0 {
		fmt.Printf("Run %s: no trends found\n", result.RunID)
		return
	}
	fmt.Printf("Run %s: %d trends\n\n", result.RunID, len(result.Trends))
	fmt.Printf("%-4s %-28s %8s %-10s %-10s %s\n", "#", "KEYWORD", "SCORE", "CATEGORY", "CONFIDENCE", "TYPE")
	fmt.Println(strings.Repeat("-", 80))
	for i, t := range result.Trends {
		fmt.Printf("%-4d %-28s %8.1f %-10s %-10s %s\n",
			i+1, t.Trend.Keyword, t.Trend.CompositeScore,
			t.Enrichment.Category, t.Enrichment.ConfidenceLabel, t.ProductType)
	}
	fmt.Println()
	for _, t := range result.Trends {
		fmt.Println(" ", t.Enrichment.Explanation)
	}
}

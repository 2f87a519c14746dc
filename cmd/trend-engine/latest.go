// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trend-engine/internal/store"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the latest research run",
	Long: `Latest prints the most recently created research run and its items in
rank order. Soft-deleted items are hidden.`,
	RunE: runLatest,
}

func init() {
	latestCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(latestCmd)
}

func runLatest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	run, items, err := st.LatestRun(cmd.Context())
	if err != nil {
		return err
	}
	if run.RunID == "" {
		fmt.Println("No research runs yet. Run 'trend-engine research' first.")
		return nil
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"run": run, "items": items})
	}

	fmt.Printf("Run %s (%s, created %s): %d items\n\n",
		run.RunID, run.Status, run.CreatedAt.Format("2006-01-02 15:04"), len(items))
	for i, item := range items {
		fmt.Printf("%3d. %-28s %8.1f  %s\n", i+1, item.Keyword, item.DemandScore, item.ProductType)
	}
	return nil
}

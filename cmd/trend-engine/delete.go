// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trend-engine/internal/store"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [keyword]",
	Short: "Delete an item, or the whole latest run with --run",
	Long: `Delete soft-deletes one item from the latest research run by keyword,
or every item in the latest run with --run. Deleted items stay in the
database but disappear from queries; there is no undelete.`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().Bool("run", false, "delete every item in the latest run")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	wholeRun, _ := cmd.Flags().GetBool("run")
	if !wholeRun && len(args) != 1 {
		return fmt.Errorf("provide a keyword to delete, or --run for the whole latest run")
	}

	cfg := loadConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	if wholeRun {
		n, err := st.DeleteLatestRun(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d items from the latest run.\n", n)
		return nil
	}

	if err := st.DeleteItem(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %q from the latest run.\n", args[0])
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trend-engine/internal/store"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the recent activity log",
	RunE:  runActivity,
}

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Show total revenue across all products",
	RunE:  runRevenue,
}

func init() {
	activityCmd.Flags().Int("limit", 20, "maximum rows to show")

	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(revenueCmd)
}

func runActivity(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	activities, err := st.RecentActivity(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		fmt.Println("No activity yet.")
		return nil
	}
	for _, a := range activities {
		fmt.Printf("%s  %-16s %-24s %s\n",
			a.Timestamp.Format("2006-01-02 15:04:05"), a.Agent, a.Action, a.Result)
	}
	return nil
}

func runRevenue(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	total, err := st.Revenue(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Total revenue: $%.2f\n", total)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trend-engine/internal/cycle"
	"github.com/pdiddy/trend-engine/internal/product"
	"github.com/pdiddy/trend-engine/internal/publish"
	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/internal/store"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Run one full business cycle: research, create, publish",
	Long: `Cycle performs the complete daily loop once: research trending
keywords, build a product for the top trend, and publish it. A publish
failure does not fail the cycle; the product stays stored for retry.`,
	RunE: runCycle,
}

func init() {
	rootCmd.AddCommand(cycleCmd)
}

func runCycle(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	publisher := publish.NewPublisher(st, cfg.Publishing)
	publisher.Out = os.Stderr

	runner := &cycle.Runner{
		Pipeline: &research.Pipeline{
			Store:    st,
			Adapters: buildAdapters(cfg.Signals),
			Cfg:      cfg,
			Out:      os.Stderr,
		},
		Creator:   &product.Creator{Store: st, Cfg: cfg.Creation, Out: os.Stderr},
		Publisher: publisher,
		Out:       os.Stderr,
	}

	res, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Cycle complete: %d trends researched.\n", len(res.Research.Items))
	if res.Product.Name != "" {
		fmt.Printf("Product: %q (%s)\n", res.Product.Name, res.Product.Status)
	}
	if res.PublishErr != nil {
		fmt.Printf("Publish failed: %v\n", res.PublishErr)
	}
	return nil
}

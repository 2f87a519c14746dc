// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trend-engine/internal/publish"
	"github.com/pdiddy/trend-engine/internal/store"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the latest created product to Pinterest",
	Long: `Publish posts the most recent unpublished product as a pin on the
configured Pinterest board. The product's status flips to published on
success or publish_failed otherwise; failed products can be retried.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	publisher := publish.NewPublisher(st, cfg.Publishing)
	publisher.Out = os.Stderr

	p, err := publisher.PublishLatest(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Published %q.\n", p.Name)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trend-engine/internal/product"
	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/internal/store"
)

var createCmd = &cobra.Command{
	Use:   "create [keyword]",
	Short: "Build a spreadsheet product from a researched trend",
	Long: `Create renders a CSV spreadsheet product. Without arguments the
top-ranked keyword of the latest research run is used; with a keyword
argument the product type is inferred from the keyword.`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("type", "", "override the inferred product type")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	creator := &product.Creator{Store: st, Cfg: cfg.Creation, Out: os.Stderr}

	if len(args) == 0 {
		p, err := creator.CreateFromLatest(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Created %q (%s): %s\n", p.Name, p.Type, p.Link)
		return nil
	}

	keyword := args[0]
	productType, _ := cmd.Flags().GetString("type")
	if productType == "" {
		productType = research.Classify(keyword)
	}
	p, err := creator.Create(cmd.Context(), keyword, productType)
	if err != nil {
		return err
	}
	fmt.Printf("Created %q (%s): %s\n", p.Name, p.Type, p.Link)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/trend-engine/internal/bot"
	"github.com/pdiddy/trend-engine/internal/cycle"
	"github.com/pdiddy/trend-engine/internal/httpapi"
	"github.com/pdiddy/trend-engine/internal/product"
	"github.com/pdiddy/trend-engine/internal/publish"
	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot, HTTP API, and daily schedule",
	Long: `Serve starts the long-running front ends: the Telegram bot, the HTTP
API, and the cron-scheduled business cycle. Any of the three can be
disabled; serve exits cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Bool("no-bot", false, "disable the Telegram bot")
	serveCmd.Flags().Bool("no-api", false, "disable the HTTP API")
	serveCmd.Flags().Bool("no-schedule", false, "disable the cron schedule")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
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
	creator := &product.Creator{Store: st, Cfg: cfg.Creation, Out: os.Stderr}
	publisher := publish.NewPublisher(st, cfg.Publishing)
	publisher.Out = os.Stderr

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	noBot, _ := cmd.Flags().GetBool("no-bot")
	if !noBot {
		b, err := bot.New(cfg.Bot, st, pipeline, creator, publisher, os.Stderr)
		if err != nil {
			return err
		}
		g.Go(func() error { return b.Run(ctx) })
	}

	noAPI, _ := cmd.Flags().GetBool("no-api")
	if !noAPI {
		srv := httpapi.New(st, pipeline, creator, publisher)
		fmt.Fprintf(os.Stderr, "HTTP API listening on %s\n", cfg.Server.Addr)
		g.Go(func() error { return srv.Serve(ctx, cfg.Server.Addr) })
	}

	noSchedule, _ := cmd.Flags().GetBool("no-schedule")
	if !noSchedule && cfg.Schedule.Cron != "" {
		runner := &cycle.Runner{Pipeline: pipeline, Creator: creator, Publisher: publisher, Out: os.Stderr}
		sched, err := cycle.NewScheduler(cfg.Schedule.Cron, runner, os.Stderr)
		if err != nil {
			return err
		}
		sched.Start()
		fmt.Fprintf(os.Stderr, "Daily cycle scheduled: %s\n", cfg.Schedule.Cron)
		g.Go(func() error {
			<-ctx.Done()
			sched.Stop()
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bot exposes the engine over Telegram.
// Implements: prd006-frontends (R1);
//
//	docs/ARCHITECTURE § Front Ends.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pdiddy/trend-engine/internal/cycle"
	"github.com/pdiddy/trend-engine/internal/product"
	"github.com/pdiddy/trend-engine/internal/publish"
	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/internal/store"
	"github.com/pdiddy/trend-engine/pkg/types"
)

// Bot long-polls Telegram and maps commands onto the engine.
type Bot struct {
	api       *tgbotapi.BotAPI
	chatID    int64
	store     *store.Store
	pipeline  *research.Pipeline
	creator   *product.Creator
	publisher *publish.Publisher
	runner    *cycle.Runner
	out       io.Writer
}

// New connects to Telegram. A non-zero chatID restricts the bot to that
// chat; other chats are ignored.
func New(cfg types.BotConfig, st *store.Store, pipeline *research.Pipeline, creator *product.Creator, publisher *publish.Publisher, out io.Writer) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token not configured: add .secrets/telegram-bot-token")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	if out == nil {
		out = io.Discard
	}
	return &Bot{
		api:       api,
		chatID:    cfg.ChatID,
		store:     st,
		pipeline:  pipeline,
		creator:   creator,
		publisher: publisher,
		runner:    &cycle.Runner{Pipeline: pipeline, Creator: creator, Publisher: publisher, Out: io.Discard},
		out:       out,
	}, nil
}

// Run long-polls until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	fmt.Fprintf(b.out, "telegram bot @%s listening\n", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if b.chatID != 0 && update.Message.Chat.ID != b.chatID {
				continue
			}
			b.reply(update.Message.Chat.ID, b.handle(ctx, update.Message))
		}
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		fmt.Fprintf(b.out, "warning: sending telegram reply: %v\n", err)
	}
}

func (b *Bot) handle(ctx context.Context, msg *tgbotapi.Message) string {
	switch msg.Command() {
	case "start", "help":
		return helpText
	case "run":
		return b.handleRun(ctx)
	case "latest":
		return b.handleLatest(ctx)
	case "delete":
		return b.handleDelete(ctx, strings.TrimSpace(msg.CommandArguments()))
	case "deleterun":
		return b.handleDeleteRun(ctx)
	case "create":
		return b.handleCreate(ctx)
	case "publish":
		return b.handlePublish(ctx)
	case "today":
		return b.handleToday(ctx)
	case "status":
		return b.handleStatus(ctx)
	case "revenue":
		return b.handleRevenue(ctx)
	case "activity":
		return b.handleActivity(ctx)
	default:
		return "Unknown command. " + helpText
	}
}

const helpText = `Commands:
/run - research trending keywords
/latest - show the latest research run
/delete <keyword> - remove one item from the latest run
/deleterun - clear the latest run
/create - build a product from the top trend
/publish - publish the latest product
/today - full daily cycle (research, create, publish)
/status - engine status
/revenue - total revenue
/activity - recent activity log`

func (b *Bot) handleRun(ctx context.Context) string {
	result, err := b.pipeline.Run(ctx)
	if err != nil {
		return errorText(err)
	}
	return formatRun(result)
}

func (b *Bot) handleLatest(ctx context.Context) string {
	run, items, err := b.store.LatestRun(ctx)
	if err != nil {
		return errorText(err)
	}
	if run.RunID == "" {
		return "No research runs yet. Send /run to start one."
	}
	if len(items) == 0 {
		return fmt.Sprintf("Run %s has no items.", run.RunID)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s (%s):\n", run.RunID, run.Status)
	for i, item := range items {
		fmt.Fprintf(&sb, "%d. %s — %.1f (%s)\n", i+1, item.Keyword, item.DemandScore, item.ProductType)
	}
	return sb.String()
}

func (b *Bot) handleDelete(ctx context.Context, keyword string) string {
	if keyword == "" {
		return "Usage: /delete <keyword>"
	}
	if err := b.store.DeleteItem(ctx, keyword); err != nil {
		return errorText(err)
	}
	return fmt.Sprintf("Deleted %q from the latest run.", keyword)
}

func (b *Bot) handleDeleteRun(ctx context.Context) string {
	n, err := b.store.DeleteLatestRun(ctx)
	if err != nil {
		return errorText(err)
	}
	return fmt.Sprintf("Deleted %d items from the latest run.", n)
}

func (b *Bot) handleCreate(ctx context.Context) string {
	prod, err := b.creator.CreateFromLatest(ctx)
	if err != nil {
		return errorText(err)
	}
	return fmt.Sprintf("Created %q (%s)\n%s", prod.Name, prod.Type, prod.Link)
}

func (b *Bot) handlePublish(ctx context.Context) string {
	prod, err := b.publisher.PublishLatest(ctx)
	if err != nil {
		return errorText(err)
	}
	return fmt.Sprintf("Published %q.", prod.Name)
}

func (b *Bot) handleToday(ctx context.Context) string {
	res, err := b.runner.Run(ctx)
	if err != nil {
		return errorText(err)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Daily cycle done: %d trends researched.\n", len(res.Research.Items))
	if res.Product.Name != "" {
		fmt.Fprintf(&sb, "Created %q (%s).\n", res.Product.Name, res.Product.Status)
	}
	if res.PublishErr != nil {
		fmt.Fprintf(&sb, "Publish failed: %v\n", res.PublishErr)
	}
	return sb.String()
}

func (b *Bot) handleStatus(ctx context.Context) string {
	run, items, err := b.store.LatestRun(ctx)
	if err != nil {
		return errorText(err)
	}
	products, err := b.store.Products(ctx)
	if err != nil {
		return errorText(err)
	}
	if run.RunID == "" {
		return fmt.Sprintf("No runs yet. %d products in store.", len(products))
	}
	return fmt.Sprintf("Latest run %s (%s): %d items. %d products in store.",
		run.RunID, run.Status, len(items), len(products))
}

func (b *Bot) handleRevenue(ctx context.Context) string {
	total, err := b.store.Revenue(ctx)
	if err != nil {
		return errorText(err)
	}
	return fmt.Sprintf("Total revenue: $%.2f", total)
}

func (b *Bot) handleActivity(ctx context.Context) string {
	activities, err := b.store.RecentActivity(ctx, 10)
	if err != nil {
		return errorText(err)
	}
	if len(activities) == 0 {
		return "No activity yet."
	}
	var sb strings.Builder
	sb.WriteString("Recent activity:\n")
	for _, a := range activities {
		fmt.Fprintf(&sb, "%s %s: %s\n", a.Timestamp.Format("01-02 15:04"), a.Agent, a.Action)
	}
	return sb.String()
}

func formatRun(result research.RunResult) string {
	if len(result.Trends) == 0 {
		return fmt.Sprintf("Run %s finished with no trends.", result.RunID)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s: %d trends\n", result.RunID, len(result.Trends))
	for i, t := range result.Trends {
		fmt.Fprintf(&sb, "%d. %s — %.1f [%s, %s confidence]\n",
			i+1, t.Trend.Keyword, t.Trend.CompositeScore, t.Enrichment.Category, t.Enrichment.ConfidenceLabel)
	}
	if len(result.SourceErrors) > 0 {
		fmt.Fprintf(&sb, "(%d sources fell back to simulation)\n", len(result.SourceErrors))
	}
	return sb.String()
}

// errorText maps store sentinels onto friendly replies; the two cases
// render differently on purpose.
func errorText(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Nothing found: " + err.Error()
	case errors.Is(err, store.ErrUnavailable):
		return "Storage is unavailable right now, try again shortly."
	default:
		return "Error: " + err.Error()
	}
}

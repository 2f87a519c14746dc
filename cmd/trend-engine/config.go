// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/trend-engine/internal/signal"
	"github.com/pdiddy/trend-engine/pkg/types"
)

const defaultUserAgent = "trend-engine/0.1"

// defaultKeywords seed research when no config file provides a list.
var defaultKeywords = []string{
	"budget planner",
	"meal planner",
	"habit tracker",
	"wedding checklist",
	"expense tracker",
	"daily planner",
	"workout tracker",
	"study planner",
}

func init() {
	viper.SetDefault("signals.keywords", defaultKeywords)
	viper.SetDefault("signals.batch_size", 5)
	viper.SetDefault("signals.batch_delay_min", "1s")
	viper.SetDefault("signals.batch_delay_max", "3s")
	viper.SetDefault("signals.enable_trends", true)
	viper.SetDefault("signals.enable_discussion", true)
	viper.SetDefault("signals.enable_simulated", true)
	viper.SetDefault("signals.subreddits", []string{"EtsySellers", "DigitalProducts", "smallbusiness"})
	viper.SetDefault("signals.posts_per_query", 10)
	viper.SetDefault("signals.timeout", "30s")
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("store.history_depth", 12)
	viper.SetDefault("creation.products_dir", "products")
	viper.SetDefault("creation.templates_dir", "templates")
	viper.SetDefault("publishing.max_retries", 3)
	viper.SetDefault("publishing.pins_per_minute", 10)
	viper.SetDefault("publishing.timeout", "30s")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("schedule.cron", "0 9 * * *")
}

// loadConfig assembles the full pipeline configuration from viper and
// the loaded secrets. Secrets fill credential fields only when the
// config file leaves them empty.
func loadConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Signals: types.SignalsConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("signals.timeout"),
				UserAgent: defaultUserAgent,
			},
			Keywords:         viper.GetStringSlice("signals.keywords"),
			BatchSize:        viper.GetInt("signals.batch_size"),
			BatchDelayMin:    viper.GetDuration("signals.batch_delay_min"),
			BatchDelayMax:    viper.GetDuration("signals.batch_delay_max"),
			EnableTrends:     viper.GetBool("signals.enable_trends"),
			EnableDiscussion: viper.GetBool("signals.enable_discussion"),
			EnableSimulated:  viper.GetBool("signals.enable_simulated"),
			Subreddits:       viper.GetStringSlice("signals.subreddits"),
			PostsPerQuery:    viper.GetInt("signals.posts_per_query"),
		},
		Store: types.StoreConfig{
			DataDir:      viper.GetString("store.data_dir"),
			HistoryDepth: viper.GetInt("store.history_depth"),
		},
		Creation: types.CreationConfig{
			ProductsDir:  viper.GetString("creation.products_dir"),
			TemplatesDir: viper.GetString("creation.templates_dir"),
		},
		Publishing: types.PublishingConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("publishing.timeout"),
				UserAgent: defaultUserAgent,
			},
			BoardID:       secretDefault("pinterest-board-id", viper.GetString("publishing.board_id")),
			AccessToken:   secretDefault("pinterest-access-token", viper.GetString("publishing.access_token")),
			MaxRetries:    viper.GetInt("publishing.max_retries"),
			PinsPerMinute: viper.GetInt("publishing.pins_per_minute"),
		},
		Bot: types.BotConfig{
			Token: secretDefault("telegram-bot-token", viper.GetString("bot.token")),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
		Schedule: types.ScheduleConfig{
			Cron: viper.GetString("schedule.cron"),
		},
	}

	cfg.Bot.ChatID = viper.GetInt64("bot.chat_id")
	if cfg.Bot.ChatID == 0 {
		if v, ok := loadedSecrets["telegram-chat-id"]; ok {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				cfg.Bot.ChatID = id
			}
		}
	}
	return cfg
}

// buildAdapters constructs the configured signal adapters. Each live
// source pairs with a simulated one so the composite always has more
// than one signal type to weigh.
func buildAdapters(cfg types.SignalsConfig) []signal.Adapter {
	client := &http.Client{Timeout: cfg.Timeout}
	if client.Timeout == 0 {
		client.Timeout = 30 * time.Second
	}

	var adapters []signal.Adapter
	if cfg.EnableTrends {
		adapters = append(adapters, &signal.TrendsAdapter{Client: client})
	}
	if cfg.EnableDiscussion {
		adapters = append(adapters, &signal.DiscussionAdapter{Client: client})
	}
	if cfg.EnableSimulated {
		adapters = append(adapters,
			&signal.BuyerIntentAdapter{},
			&signal.SearchGrowthAdapter{},
		)
	}
	return adapters
}

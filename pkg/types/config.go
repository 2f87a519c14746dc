package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "trend-engine/0.1"). Per prd001-signals R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SignalsConfig holds settings for the signal collection stage.
// Per prd001-signals R1.4, R4.1-R4.4.
type SignalsConfig struct {
	HTTPConfig `yaml:",inline"`

	// Keywords is the seed keyword list sampled each run.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// BatchSize is the number of keywords sent per upstream request
	// (default 5, the trends API payload limit).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// BatchDelayMin and BatchDelayMax bound the jittered pause between
	// consecutive batches. The pause blocks only the adapter's own fetch.
	BatchDelayMin time.Duration `json:"batch_delay_min" yaml:"batch_delay_min"`
	BatchDelayMax time.Duration `json:"batch_delay_max" yaml:"batch_delay_max"`

	// EnableTrends controls whether the live search-trend adapter is used.
	EnableTrends bool `json:"enable_trends" yaml:"enable_trends"`

	// EnableDiscussion controls whether the discussion-forum adapter is used.
	EnableDiscussion bool `json:"enable_discussion" yaml:"enable_discussion"`

	// EnableSimulated controls whether the simulated marketplace adapters
	// run alongside the live ones.
	EnableSimulated bool `json:"enable_simulated" yaml:"enable_simulated"`

	// Subreddits lists the communities the discussion adapter searches.
	Subreddits []string `json:"subreddits" yaml:"subreddits"`

	// PostsPerQuery caps how many posts one discussion search examines
	// (default 10).
	PostsPerQuery int `json:"posts_per_query" yaml:"posts_per_query"`
}

// StoreConfig holds settings for the research run store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// HistoryDepth caps how many prior runs feed a keyword's enrichment
	// time series (default 12).
	HistoryDepth int `json:"history_depth" yaml:"history_depth"`
}

// CreationConfig holds settings for the product creation stage.
// Per prd004-products R1.1-R1.4.
type CreationConfig struct {
	// ProductsDir is where rendered spreadsheet files are written
	// (default "products").
	ProductsDir string `json:"products_dir" yaml:"products_dir"`

	// TemplatesDir optionally overrides the built-in product templates
	// with YAML template files named <type>.yaml.
	TemplatesDir string `json:"templates_dir" yaml:"templates_dir"`
}

// PublishingConfig holds settings for the marketing publish stage.
// Per prd005-publishing R1.1-R1.3, R3.1.
type PublishingConfig struct {
	HTTPConfig `yaml:",inline"`

	// BoardID is the Pinterest board pins are created on.
	BoardID string `json:"board_id" yaml:"board_id"`

	// AccessToken authenticates against the Pinterest API. Usually left
	// empty here and supplied via .secrets/pinterest-access-token.
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// PinsPerMinute is the client-side rate limit (default 10).
	PinsPerMinute int `json:"pins_per_minute" yaml:"pins_per_minute"`
}

// BotConfig holds settings for the Telegram front end.
type BotConfig struct {
	// Token authenticates the bot. Usually supplied via
	// .secrets/telegram-bot-token.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// ChatID restricts command handling to one chat when non-zero.
	ChatID int64 `json:"chat_id" yaml:"chat_id"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// ScheduleConfig holds settings for the scheduled business cycle.
type ScheduleConfig struct {
	// Cron is a standard five-field cron spec for the daily cycle
	// (default "0 9 * * *"). Empty disables scheduling.
	Cron string `json:"cron" yaml:"cron"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Signals    SignalsConfig    `json:"signals" yaml:"signals"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Creation   CreationConfig   `json:"creation" yaml:"creation"`
	Publishing PublishingConfig `json:"publishing" yaml:"publishing"`
	Bot        BotConfig        `json:"bot" yaml:"bot"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Schedule   ScheduleConfig   `json:"schedule" yaml:"schedule"`
}

package config

import (
	"time"

	"portfolio-tracker/pkg/config"
)

// Scheduler holds scheduler-specific configuration.
type Scheduler struct {
	PollingInterval string `mapstructure:"polling_interval"`
}

// Executor holds executor-specific configuration.
type Executor struct {
	RedisStreamTaskExecutionTimeout time.Duration `mapstructure:"redis_stream_task_execution_timeout"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	CacheTTL            string `mapstructure:"cache_ttl"`
}

// Finnhub holds the configuration for the Finnhub API.
type Finnhub struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// Polygon holds the configuration for the Polygon aggregates API.
type Polygon struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// NewsFeed holds the configuration for the RSS headline feed.
type NewsFeed struct {
	FeedURLTemplate string `mapstructure:"feed_url_template"`
	MaxHeadlines    int    `mapstructure:"max_headlines"`
}

// Config holds the full configuration for the refresh service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Telegram     config.Telegram `mapstructure:"telegram"`
	Scheduler    Scheduler       `mapstructure:"scheduler"`
	Executor     Executor        `mapstructure:"executor"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Finnhub      Finnhub         `mapstructure:"finnhub"`
	Polygon      Polygon         `mapstructure:"polygon"`
	NewsFeed     NewsFeed        `mapstructure:"news_feed"`
}

// Load loads the refresh service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	GridAPIKey string `envconfig:"GRID_API_KEY" required:"true"`

	// Narrative generation is optional; everything else works without it.
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `envconfig:"ANTHROPIC_MODEL" default:"claude-haiku-4-5-20251001"`

	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	SeriesLimit      int           `envconfig:"SERIES_LIMIT" default:"20"`
	MaxMatches       int           `envconfig:"MAX_MATCHES" default:"10"`
	FetchConcurrency int           `envconfig:"FETCH_CONCURRENCY" default:"4"`
	CacheTTL         time.Duration `envconfig:"CACHE_TTL" default:"15m"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("series_limit", cfg.SeriesLimit).
		Int("max_matches", cfg.MaxMatches).
		Int("fetch_concurrency", cfg.FetchConcurrency).
		Dur("cache_ttl", cfg.CacheTTL).
		Bool("narrative_enabled", cfg.AnthropicAPIKey != "").
		Msg("configuration loaded")

	return cfg, nil
}

var Module = fx.Provide(Load)

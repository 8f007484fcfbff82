package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "postmint",
		Short:        "Track post coins published by a creator",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file path")
	flags.String("api-url", "https://api-sdk.zora.engineering", "coins API base URL")
	flags.String("api-key", "", "coins API key")
	flags.Int("count", 100, "coins requested per explore list")
	flags.Duration("request-timeout", 15*time.Second, "timeout per API request")
	flags.Float64("rate-limit", 0, "max API requests per second, 0 for unlimited")
	flags.String("cache", "file", "cache backend (memory, file, bolt, postgres)")
	flags.String("cache-path", "", "cache file path (default ./data/cache.json, or ./data/cache.db for bolt)")
	flags.String("pg-dsn", "", "Postgres DSN")
	flags.Int64("chain-id", 84532, "chain ID used for coin lookups")
	flags.StringSlice("filter-chains", nil, "only keep explore coins on these chain IDs (comma-separated)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newDashboardCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newExploreCmd())
	root.AddCommand(newPostCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

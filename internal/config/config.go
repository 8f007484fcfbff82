package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	APIURL         string
	APIKey         string
	Count          int
	RequestTimeout time.Duration
	RateLimit      float64
	Burst          int

	Cache     string
	CachePath string
	PGDSN     string

	ChainID      int64
	FilterChains []int64
	RPCURL       string

	Out      string
	Listen   string
	LogLevel string
}

// Load merges config file, environment variables, and flags into Config.
// Flags win over env (POSTMINT_*), which wins over the config file.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POSTMINT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api-url", "https://api-sdk.zora.engineering")
	v.SetDefault("count", 100)
	v.SetDefault("request-timeout", 15*time.Second)
	v.SetDefault("rate-limit", 0.0)
	v.SetDefault("burst", 1)
	v.SetDefault("cache", "file")
	v.SetDefault("chain-id", int64(84532))
	v.SetDefault("listen", ":8080")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	filterChains, err := parseChainIDs(getStringSlice(v, "filter-chains"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:         v.GetString("api-url"),
		APIKey:         v.GetString("api-key"),
		Count:          v.GetInt("count"),
		RequestTimeout: v.GetDuration("request-timeout"),
		RateLimit:      v.GetFloat64("rate-limit"),
		Burst:          v.GetInt("burst"),
		Cache:          v.GetString("cache"),
		CachePath:      cachePath(v.GetString("cache"), v.GetString("cache-path")),
		PGDSN:          v.GetString("pg-dsn"),
		ChainID:        v.GetInt64("chain-id"),
		FilterChains:   filterChains,
		RPCURL:         v.GetString("rpc"),
		Out:            v.GetString("out"),
		Listen:         v.GetString("listen"),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}

// cachePath returns path, or the default file for backend when path is empty.
func cachePath(backend, path string) string {
	if path != "" {
		return path
	}
	if strings.EqualFold(backend, "bolt") {
		return "./data/cache.db"
	}
	return "./data/cache.json"
}

func parseChainIDs(items []string) ([]int64, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chain id %q: %w", item, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

package main

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"postMint/internal/aggregate"
	"postMint/internal/cache"
	"postMint/internal/chain"
	"postMint/internal/coins"
	"postMint/internal/config"
	"postMint/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// app holds the dependencies shared by subcommands.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	client  *coins.Client
	tokens  *chain.TokenMetaCache

	store      cache.Store
	closeStore func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	client := coins.NewClient(coins.Config{
		BaseURL:   cfg.APIURL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
	}, m, logger)

	if cfg.APIKey == "" {
		logger.Warn("no api key configured, requests may be rate limited or rejected")
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		client:  client,
		tokens:  chain.NewTokenMetaCache(),
	}, nil
}

func (a *app) openCache(ctx context.Context) error {
	store, closeFn, err := cache.Open(ctx, cache.Options{
		Backend: a.cfg.Cache,
		Path:    a.cfg.CachePath,
		PGDSN:   a.cfg.PGDSN,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	a.store = store
	a.closeStore = closeFn
	return nil
}

// dialChain connects to the configured RPC node and checks that it serves
// the configured chain.
func (a *app) dialChain(ctx context.Context) (*chain.Client, error) {
	client, err := chain.NewClient(ctx, a.cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	if err := chain.VerifyChainID(ctx, client, a.cfg.ChainID); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (a *app) aggregator() *aggregate.Aggregator {
	sources := make([]aggregate.Source, 0, len(coins.PriorityOrder))
	for _, src := range coins.DefaultSources(a.client, a.cfg.Count) {
		sources = append(sources, src)
	}
	return aggregate.NewAggregator(aggregate.Config{
		Filter:  aggregate.ChainFilter(a.cfg.FilterChains...),
		Metrics: a.metrics,
	}, sources, a.store, a.logger)
}

func (a *app) Close() {
	if a.closeStore != nil {
		a.closeStore()
	}
	_ = a.logger.Sync()
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

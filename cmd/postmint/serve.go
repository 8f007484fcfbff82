package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"postMint/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API over HTTP",
		RunE:  runServe,
	}
	cmd.Flags().String("listen", ":8080", "listen address")
	cmd.Flags().String("rpc", "", "RPC URL; when set, GET /api/v1/coins/:address?onchain=1 reads ERC20 metadata")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.openCache(ctx); err != nil {
		return err
	}

	srv := server.New(server.Config{
		ChainID:      a.cfg.ChainID,
		ExploreCount: a.cfg.Count,
	}, a.aggregator(), a.client, a.metrics, a.logger)

	if a.cfg.RPCURL != "" {
		chainClient, err := a.dialChain(ctx)
		if err != nil {
			return err
		}
		defer chainClient.Close()
		srv.WithChain(chainClient, a.tokens)
	}

	a.logger.Info("serve start",
		zap.String("listen", a.cfg.Listen),
		zap.String("cache", a.cfg.Cache),
		zap.Int64("chain_id", a.cfg.ChainID),
	)
	return srv.Run(ctx, a.cfg.Listen)
}

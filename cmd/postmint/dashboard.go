package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"postMint/internal/model"
	"postMint/internal/storage"
	"postMint/internal/storage/postgres"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Find all coins created by an address",
		RunE:  runDashboard,
	}
	cmd.Flags().String("creator", "", "creator address")
	cmd.Flags().String("out", "", "also append the creator's coins to this JSONL file")
	cmd.Flags().Bool("export-pg", false, "also upsert the creator's coins into Postgres (needs --pg-dsn)")
	_ = cmd.MarkFlagRequired("creator")
	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	creator, _ := cmd.Flags().GetString("creator")
	if !common.IsHexAddress(creator) {
		return fmt.Errorf("invalid creator address: %q", creator)
	}
	exportPG, _ := cmd.Flags().GetBool("export-pg")
	if exportPG && a.cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required for --export-pg")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.openCache(ctx); err != nil {
		return err
	}

	a.logger.Info("dashboard start",
		zap.String("creator", creator),
		zap.String("cache", a.cfg.Cache),
		zap.Int("count", a.cfg.Count),
	)
	all, mine := a.aggregator().Aggregate(ctx, creator)

	var sinks []storage.Sink
	if a.cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(a.cfg.Out))
	}
	if exportPG {
		store, err := postgres.NewStore(ctx, a.cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}
	for _, sink := range sinks {
		if err := sink.PutRecords(ctx, mine); err != nil {
			return fmt.Errorf("export records: %w", err)
		}
	}

	return printJSON(cmd.OutOrStdout(), model.NewDashboard(creator, all, mine))
}

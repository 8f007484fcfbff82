package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"postMint/internal/coins"
	"postMint/internal/model"
)

func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "List coins from one explore list",
		RunE:  runExplore,
	}
	cmd.Flags().String("source", "new", "explore list (new, valuable, traded)")
	cmd.Flags().String("after", "", "pagination cursor")
	return cmd
}

func runExplore(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	source, _ := cmd.Flags().GetString("source")
	after, _ := cmd.Flags().GetString("after")
	kind, err := coins.ParseListKind(source)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	page, err := a.client.Explore(ctx, kind, a.cfg.Count, after)
	if err != nil {
		return err
	}
	a.logger.Debug("explore page", zap.String("source", kind.Name()), zap.Int("coins", len(page.Coins)))

	views := make([]model.CoinView, 0, len(page.Coins))
	for _, coin := range page.Coins {
		views = append(views, model.NewCoinView(coin))
	}
	return printJSON(cmd.OutOrStdout(), map[string]interface{}{
		"source":   kind.Name(),
		"coins":    views,
		"pageInfo": page.PageInfo,
	})
}

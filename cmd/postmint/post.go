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

	"postMint/internal/aggregate"
	"postMint/internal/model"
)

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Show the details of one coin",
		RunE:  runPost,
	}
	cmd.Flags().String("address", "", "coin contract address")
	cmd.Flags().String("rpc", "", "RPC URL; when set, ERC20 metadata is read on-chain too")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func runPost(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	address, _ := cmd.Flags().GetString("address")
	if !aggregate.ValidAddress(address) {
		return fmt.Errorf("%w: %q", aggregate.ErrInvalidAddressFormat, address)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coin, err := a.client.Coin(ctx, address, a.cfg.ChainID)
	if err != nil {
		return err
	}
	detail := model.CoinDetail{CoinView: model.NewCoinView(coin)}

	if a.cfg.RPCURL != "" {
		chainClient, err := a.dialChain(ctx)
		if err != nil {
			return err
		}
		defer chainClient.Close()

		meta, err := a.tokens.TokenMeta(ctx, chainClient, common.HexToAddress(address), a.logger)
		if err != nil {
			a.logger.Warn("on-chain metadata unavailable", zap.String("address", address), zap.Error(err))
		} else {
			detail.OnChain = &meta
		}
	}

	return printJSON(cmd.OutOrStdout(), detail)
}

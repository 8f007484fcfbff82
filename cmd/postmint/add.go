package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"postMint/internal/aggregate"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a coin address by hand for a creator",
		RunE:  runAdd,
	}
	cmd.Flags().String("creator", "", "creator address")
	cmd.Flags().String("address", "", "coin contract address")
	_ = cmd.MarkFlagRequired("creator")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	creator, _ := cmd.Flags().GetString("creator")
	address, _ := cmd.Flags().GetString("address")

	ctx := context.Background()
	if err := a.openCache(ctx); err != nil {
		return err
	}

	record, err := a.aggregator().AddManualRecord(ctx, creator, address)
	switch {
	case errors.Is(err, aggregate.ErrInvalidAddressFormat):
		return fmt.Errorf("please enter a valid contract address (0x followed by 40 hex characters): %w", err)
	case errors.Is(err, aggregate.ErrDuplicateAddress):
		return fmt.Errorf("this coin is already in your list: %w", err)
	case err != nil:
		return err
	}
	return printJSON(cmd.OutOrStdout(), record)
}

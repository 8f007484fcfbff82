package coins

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"postMint/internal/model"
)

// BaseSepoliaChainID is the chain coins are looked up on by default.
const BaseSepoliaChainID int64 = 84532

// Coin fetches a single coin by contract address. A chainID of zero means
// Base Sepolia. Absent fields are defaulted the same way as list records.
func (c *Client) Coin(ctx context.Context, address string, chainID int64) (model.RawCoin, error) {
	if chainID == 0 {
		chainID = BaseSepoliaChainID
	}
	query := url.Values{}
	query.Set("address", address)
	query.Set("chain", strconv.FormatInt(chainID, 10))

	body, err := c.get(ctx, "coin", query)
	if err != nil {
		return model.RawCoin{}, fmt.Errorf("get coin %s: %w", address, err)
	}
	if !gjson.ValidBytes(body) {
		return model.RawCoin{}, fmt.Errorf("get coin %s: malformed response body", address)
	}

	root := gjson.ParseBytes(body)
	node := root.Get("zora20Token")
	if !node.Exists() {
		node = root.Get("data.zora20Token")
	}
	if !node.IsObject() {
		return model.RawCoin{}, fmt.Errorf("get coin %s: %w", address, ErrNotFound)
	}

	coin := rawCoinFromNode(node)
	if coin.Name == "" {
		coin.Name = model.DefaultName
	}
	if coin.Symbol == "" {
		coin.Symbol = model.DefaultSymbol
	}
	for _, amount := range []*string{&coin.TotalSupply, &coin.TotalVolume, &coin.Volume24h, &coin.MarketCap} {
		if *amount == "" {
			*amount = model.ZeroAmount
		}
	}
	if coin.ChainID == 0 {
		coin.ChainID = chainID
	}
	return coin, nil
}

package coins

import (
	"github.com/tidwall/gjson"

	"postMint/internal/model"
)

// rawCoinFromNode reads a coin node without trusting its shape: numbers may
// arrive as strings or numbers, and any field may be missing or null.
func rawCoinFromNode(node gjson.Result) model.RawCoin {
	return model.RawCoin{
		ID:             stringField(node, "id"),
		Name:           stringField(node, "name"),
		Symbol:         stringField(node, "symbol"),
		Description:    stringField(node, "description"),
		Address:        stringField(node, "address"),
		CreatedAt:      stringField(node, "createdAt"),
		TotalSupply:    stringField(node, "totalSupply"),
		TotalVolume:    stringField(node, "totalVolume"),
		Volume24h:      stringField(node, "volume24h"),
		MarketCap:      stringField(node, "marketCap"),
		CreatorAddress: stringField(node, "creatorAddress"),
		UniqueHolders:  node.Get("uniqueHolders").Int(),
		ChainID:        node.Get("chainId").Int(),
		PreviewImage:   stringField(node, "mediaContent.previewImage.medium"),
	}
}

func stringField(node gjson.Result, path string) string {
	v := node.Get(path)
	switch v.Type {
	case gjson.String, gjson.Number:
		return v.String()
	default:
		return ""
	}
}

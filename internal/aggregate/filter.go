package aggregate

import "postMint/internal/model"

// NetworkFilter reports whether a live coin belongs to the networks of
// interest. Cached records are never filtered.
type NetworkFilter func(coin model.RawCoin) bool

// AcceptAll keeps every coin regardless of network.
func AcceptAll(model.RawCoin) bool { return true }

// ChainFilter keeps coins on one of chainIDs. Coins that do not report a
// chain are kept. With no chain IDs every coin is kept.
func ChainFilter(chainIDs ...int64) NetworkFilter {
	if len(chainIDs) == 0 {
		return AcceptAll
	}
	allowed := make(map[int64]struct{}, len(chainIDs))
	for _, id := range chainIDs {
		allowed[id] = struct{}{}
	}
	return func(coin model.RawCoin) bool {
		if coin.ChainID == 0 {
			return true
		}
		_, ok := allowed[coin.ChainID]
		return ok
	}
}

package aggregate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"postMint/internal/cache"
	"postMint/internal/model"
)

var (
	ErrInvalidAddressFormat = errors.New("invalid address format")
	ErrDuplicateAddress     = errors.New("coin already tracked")
	ErrCreatorRequired      = errors.New("creator address is required")
)

// ValidAddress reports whether s is "0x" followed by exactly 40 hex digits.
func ValidAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// AddManualRecord appends a placeholder record for address to the creator's
// cache entry and returns it. The address is checked as given, without
// trimming, for format and for a case-insensitive duplicate before anything
// is written.
//
// Concurrent Aggregate calls for the same creator may overwrite the entry;
// the last write wins.
func (a *Aggregator) AddManualRecord(ctx context.Context, creator, address string) (model.TokenRecord, error) {
	if creator == "" {
		return model.TokenRecord{}, ErrCreatorRequired
	}
	if a.store == nil {
		return model.TokenRecord{}, fmt.Errorf("add manual record: no cache store")
	}

	if !ValidAddress(address) {
		a.cfg.Metrics.ManualEntry("invalid")
		return model.TokenRecord{}, fmt.Errorf("%w: %q", ErrInvalidAddressFormat, address)
	}

	existing, err := cache.LoadRecords(ctx, a.store, creator)
	if err != nil {
		if !errors.Is(err, cache.ErrCorrupt) {
			a.cfg.Metrics.CacheError("read")
			return model.TokenRecord{}, err
		}
		a.logger.Warn("discarding corrupt cache entry", zap.String("creator", creator), zap.Error(err))
		existing = nil
	}

	key := model.AddressKey(address)
	for _, record := range existing {
		if model.AddressKey(record.Address) == key {
			a.cfg.Metrics.ManualEntry("duplicate")
			return model.TokenRecord{}, fmt.Errorf("%w: %s", ErrDuplicateAddress, address)
		}
	}

	record := model.NewManualRecord(creator, address, a.cfg.Now())
	updated := make([]model.TokenRecord, 0, len(existing)+1)
	updated = append(updated, existing...)
	updated = append(updated, record)
	if err := cache.SaveRecords(ctx, a.store, creator, updated); err != nil {
		a.cfg.Metrics.CacheError("write")
		return model.TokenRecord{}, err
	}

	a.cfg.Metrics.ManualEntry("added")
	a.logger.Info("manual coin added", zap.String("creator", creator), zap.String("address", address))
	return record, nil
}

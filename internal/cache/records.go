package cache

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"postMint/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadRecords reads the cached coins of creator. A missing entry yields no
// records and no error; an undecodable entry yields ErrCorrupt.
func LoadRecords(ctx context.Context, store Store, creator string) ([]model.TokenRecord, error) {
	value, ok, err := store.Get(ctx, Key(creator))
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	if !ok || value == "" {
		return nil, nil
	}

	var records []model.TokenRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return records, nil
}

// SaveRecords replaces the cached coins of creator.
func SaveRecords(ctx context.Context, store Store, creator string, records []model.TokenRecord) error {
	if records == nil {
		records = []model.TokenRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := store.Set(ctx, Key(creator), string(data)); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

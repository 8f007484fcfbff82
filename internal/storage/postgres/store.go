package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"postMint/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS coins (
	address         TEXT PRIMARY KEY,
	coin_id         TEXT NOT NULL,
	name            TEXT NOT NULL,
	symbol          TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	total_supply    NUMERIC NOT NULL,
	market_cap      NUMERIC NOT NULL,
	creator_address TEXT NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS coins_creator_idx ON coins (lower(creator_address));
`

// Store provides Postgres persistence for cache entries and exported coins.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables used by the store.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// LoadEntry returns the cached value for key.
func (s *Store) LoadEntry(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("cache key required")
	}
	var value string
	row := s.pool.QueryRow(ctx, `SELECT value FROM cache_entries WHERE key=$1`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// SaveEntry upserts the cached value for key.
func (s *Store) SaveEntry(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("cache key required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cache_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	return err
}

// PutRecords inserts or updates exported coins keyed by lower-case address.
func (s *Store) PutRecords(ctx context.Context, records []model.TokenRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO coins (
				address, coin_id, name, symbol, created_at, total_supply, market_cap, creator_address, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
			ON CONFLICT (address)
			DO UPDATE SET
				coin_id = EXCLUDED.coin_id,
				name = EXCLUDED.name,
				symbol = EXCLUDED.symbol,
				created_at = EXCLUDED.created_at,
				total_supply = EXCLUDED.total_supply,
				market_cap = EXCLUDED.market_cap,
				creator_address = EXCLUDED.creator_address,
				updated_at = now()
		`,
			model.AddressKey(r.Address),
			r.ID,
			r.Name,
			r.Symbol,
			r.CreatedAt,
			numericOrZero(r.TotalSupply),
			numericOrZero(r.MarketCap),
			r.CreatorAddress,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func numericOrZero(value string) string {
	for _, r := range value {
		if r < '0' || r > '9' {
			return "0"
		}
	}
	if value == "" {
		return "0"
	}
	return value
}

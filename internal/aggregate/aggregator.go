// Package aggregate merges the explore lists and the creator cache into one
// deduplicated coin list and the creator's subset of it.
package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"postMint/internal/cache"
	"postMint/internal/metrics"
	"postMint/internal/model"
)

// Source is one list of coins. Fetch is called at most once per aggregation.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.RawCoin, error)
}

// Config controls aggregation behavior.
type Config struct {
	// Filter scopes live source records to a network. Nil accepts all.
	Filter  NetworkFilter
	Now     func() time.Time
	Metrics *metrics.Metrics
}

// Aggregator merges sources in the order given, then the cache.
type Aggregator struct {
	cfg     Config
	sources []Source
	store   cache.Store
	logger  *zap.Logger
}

func NewAggregator(cfg Config, sources []Source, store cache.Store, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Filter == nil {
		cfg.Filter = AcceptAll
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Aggregator{
		cfg:     cfg,
		sources: sources,
		store:   store,
		logger:  logger,
	}
}

type fetchResult struct {
	coins   []model.RawCoin
	err     error
	elapsed time.Duration
}

// Aggregate returns every coin found, deduplicated by address with the first
// occurrence kept, and the subset created by creator. Source and cache
// failures are logged and skipped. A non-empty subset replaces the creator's
// cache entry.
func (a *Aggregator) Aggregate(ctx context.Context, creator string) ([]model.TokenRecord, []model.TokenRecord) {
	if creator == "" {
		return []model.TokenRecord{}, []model.TokenRecord{}
	}

	results := make([]fetchResult, len(a.sources))
	var cached []model.TokenRecord
	var cacheErr error

	var g errgroup.Group
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			start := time.Now()
			coins, err := src.Fetch(ctx)
			results[i] = fetchResult{coins: coins, err: err, elapsed: time.Since(start)}
			return nil
		})
	}
	if a.store != nil {
		g.Go(func() error {
			cached, cacheErr = cache.LoadRecords(ctx, a.store, creator)
			return nil
		})
	}
	_ = g.Wait()

	now := a.cfg.Now()
	m := newMerger()
	for i, src := range a.sources {
		res := results[i]
		a.cfg.Metrics.ObserveSourceFetch(src.Name(), res.elapsed, len(res.coins), res.err)
		if res.err != nil {
			a.logger.Warn("source fetch failed", zap.String("source", src.Name()), zap.Error(res.err))
			continue
		}
		added := 0
		for _, coin := range res.coins {
			if !a.cfg.Filter(coin) {
				continue
			}
			if m.add(model.NewTokenRecord(coin, now)) {
				added++
			}
		}
		a.logger.Debug("source merged",
			zap.String("source", src.Name()),
			zap.Int("fetched", len(res.coins)),
			zap.Int("added", added),
		)
	}

	if cacheErr != nil {
		a.cfg.Metrics.CacheError("read")
		a.logger.Warn("cache read failed", zap.String("creator", creator), zap.Error(cacheErr))
	}
	for _, record := range cached {
		m.add(record)
	}

	all := m.records
	mine := model.FilterByCreator(all, creator)

	if len(mine) > 0 && a.store != nil {
		if err := cache.SaveRecords(ctx, a.store, creator, mine); err != nil {
			a.cfg.Metrics.CacheError("write")
			a.logger.Warn("cache write failed", zap.String("creator", creator), zap.Error(err))
		}
	}

	a.cfg.Metrics.ObserveRun(len(mine))
	a.logger.Info("aggregation complete",
		zap.String("creator", creator),
		zap.Int("records", len(all)),
		zap.Int("creator_records", len(mine)),
		zap.Int("cached", len(cached)),
	)
	return all, mine
}

// merger keeps the first record seen for each address.
type merger struct {
	seen    map[string]struct{}
	records []model.TokenRecord
}

func newMerger() *merger {
	return &merger{seen: make(map[string]struct{}), records: make([]model.TokenRecord, 0)}
}

func (m *merger) add(record model.TokenRecord) bool {
	if record.Address == "" {
		return false
	}
	key := model.AddressKey(record.Address)
	if _, ok := m.seen[key]; ok {
		return false
	}
	m.seen[key] = struct{}{}
	m.records = append(m.records, record)
	return true
}

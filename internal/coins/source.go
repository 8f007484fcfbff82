package coins

import (
	"context"

	"postMint/internal/model"
)

// Source adapts one explore list to the aggregator's source interface.
type Source struct {
	client *Client
	kind   ListKind
	count  int
}

func NewSource(client *Client, kind ListKind, count int) *Source {
	return &Source{client: client, kind: kind, count: count}
}

func (s *Source) Name() string { return s.kind.Name() }

func (s *Source) Fetch(ctx context.Context) ([]model.RawCoin, error) {
	page, err := s.client.Explore(ctx, s.kind, s.count, "")
	if err != nil {
		return nil, err
	}
	return page.Coins, nil
}

// DefaultSources returns one source per explore list in priority order.
func DefaultSources(client *Client, count int) []*Source {
	sources := make([]*Source, 0, len(PriorityOrder))
	for _, kind := range PriorityOrder {
		sources = append(sources, NewSource(client, kind, count))
	}
	return sources
}

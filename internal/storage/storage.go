package storage

import (
	"context"

	"postMint/internal/model"
)

// Sink receives token records for export.
type Sink interface {
	PutRecords(ctx context.Context, records []model.TokenRecord) error
}

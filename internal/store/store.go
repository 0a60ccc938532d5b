package store

import (
	"context"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

// Store persists the candy table for deployments that keep the dataset in a database.
type Store interface {
	EnsureSchema(ctx context.Context) error
	ListCandies(ctx context.Context) ([]candy.Record, error)
	ReplaceCandies(ctx context.Context, records []candy.Record) error
	Close() error
}

package dataset

import (
	"context"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/store"
)

// Source reads the raw candy rows. Implementations do no caching.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]candy.Record, error)
}

// PostgresSource reads candies from the candies table.
type PostgresSource struct {
	Store store.Store
}

func (s PostgresSource) Name() string { return "postgres:candies" }

func (s PostgresSource) Load(ctx context.Context) ([]candy.Record, error) {
	return s.Store.ListCandies(ctx)
}

package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS candies (
	id               SERIAL PRIMARY KEY,
	competitorname   TEXT NOT NULL UNIQUE,
	chocolate        BOOLEAN NOT NULL DEFAULT FALSE,
	fruity           BOOLEAN NOT NULL DEFAULT FALSE,
	caramel          BOOLEAN NOT NULL DEFAULT FALSE,
	peanutyalmondy   BOOLEAN NOT NULL DEFAULT FALSE,
	nougat           BOOLEAN NOT NULL DEFAULT FALSE,
	crispedricewafer BOOLEAN NOT NULL DEFAULT FALSE,
	hard             BOOLEAN NOT NULL DEFAULT FALSE,
	bar              BOOLEAN NOT NULL DEFAULT FALSE,
	pluribus         BOOLEAN NOT NULL DEFAULT FALSE,
	sugarpercent     DOUBLE PRECISION NOT NULL,
	pricepercent     DOUBLE PRECISION NOT NULL,
	winpercent       DOUBLE PRECISION NOT NULL
)`

const candyColumns = `competitorname,
	chocolate, fruity, caramel, peanutyalmondy, nougat, crispedricewafer, hard, bar, pluribus,
	sugarpercent, pricepercent, winpercent`

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create candies table: %w", err)
	}
	return nil
}

// ListCandies returns every row in insertion order.
func (s *PostgresStore) ListCandies(ctx context.Context) ([]candy.Record, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+candyColumns+` FROM candies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query candies: %w", err)
	}
	defer rows.Close()

	var out []candy.Record
	for rows.Next() {
		var r candy.Record
		if err := rows.Scan(
			&r.Name,
			&r.Chocolate, &r.Fruity, &r.Caramel, &r.PeanutyAlmondy, &r.Nougat,
			&r.CrispedRiceWafer, &r.Hard, &r.Bar, &r.Pluribus,
			&r.SugarPercent, &r.PricePercent, &r.WinPercent,
		); err != nil {
			return nil, fmt.Errorf("scan candy: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceCandies swaps the whole table for records in one transaction.
func (s *PostgresStore) ReplaceCandies(ctx context.Context, records []candy.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE candies RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate candies: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`INSERT INTO candies (`+candyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			r.Name,
			r.Chocolate, r.Fruity, r.Caramel, r.PeanutyAlmondy, r.Nougat,
			r.CrispedRiceWafer, r.Hard, r.Bar, r.Pluribus,
			r.SugarPercent, r.PricePercent, r.WinPercent,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert candies: %w", err)
	}
	return tx.Commit(ctx)
}

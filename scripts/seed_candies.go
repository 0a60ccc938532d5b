// seed_candies.go loads the candy CSV into the Postgres candies table.
//
// Usage:
//
//	go run scripts/seed_candies.go -csv data/candy-data.csv -db postgres://localhost:5432/candyboard
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/dataset"
	"github.com/MikeSquared-Agency/Candyboard/internal/store"
)

func main() {
	csvPath := flag.String("csv", "data/candy-data.csv", "path to candy CSV")
	dbURL := flag.String("db", os.Getenv("CANDY_DATABASE_URL"), "Postgres connection URL")
	dryRun := flag.Bool("dry-run", false, "print rows without writing")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	records, err := dataset.CSVSource{Path: *csvPath}.Load(ctx)
	if err != nil {
		log.Fatalf("read %s: %v", *csvPath, err)
	}
	// Catches duplicate or blank names before they hit the unique index.
	if _, err := candy.NewDataset(records); err != nil {
		log.Fatalf("validate %s: %v", *csvPath, err)
	}

	if *dryRun {
		for _, r := range records {
			fmt.Printf("%-32s win=%6.2f sugar=%.3f price=%.3f\n", r.Name, r.WinPercent, r.SugarPercent, r.PricePercent)
		}
		fmt.Printf("\n%d candies\n", len(records))
		return
	}

	if *dbURL == "" {
		log.Fatal("no database URL: pass -db or set CANDY_DATABASE_URL")
	}
	db, err := store.NewPostgresStore(ctx, *dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := db.ReplaceCandies(ctx, records); err != nil {
		log.Fatalf("seed: %v", err)
	}
	fmt.Printf("seeded %d candies\n", len(records))
}

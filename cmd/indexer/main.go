package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/beautrip/backend/internal/adapters/database"
	"github.com/beautrip/backend/internal/adapters/search"
	"github.com/beautrip/backend/internal/infrastructure/clients/postgres"
	"github.com/beautrip/backend/internal/infrastructure/clients/typesense"
	"github.com/beautrip/backend/pkg/config"
	"github.com/beautrip/backend/pkg/retry"
)

const indexBatchSize = 200

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	treatmentRepo := database.NewTreatmentAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting treatments collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.TreatmentsCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	adapter := search.NewTypesenseAdapter(tsClient)

	treatments, err := treatmentRepo.ListForRanking(ctx)
	if err != nil {
		return err
	}

	retryConfig := retry.Config{
		MaxAttempts:     3,
		InitialDelay:    500 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		BackoffFactor:   2.0,
		MaxTotalTimeout: 30 * time.Second,
	}

	indexed := 0
	for start := 0; start < len(treatments); start += indexBatchSize {
		end := start + indexBatchSize
		if end > len(treatments) {
			end = len(treatments)
		}

		batch := treatments[start:end]
		err := retry.Do(ctx, retryConfig, func() error {
			return adapter.BulkIndex(ctx, batch)
		})
		if err != nil {
			log.Printf("Warning: failed to index batch %d-%d: %v", start, end, err)
			continue
		}
		indexed += end - start
	}

	log.Printf("Indexed %d of %d treatments", indexed, len(treatments))
	return nil
}

package benchmark

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// SeedConfig controls dataset loading.
type SeedConfig struct {
	Stores     []StoreType // backends to load
	DataDir    string      // root directory for store files
	Collection string
	Dimensions int
	Count      int    // number of records
	BatchSize  int    // records per insert call
	Seed       int64  // dataset RNG seed
	LogFormat  string // "json" or "console"
}

// Seed wipes the per-store directories and loads the same deterministic
// dataset into every requested backend. Stores load concurrently; each gets
// its own generator so all of them see identical records.
func Seed(ctx context.Context, cfg SeedConfig) error {
	setupLog(cfg.LogFormat)

	if len(cfg.Stores) == 0 {
		return fmt.Errorf("no stores to seed")
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}

	log.Info().
		Int("records", cfg.Count).
		Int("dimensions", cfg.Dimensions).
		Int("batch_size", cfg.BatchSize).
		Int64("seed", cfg.Seed).
		Str("data_dir", cfg.DataDir).
		Msg("Seeding vector stores")

	for _, storeType := range cfg.Stores {
		if err := resetDir(StorePath(cfg.DataDir, storeType)); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, storeType := range cfg.Stores {
		g.Go(func() error {
			return seedStore(ctx, cfg, storeType)
		})
	}
	return g.Wait()
}

func resetDir(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("Removed existing directory")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("Created directory")
	return nil
}

func seedStore(ctx context.Context, cfg SeedConfig, storeType StoreType) error {
	store, err := NewVectorStore(StoreConfig{
		Type:       storeType,
		Path:       StorePath(cfg.DataDir, storeType),
		Collection: cfg.Collection,
		Dimensions: cfg.Dimensions,
		Create:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s store: %w", storeType, err)
	}
	defer store.Close()

	start := time.Now()
	inserted := 0

	batch := make([]Record, 0, cfg.BatchSize)
	for record := range GenerateRecords(cfg.Seed, cfg.Count, cfg.Dimensions) {
		batch = append(batch, record)
		if len(batch) == cfg.BatchSize {
			if err := store.Insert(ctx, batch); err != nil {
				return fmt.Errorf("failed to seed %s: %w", storeType, err)
			}
			inserted += len(batch)
			batch = batch[:0]
			log.Info().
				Str("database", string(storeType)).
				Int("inserted", inserted).
				Msg("Batch inserted")
		}
	}
	if len(batch) > 0 {
		if err := store.Insert(ctx, batch); err != nil {
			return fmt.Errorf("failed to seed %s: %w", storeType, err)
		}
		inserted += len(batch)
	}

	// explicit close so snapshot write errors surface
	if err := store.Close(); err != nil {
		return fmt.Errorf("failed to close %s store: %w", storeType, err)
	}

	elapsed := time.Since(start)
	ops := float64(0)
	if elapsed.Seconds() > 0 {
		ops = float64(inserted) / elapsed.Seconds()
	}
	log.Info().
		Str("database", string(storeType)).
		Int("records", inserted).
		Dur("elapsed", elapsed).
		Float64("records_per_sec", ops).
		Msg("Seeding complete")
	return nil
}

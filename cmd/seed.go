package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mattstanbrell/vecbench/benchmark"
)

var (
	seedDatabases []string
	seedCount     int
	seedBatchSize int
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe and reload the benchmark dataset into the vector stores",
	Run: func(cmd *cobra.Command, args []string) {
		stores := make([]benchmark.StoreType, len(seedDatabases))
		for i, name := range seedDatabases {
			stores[i] = benchmark.StoreType(name)
		}

		cfg := benchmark.SeedConfig{
			Stores:     stores,
			DataDir:    dataDir,
			Collection: collection,
			Dimensions: dimensions,
			Count:      seedCount,
			BatchSize:  seedBatchSize,
			Seed:       seed,
			LogFormat:  logFormat,
		}
		if err := benchmark.Seed(cmd.Context(), cfg); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringSliceVar(&seedDatabases, "databases", []string{"chroma", "vecgo", "sqlite-vec"}, "Vector store backends to seed")
	seedCmd.Flags().StringVar(&dataDir, "data-dir", benchmark.DefaultDataDir, "Root directory holding the per-backend store files")
	seedCmd.Flags().StringVar(&collection, "collection", benchmark.DefaultCollection, "Collection to create")
	seedCmd.Flags().IntVar(&dimensions, "dimensions", benchmark.DefaultDimensions, "Embedding dimensionality")
	seedCmd.Flags().IntVar(&seedCount, "count", benchmark.DefaultInsertCount, "Number of records to insert")
	seedCmd.Flags().IntVar(&seedBatchSize, "batch-size", benchmark.DefaultBatchSize, "Records per insert batch")
	seedCmd.Flags().Int64Var(&seed, "seed", benchmark.DefaultSeed, "Seed for deterministic vector generation")
	seedCmd.Flags().StringVar(&logFormat, "log-format", "console", "Log format: 'json' or 'console'")
}

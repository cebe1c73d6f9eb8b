package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mattstanbrell/vecbench/benchmark"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the vector search benchmark against one backend",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := benchmark.Config{
			Database:    database,
			DataDir:     dataDir,
			Collection:  collection,
			Dimensions:  dimensions,
			Iterations:  iterations,
			TopK:        topK,
			SettleTime:  settleTime,
			MetricsFile: metricsFile,
			Seed:        seed,
			LogFormat:   logFormat,
		}
		if err := benchmark.NewRunner(cfg).RunSearch(cmd.Context()); err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&database, "database", "chroma", "Vector store backend: 'chroma', 'vecgo', or 'sqlite-vec'")
	addBenchmarkFlags(searchCmd)
}

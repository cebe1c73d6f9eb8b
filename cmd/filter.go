package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mattstanbrell/vecbench/benchmark"
)

var (
	filterType       string
	filterAmountOver int
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Run the metadata filter benchmark against one backend",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := benchmark.Config{
			Database:         database,
			DataDir:          dataDir,
			Collection:       collection,
			Dimensions:       dimensions,
			Iterations:       iterations,
			TopK:             topK,
			SettleTime:       settleTime,
			MetricsFile:      metricsFile,
			Seed:             seed,
			LogFormat:        logFormat,
			FilterType:       filterType,
			FilterAmountOver: filterAmountOver,
		}
		if err := benchmark.NewRunner(cfg).RunFilter(cmd.Context()); err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVar(&database, "database", "chroma", "Vector store backend: 'chroma', 'vecgo', or 'sqlite-vec'")
	addBenchmarkFlags(filterCmd)

	filterCmd.Flags().StringVar(&filterType, "filter-type", benchmark.DefaultFilterType, "Equality filter on the record type field (empty disables)")
	filterCmd.Flags().IntVar(&filterAmountOver, "amount-over", benchmark.DefaultFilterAmount, "Greater-than filter on the record amount field (negative disables)")
}

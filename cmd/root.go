package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattstanbrell/vecbench/benchmark"
)

// Flags shared by the timed benchmark commands
var (
	database    string
	dataDir     string
	collection  string
	dimensions  int
	iterations  int
	topK        int
	settleTime  time.Duration
	metricsFile string
	seed        int64
	logFormat   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vecbench",
	Short: "Benchmark embedded vector databases",
	Long: `vecbench measures query latency and memory footprint of embedded vector
database engines (Chroma, VecGo, SQLite-Vec) against a shared deterministic
dataset. Seed the stores once, then run the search or filter benchmarks and
compare the recorded results.`,
}

// Execute runs the root command. Errors are already printed by cobra.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addBenchmarkFlags registers the flags every timed benchmark accepts. The
// --database flag is registered per command so each can pick its own default.
func addBenchmarkFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dataDir, "data-dir", benchmark.DefaultDataDir, "Root directory holding the per-backend store files")
	cmd.Flags().StringVar(&collection, "collection", benchmark.DefaultCollection, "Collection to benchmark against")
	cmd.Flags().IntVar(&dimensions, "dimensions", benchmark.DefaultDimensions, "Embedding dimensionality")
	cmd.Flags().IntVar(&iterations, "iterations", benchmark.DefaultIterations, "Number of timed query iterations")
	cmd.Flags().IntVar(&topK, "top-k", benchmark.DefaultTopK, "Number of neighbors requested per query")
	cmd.Flags().DurationVar(&settleTime, "settle-time", benchmark.DefaultSettleTime, "Pause between the query loop and the final memory sample")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", benchmark.DefaultMetricsFile, "JSON file benchmark records are appended to")
	cmd.Flags().Int64Var(&seed, "seed", benchmark.DefaultSeed, "Seed for deterministic vector generation")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "Log format: 'json' or 'console'")
}

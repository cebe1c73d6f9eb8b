package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mattstanbrell/vecbench/benchmark"
)

// allCmd represents the all command. Each benchmark runs in its own child
// process so one backend's memory footprint never contaminates the next
// measurement.
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every benchmark against every backend and print the results table",
	Run: func(cmd *cobra.Command, args []string) {
		runID := uuid.NewString()
		log.Info().Str("run_id", runID).Msg("Starting benchmark suite")

		self, err := os.Executable()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to resolve executable path")
		}

		failures := 0
		for _, storeType := range benchmark.StoreTypes() {
			for _, bench := range []string{"search", "filter"} {
				name := fmt.Sprintf("%s %s", storeType, bench)
				cmd.Printf("Starting benchmark: %s\n", name)

				childArgs := []string{
					bench,
					"--database", string(storeType),
					"--data-dir", dataDir,
					"--collection", collection,
					"--dimensions", strconv.Itoa(dimensions),
					"--iterations", strconv.Itoa(iterations),
					"--top-k", strconv.Itoa(topK),
					"--settle-time", settleTime.String(),
					"--metrics-file", metricsFile,
					"--seed", strconv.FormatInt(seed, 10),
					"--log-format", logFormat,
				}

				var stdout, stderr bytes.Buffer
				child := exec.CommandContext(cmd.Context(), self, childArgs...)
				child.Stdout = &stdout
				child.Stderr = &stderr

				if err := child.Run(); err != nil {
					failures++
					cmd.Printf("Error running %s:\n%s\n", name, stderr.String())
				} else {
					cmd.Printf("Completed: %s\n%s\n", name, stdout.String())
				}

				// let the OS settle between child processes
				time.Sleep(time.Second)
			}
		}

		records, err := benchmark.ReadMetrics(metricsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read metrics")
		}

		cmd.Printf("\nBenchmark Results:\n")
		if err := benchmark.FormatReport(cmd.OutOrStdout(), records); err != nil {
			log.Fatal().Err(err).Msg("Failed to format results")
		}

		if failures > 0 {
			log.Fatal().Int("failed", failures).Str("run_id", runID).Msg("Benchmark suite finished with failures")
		}
		log.Info().Str("run_id", runID).Msg("Benchmark suite complete")
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
	addBenchmarkFlags(allCmd)
}

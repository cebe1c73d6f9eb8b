package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mattstanbrell/vecbench/benchmark"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the results table from a metrics file",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := benchmark.ReadMetrics(metricsFile)
		if err != nil {
			log.Fatalf("Report failed: %v", err)
		}

		cmd.Printf("Benchmark Results:\n")
		if err := benchmark.FormatReport(cmd.OutOrStdout(), records); err != nil {
			log.Fatalf("Report failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&metricsFile, "metrics-file", benchmark.DefaultMetricsFile, "JSON file holding benchmark records")
}

package benchmark

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// FormatReport writes an aligned results table. Query times are shown in
// milliseconds; memory columns are the final-minus-initial deltas.
func FormatReport(w io.Writer, records []QueryMetrics) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "Database\tBenchmark\tQuery Time (ms)\tRSS Δ (MB)\tVMS Δ (MB)\tShared Δ (MB)\tPrivate Δ (MB)")
	for _, m := range records {
		delta := m.MemoryDelta()
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			m.DatabaseTitle,
			m.BenchmarkType,
			m.QueryTime*1000,
			delta.RSSMB,
			delta.VMSMB,
			delta.SharedMB,
			delta.PrivateMB,
		)
	}

	return tw.Flush()
}

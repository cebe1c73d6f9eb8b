package benchmark

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReport(t *testing.T) {
	records := []QueryMetrics{
		{
			InitialMemory: MemoryUsage{RSSMB: 10, VMSMB: 100, SharedMB: 0.25},
			FinalMemory:   MemoryUsage{RSSMB: 12.5, VMSMB: 101, SharedMB: 0.5},
			QueryTime:     0.001,
			DatabaseTitle: "Chroma",
			BenchmarkType: BenchmarkTypeSearch,
		},
		{
			InitialMemory: MemoryUsage{RSSMB: 20, VMSMB: 200},
			FinalMemory:   MemoryUsage{RSSMB: 21, VMSMB: 200},
			QueryTime:     0.0025,
			DatabaseTitle: "SQLite-Vec",
			BenchmarkType: BenchmarkTypeFilter,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatReport(&buf, records))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	for _, col := range []string{"Database", "Benchmark", "Query Time (ms)", "RSS Δ (MB)", "VMS Δ (MB)", "Shared Δ (MB)", "Private Δ (MB)"} {
		assert.Contains(t, lines[0], col)
	}

	// query time in ms, memory columns as deltas
	assert.Contains(t, lines[1], "Chroma")
	assert.Contains(t, lines[1], "Vector Search")
	assert.Contains(t, lines[1], "1.00")
	assert.Contains(t, lines[1], "2.50")

	assert.Contains(t, lines[2], "SQLite-Vec")
	assert.Contains(t, lines[2], "Metadata Filter")
	assert.Contains(t, lines[2], "2.50")
	assert.Contains(t, lines[2], "0.00")
}

func TestFormatReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatReport(&buf, nil))
	assert.Contains(t, buf.String(), "Database")
}

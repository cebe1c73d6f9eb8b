package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
)

// Benchmark type labels stored in metrics records
const (
	BenchmarkTypeSearch = "Vector Search"
	BenchmarkTypeFilter = "Metadata Filter"
)

// QueryMetrics is one benchmark result as persisted to the metrics file.
// QueryTime is the mean per-query latency in seconds.
type QueryMetrics struct {
	InitialMemory MemoryUsage `json:"initial_memory"`
	FinalMemory   MemoryUsage `json:"final_memory"`
	QueryTime     float64     `json:"query_time"`
	DatabaseTitle string      `json:"database_title"`
	BenchmarkType string      `json:"benchmark_type"`
}

// MemoryDelta returns final minus initial usage per field.
func (m QueryMetrics) MemoryDelta() MemoryUsage {
	return MemoryUsage{
		RSSMB:     m.FinalMemory.RSSMB - m.InitialMemory.RSSMB,
		VMSMB:     m.FinalMemory.VMSMB - m.InitialMemory.VMSMB,
		SharedMB:  m.FinalMemory.SharedMB - m.InitialMemory.SharedMB,
		PrivateMB: m.FinalMemory.PrivateMB - m.InitialMemory.PrivateMB,
	}
}

// AppendMetrics appends one record to the JSON array at path, creating the
// file if needed. Existing content that is unreadable or not an array is
// tolerated: a single object is wrapped, anything else starts a fresh array,
// so one corrupt run never blocks later ones.
func AppendMetrics(path string, m QueryMetrics) error {
	records := loadExistingMetrics(path)
	records = append(records, m)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

func loadExistingMetrics(path string) []QueryMetrics {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var records []QueryMetrics
	if err := json.Unmarshal(data, &records); err == nil {
		return records
	}

	var single QueryMetrics
	if err := json.Unmarshal(data, &single); err == nil {
		return []QueryMetrics{single}
	}

	return nil
}

// ReadMetrics loads all records from the metrics file. Unlike appends,
// reporting fails loudly on a missing or malformed file.
func ReadMetrics(path string) ([]QueryMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics file: %w", err)
	}

	var records []QueryMetrics
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse metrics file %s: %w", path, err)
	}
	return records, nil
}

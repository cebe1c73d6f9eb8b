package benchmark

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Runner executes one timed benchmark against a single vector store.
type Runner struct {
	cfg Config

	// swapped out by tests
	rng     *rand.Rand
	out     io.Writer
	sleep   func(time.Duration)
	sampler MemorySampler
	record  func(QueryMetrics) error
	open    func(StoreConfig) (VectorStore, error)
}

// NewRunner creates a runner wired to the real store backends, process
// memory sampling and the metrics file named in cfg.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		out:     os.Stdout,
		sleep:   time.Sleep,
		sampler: NewProcessSampler(),
		record: func(m QueryMetrics) error {
			return AppendMetrics(cfg.MetricsFile, m)
		},
		open: NewVectorStore,
	}
}

// RunSearch measures plain nearest-neighbor query latency. Memory is sampled
// before the store is opened and again after the settle pause, so the final
// figures include whatever the store keeps resident.
func (r *Runner) RunSearch(ctx context.Context) error {
	setupLog(r.cfg.LogFormat)
	initialLog(r.cfg, BenchmarkTypeSearch)

	r.sampler.Warmup()
	initial, err := r.sampler.Stable()
	if err != nil {
		return fmt.Errorf("failed to measure initial memory: %w", err)
	}

	store, err := r.open(r.cfg.storeConfig())
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer store.Close()

	query := RandomVector(r.rng, r.cfg.Dimensions)

	samples := make([]float64, 0, r.cfg.Iterations)
	for i := 0; i < r.cfg.Iterations; i++ {
		start := time.Now()
		if _, err := store.Query(ctx, query, r.cfg.TopK); err != nil {
			return fmt.Errorf("query %d failed: %w", i, err)
		}
		elapsed := time.Since(start).Seconds()
		fmt.Fprintf(r.out, "Query time: %.2fms\n", elapsed*1000)
		samples = append(samples, elapsed)
	}

	return r.finish(store.Name(), BenchmarkTypeSearch, samples, initial)
}

// RunFilter measures filtered query latency. Every configured filter runs
// the full iteration count and all samples pool into a single record.
func (r *Runner) RunFilter(ctx context.Context) error {
	setupLog(r.cfg.LogFormat)
	initialLog(r.cfg, BenchmarkTypeFilter)

	r.sampler.Warmup()
	initial, err := r.sampler.Stable()
	if err != nil {
		return fmt.Errorf("failed to measure initial memory: %w", err)
	}

	store, err := r.open(r.cfg.storeConfig())
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer store.Close()

	filters := r.supportedFilters(store)
	if len(filters) == 0 {
		return fmt.Errorf("%w: no usable filters for %s", ErrFilterNotSupported, store.Name())
	}

	query := RandomVector(r.rng, r.cfg.Dimensions)

	samples := make([]float64, 0, len(filters)*r.cfg.Iterations)
	for _, filter := range filters {
		fmt.Fprintf(r.out, "Running benchmark with filter: %s\n", filter)
		for i := 0; i < r.cfg.Iterations; i++ {
			start := time.Now()
			if _, err := store.FilteredQuery(ctx, query, r.cfg.TopK, []Filter{filter}); err != nil {
				return fmt.Errorf("filtered query %d failed: %w", i, err)
			}
			elapsed := time.Since(start).Seconds()
			fmt.Fprintf(r.out, "Query time: %.2fms\n", elapsed*1000)
			samples = append(samples, elapsed)
		}
	}

	return r.finish(store.Name(), BenchmarkTypeFilter, samples, initial)
}

// finish runs the settle pause, takes the final memory sample and records
// the result. Called only after all timing samples succeeded.
func (r *Runner) finish(title, benchmarkType string, samples []float64, initial MemoryUsage) error {
	r.sleep(r.cfg.SettleTime)

	final, err := r.sampler.Stable()
	if err != nil {
		return fmt.Errorf("failed to measure final memory: %w", err)
	}

	m := QueryMetrics{
		InitialMemory: initial,
		FinalMemory:   final,
		QueryTime:     mean(samples),
		DatabaseTitle: title,
		BenchmarkType: benchmarkType,
	}
	if err := r.record(m); err != nil {
		return fmt.Errorf("failed to record metrics: %w", err)
	}

	log.Info().
		Str("database", title).
		Str("benchmark", benchmarkType).
		Float64("avg_query_ms", m.QueryTime*1000).
		Float64("rss_delta_mb", m.MemoryDelta().RSSMB).
		Msg("Benchmark complete")
	return nil
}

// supportedFilters builds the filter list from config, dropping operators
// the store cannot evaluate with a warning instead of failing the run.
func (r *Runner) supportedFilters(store VectorStore) []Filter {
	var filters []Filter
	if r.cfg.FilterType != "" {
		filters = append(filters, Filter{Field: "type", Operator: FilterOpEqual, Value: r.cfg.FilterType})
	}
	if r.cfg.FilterAmountOver >= 0 {
		filters = append(filters, Filter{Field: "amount", Operator: FilterOpGreaterThan, Value: r.cfg.FilterAmountOver})
	}

	supported := filters[:0]
	for _, f := range filters {
		if !store.SupportsOperator(f.Operator) {
			log.Warn().
				Str("database", store.Name()).
				Str("filter", f.String()).
				Msg("Filter operator not supported, skipping")
			continue
		}
		supported = append(supported, f)
	}
	return supported
}

func initialLog(cfg Config, benchmarkType string) {
	log.Info().
		Str("database", cfg.Database).
		Str("benchmark", benchmarkType).
		Str("collection", cfg.Collection).
		Int("dimensions", cfg.Dimensions).
		Int("iterations", cfg.Iterations).
		Int("top_k", cfg.TopK).
		Int64("seed", cfg.Seed).
		Str("data_dir", cfg.DataDir).
		Msg("Starting benchmark")
}

func setupLog(format string) {
	// stdout is reserved for query timing output
	if strings.ToLower(format) == "json" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

// mean returns the arithmetic average of samples in their own unit
func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

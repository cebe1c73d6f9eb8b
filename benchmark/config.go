package benchmark

import (
	"path/filepath"
	"time"
)

// Defaults reproduce the reference benchmark configuration: running any
// command with no flags measures exactly the same workload.
const (
	DefaultCollection  = "test_collection"
	DefaultDimensions  = 512
	DefaultInsertCount = 10000
	DefaultIterations  = 10
	DefaultTopK        = 10
	DefaultSettleTime  = 3 * time.Second
	DefaultDataDir     = "./db-files"
	DefaultMetricsFile = "metrics.json"
	DefaultBatchSize   = 5000
	DefaultSeed        = int64(42)

	// Filter benchmark defaults: equality on the record type plus a
	// greater-than threshold on the record amount.
	DefaultFilterType   = "even"
	DefaultFilterAmount = 100
)

// Config defines the benchmark parameters passed from CLI
type Config struct {
	Database    string        // vector store backend: "chroma", "vecgo", or "sqlite-vec"
	DataDir     string        // root directory holding the per-backend stores
	Collection  string        // collection to benchmark against
	Dimensions  int           // embedding dimensionality
	Iterations  int           // number of timed query iterations
	TopK        int           // neighbors requested per query
	SettleTime  time.Duration // pause between the query loop and the final memory sample
	MetricsFile string        // JSON file the metrics record is appended to
	Seed        int64         // RNG seed for deterministic query vector generation
	LogFormat   string        // "json" or "console", default is "console"

	// Filter benchmark configuration
	FilterType       string // equality filter on the "type" field, empty disables
	FilterAmountOver int    // greater-than filter on the "amount" field, negative disables
}

// storeConfig maps the benchmark configuration onto the store layer. Create
// is always false here: benchmarks require a previously seeded collection.
func (cfg Config) storeConfig() StoreConfig {
	storeType := StoreType(cfg.Database)
	return StoreConfig{
		Type:       storeType,
		Path:       StorePath(cfg.DataDir, storeType),
		Collection: cfg.Collection,
		Dimensions: cfg.Dimensions,
	}
}

// StorePath returns the on-disk directory for a backend under dataDir.
func StorePath(dataDir string, storeType StoreType) string {
	switch storeType {
	case StoreTypeChroma:
		return filepath.Join(dataDir, "chroma-db")
	case StoreTypeVecgo:
		return filepath.Join(dataDir, "vecgo")
	case StoreTypeSQLiteVec:
		return filepath.Join(dataDir, "sqlite")
	default:
		return filepath.Join(dataDir, string(storeType))
	}
}

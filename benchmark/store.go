package benchmark

import (
	"context"
	"errors"
	"fmt"
)

// VectorStore defines the interface that all vector database backends must
// implement. This allows vecbench to measure different engines while keeping
// benchmark semantics identical across them.
type VectorStore interface {
	// Name returns the display label used in metrics records
	Name() string

	// Insert stores a batch of records in the collection
	Insert(ctx context.Context, records []Record) error

	// Query returns the k nearest neighbors for the given vector
	Query(ctx context.Context, vector []float32, k int) ([]Result, error)

	// FilteredQuery returns the k nearest neighbors among records matching
	// all filters. Returns ErrFilterNotSupported if the backend cannot
	// evaluate one of the filter operators.
	FilteredQuery(ctx context.Context, vector []float32, k int, filters []Filter) ([]Result, error)

	// SupportsOperator reports whether the backend can evaluate the
	// given filter operator natively
	SupportsOperator(op FilterOperator) bool

	// Close releases the collection handle and persists pending state
	// where the backend requires an explicit snapshot
	Close() error
}

// Result is a single search hit. Score is the backend-native ranking value
// (a distance for vecgo and sqlite-vec, a similarity for chroma); it is only
// meaningful relative to other hits from the same backend.
type Result struct {
	ID    string
	Score float32
}

// Vector store backend types
type StoreType string

const (
	StoreTypeChroma    StoreType = "chroma"
	StoreTypeVecgo     StoreType = "vecgo"
	StoreTypeSQLiteVec StoreType = "sqlite-vec"
)

// StoreTypes lists every supported backend, in the order the run-all
// orchestrator sweeps them.
func StoreTypes() []StoreType {
	return []StoreType{StoreTypeChroma, StoreTypeVecgo, StoreTypeSQLiteVec}
}

// FilterOperator identifies a metadata comparison.
type FilterOperator string

const (
	FilterOpEqual       FilterOperator = "eq"
	FilterOpGreaterThan FilterOperator = "gt"
)

// Filter is one metadata predicate; a query's filters combine with AND.
type Filter struct {
	Field    string
	Operator FilterOperator
	Value    any
}

func (f Filter) String() string {
	switch f.Operator {
	case FilterOpGreaterThan:
		return fmt.Sprintf("%s > %v", f.Field, f.Value)
	default:
		return fmt.Sprintf("%s = %v", f.Field, f.Value)
	}
}

// StoreConfig holds configuration for store creation
type StoreConfig struct {
	Type       StoreType
	Path       string // backend directory under the data dir
	Collection string
	Dimensions int

	// Create recreates the collection from scratch (seeding). When false
	// the collection must already exist on disk.
	Create bool
}

// Common store errors
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrStoreClosed        = errors.New("vector store is closed")
	ErrBackendNotFound    = errors.New("vector store backend not found")
	ErrFilterNotSupported = errors.New("filter operator not supported")
)

// NewVectorStore creates a new vector store instance based on the configuration
func NewVectorStore(cfg StoreConfig) (VectorStore, error) {
	switch cfg.Type {
	case StoreTypeChroma:
		return NewChromemStore(cfg)
	case StoreTypeVecgo:
		return NewVecgoStore(cfg)
	case StoreTypeSQLiteVec:
		return NewSQLiteVecStore(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBackendNotFound, cfg.Type)
	}
}

// Helper function to check whether an error means the benchmark collection
// is missing, abstracting away backend-specific error types
func IsCollectionNotFound(err error) bool {
	return errors.Is(err, ErrCollectionNotFound)
}

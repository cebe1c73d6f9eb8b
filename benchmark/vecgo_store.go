package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/vecgo"
	"github.com/hupe1980/vecgo/metadata"
)

// VecgoStore implements VectorStore using the vecgo embedded HNSW index.
// Each collection is one snapshot file; benchmark runs load it mmap-backed,
// seeding builds a fresh index and persists it on Close.
type VecgoStore struct {
	db    *vecgo.Vecgo[string]
	file  string
	dirty bool
}

// NewVecgoStore opens the snapshot for cfg.Collection under cfg.Path, or
// builds an empty index when cfg.Create is set.
func NewVecgoStore(cfg StoreConfig) (*VecgoStore, error) {
	file := filepath.Join(cfg.Path, cfg.Collection+".vecgo")

	if cfg.Create {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create vecgo directory: %w", err)
		}
		db, err := vecgo.HNSW[string](cfg.Dimensions).
			SquaredL2().
			M(32).
			Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build vecgo index: %w", err)
		}
		return &VecgoStore{db: db, file: file}, nil
	}

	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, cfg.Collection)
	}

	db, err := vecgo.NewFromFile[string](file)
	if err != nil {
		return nil, fmt.Errorf("failed to load vecgo snapshot: %w", err)
	}
	return &VecgoStore{db: db, file: file}, nil
}

func (v *VecgoStore) Name() string {
	return "VecGo"
}

func (v *VecgoStore) Insert(ctx context.Context, records []Record) error {
	if v.db == nil {
		return ErrStoreClosed
	}

	items := make([]vecgo.VectorWithData[string], len(records))
	for i, r := range records {
		items[i] = vecgo.VectorWithData[string]{
			Vector: r.Vector,
			Data:   r.ID,
			Metadata: metadata.Metadata{
				"type":   metadata.String(r.Type),
				"amount": metadata.Int(int64(r.Amount)),
			},
		}
	}

	result := v.db.BatchInsert(ctx, items)
	for _, err := range result.Errors {
		if err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}
	}

	v.dirty = true
	return nil
}

func (v *VecgoStore) Query(ctx context.Context, vector []float32, k int) ([]Result, error) {
	if v.db == nil {
		return nil, ErrStoreClosed
	}

	hits, err := v.db.KNNSearch(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return vecgoResults(hits), nil
}

func (v *VecgoStore) FilteredQuery(ctx context.Context, vector []float32, k int, filters []Filter) ([]Result, error) {
	if v.db == nil {
		return nil, ErrStoreClosed
	}

	filterSet, err := vecgoFilters(filters)
	if err != nil {
		return nil, err
	}

	hits, err := v.db.HybridSearch(ctx, vector, k, func(o *vecgo.HybridSearchOptions) {
		if k > o.EF {
			o.EF = k
		}
		o.MetadataFilters = filterSet
	})
	if err != nil {
		return nil, fmt.Errorf("filtered query failed: %w", err)
	}
	return vecgoResults(hits), nil
}

func (v *VecgoStore) SupportsOperator(op FilterOperator) bool {
	switch op {
	case FilterOpEqual, FilterOpGreaterThan:
		return true
	default:
		return false
	}
}

// Close persists the index when it has unsaved writes, then releases the
// underlying mmap.
func (v *VecgoStore) Close() error {
	if v.db == nil {
		return nil
	}

	if v.dirty {
		if err := v.db.SaveToFile(v.file); err != nil {
			return fmt.Errorf("failed to save vecgo snapshot: %w", err)
		}
		v.dirty = false
	}

	err := v.db.Close()
	v.db = nil
	return err
}

func vecgoResults(hits []vecgo.SearchResult[string]) []Result {
	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			ID:    h.Data,
			Score: h.Distance,
		}
	}
	return results
}

func vecgoFilters(filters []Filter) (*metadata.FilterSet, error) {
	mapped := make([]metadata.Filter, len(filters))
	for i, f := range filters {
		var op metadata.Operator
		switch f.Operator {
		case FilterOpEqual:
			op = metadata.OpEqual
		case FilterOpGreaterThan:
			op = metadata.OpGreaterThan
		default:
			return nil, fmt.Errorf("%w: %q", ErrFilterNotSupported, f.Operator)
		}

		value, err := metadata.FromAny(f.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid filter value for %s: %w", f.Field, err)
		}

		mapped[i] = metadata.Filter{Key: f.Field, Operator: op, Value: value}
	}
	return metadata.NewFilterSet(mapped...), nil
}

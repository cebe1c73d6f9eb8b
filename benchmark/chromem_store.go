package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

// ChromemStore implements VectorStore using the chromem-go embedded vector
// database. Embeddings are supplied directly, so no embedding function is
// ever invoked.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewChromemStore opens the persistent database at cfg.Path. Without
// cfg.Create the collection must already exist on disk.
func NewChromemStore(cfg StoreConfig) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open chroma database: %w", err)
	}

	var collection *chromem.Collection
	if cfg.Create {
		collection, err = db.CreateCollection(cfg.Collection, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create collection %q: %w", cfg.Collection, err)
		}
	} else {
		collection = db.GetCollection(cfg.Collection, nil)
		if collection == nil {
			return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, cfg.Collection)
		}
	}

	return &ChromemStore{
		db:         db,
		collection: collection,
	}, nil
}

func (c *ChromemStore) Name() string {
	return "Chroma"
}

func (c *ChromemStore) Insert(ctx context.Context, records []Record) error {
	if c.collection == nil {
		return ErrStoreClosed
	}

	docs := make([]chromem.Document, len(records))
	for i, r := range records {
		docs[i] = chromem.Document{
			ID:        r.ID,
			Content:   r.Content,
			Embedding: r.Vector,
			Metadata: map[string]string{
				"type":   r.Type,
				"amount": strconv.Itoa(r.Amount),
			},
		}
	}

	if err := c.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

func (c *ChromemStore) Query(ctx context.Context, vector []float32, k int) ([]Result, error) {
	if c.collection == nil {
		return nil, ErrStoreClosed
	}

	hits, err := c.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return chromemResults(hits), nil
}

func (c *ChromemStore) FilteredQuery(ctx context.Context, vector []float32, k int, filters []Filter) ([]Result, error) {
	if c.collection == nil {
		return nil, ErrStoreClosed
	}

	// chromem metadata filters are exact string matches
	where := make(map[string]string, len(filters))
	for _, f := range filters {
		if !c.SupportsOperator(f.Operator) {
			return nil, fmt.Errorf("%w: %q", ErrFilterNotSupported, f.Operator)
		}
		where[f.Field] = fmt.Sprint(f.Value)
	}

	hits, err := c.collection.QueryEmbedding(ctx, vector, k, where, nil)
	if err != nil {
		return nil, fmt.Errorf("filtered query failed: %w", err)
	}
	return chromemResults(hits), nil
}

func (c *ChromemStore) SupportsOperator(op FilterOperator) bool {
	return op == FilterOpEqual
}

func (c *ChromemStore) Close() error {
	// chromem persists on write and holds no descriptors between calls;
	// dropping the handles is enough
	c.collection = nil
	c.db = nil
	return nil
}

func chromemResults(hits []chromem.Result) []Result {
	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			ID:    h.ID,
			Score: h.Similarity,
		}
	}
	return results
}

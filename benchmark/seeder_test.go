package benchmark

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLoadsAllStores(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	cfg := SeedConfig{
		Stores:     StoreTypes(),
		DataDir:    dataDir,
		Collection: "test_collection",
		Dimensions: 4,
		Count:      12,
		BatchSize:  5,
		Seed:       42,
	}
	require.NoError(t, Seed(ctx, cfg))

	records := collectRecords(t, GenerateRecords(42, 12, 4))

	// every backend holds the same dataset
	for _, storeType := range StoreTypes() {
		store, err := NewVectorStore(StoreConfig{
			Type:       storeType,
			Path:       StorePath(dataDir, storeType),
			Collection: "test_collection",
			Dimensions: 4,
		})
		require.NoError(t, err, "open %s", storeType)

		results, err := store.Query(ctx, records[5].Vector, 1)
		require.NoError(t, err, "query %s", storeType)
		require.Len(t, results, 1)
		assert.Equal(t, records[5].ID, results[0].ID, "nearest in %s", storeType)

		require.NoError(t, store.Close())
	}
}

func TestSeedWipesPreviousData(t *testing.T) {
	dataDir := t.TempDir()

	stale := filepath.Join(StorePath(dataDir, StoreTypeSQLiteVec), "stale.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	cfg := SeedConfig{
		Stores:     []StoreType{StoreTypeSQLiteVec},
		DataDir:    dataDir,
		Collection: "test_collection",
		Dimensions: 4,
		Count:      4,
		BatchSize:  2,
		Seed:       1,
	}
	require.NoError(t, Seed(context.Background(), cfg))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestSeedNoStores(t *testing.T) {
	require.Error(t, Seed(context.Background(), SeedConfig{}))
}

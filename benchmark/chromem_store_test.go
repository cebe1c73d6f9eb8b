package benchmark

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromemStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	records := collectRecords(t, GenerateRecords(2, 20, 4))

	store, err := NewChromemStore(StoreConfig{
		Type:       StoreTypeChroma,
		Path:       dir,
		Collection: "test_collection",
		Dimensions: 4,
		Create:     true,
	})
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, records))

	t.Run("QueryReturnsNearest", func(t *testing.T) {
		results, err := store.Query(ctx, records[7].Vector, 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, records[7].ID, results[0].ID)
	})

	t.Run("EqualityFilter", func(t *testing.T) {
		filters := []Filter{{Field: "type", Operator: FilterOpEqual, Value: "even"}}
		results, err := store.FilteredQuery(ctx, records[8].Vector, 5, filters)
		require.NoError(t, err)
		require.Len(t, results, 5)
		assert.Equal(t, records[8].ID, results[0].ID)
		for _, r := range results {
			n, err := strconv.Atoi(r.ID)
			require.NoError(t, err)
			assert.Zero(t, n%2)
		}
	})

	t.Run("GreaterThanFilterUnsupported", func(t *testing.T) {
		assert.False(t, store.SupportsOperator(FilterOpGreaterThan))

		filters := []Filter{{Field: "amount", Operator: FilterOpGreaterThan, Value: 10}}
		_, err := store.FilteredQuery(ctx, records[0].Vector, 5, filters)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFilterNotSupported)
	})

	require.NoError(t, store.Close())

	t.Run("ReopenWithoutCreate", func(t *testing.T) {
		reopened, err := NewChromemStore(StoreConfig{
			Type:       StoreTypeChroma,
			Path:       dir,
			Collection: "test_collection",
			Dimensions: 4,
		})
		require.NoError(t, err)
		defer reopened.Close()

		results, err := reopened.Query(ctx, records[3].Vector, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, records[3].ID, results[0].ID)
	})

	t.Run("QueryAfterClose", func(t *testing.T) {
		_, err := store.Query(ctx, records[0].Vector, 1)
		assert.ErrorIs(t, err, ErrStoreClosed)
	})
}

func TestChromemStoreMissingCollection(t *testing.T) {
	_, err := NewChromemStore(StoreConfig{
		Type:       StoreTypeChroma,
		Path:       t.TempDir(),
		Collection: "test_collection",
		Dimensions: 4,
	})
	require.Error(t, err)
	assert.True(t, IsCollectionNotFound(err))
}

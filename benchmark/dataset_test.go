package benchmark

import (
	"fmt"
	"iter"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectRecords(t *testing.T, seq iter.Seq[Record]) []Record {
	t.Helper()
	var records []Record
	for r := range seq {
		records = append(records, r)
	}
	return records
}

func TestRandomVector(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	v := RandomVector(rng, 512)

	require.Len(t, v, 512)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, float32(0))
		assert.Less(t, x, float32(1))
	}

	// same seed, same vector
	again := RandomVector(rand.New(rand.NewSource(7)), 512)
	assert.Equal(t, v, again)
}

func TestGenerateRecords(t *testing.T) {
	var records []Record
	for r := range GenerateRecords(42, 10, 8) {
		records = append(records, r)
	}
	require.Len(t, records, 10)

	for i, r := range records {
		assert.Equal(t, fmt.Sprintf("%d", i), r.ID)
		assert.Equal(t, fmt.Sprintf("item-%d", i), r.Content)
		assert.Equal(t, i, r.Amount)
		require.Len(t, r.Vector, 8)

		if i%2 == 0 {
			assert.Equal(t, "even", r.Type)
		} else {
			assert.Equal(t, "odd", r.Type)
		}
	}
}

func TestGenerateRecordsDeterministic(t *testing.T) {
	first := collectRecords(t, GenerateRecords(42, 5, 16))
	second := collectRecords(t, GenerateRecords(42, 5, 16))
	assert.Equal(t, first, second)

	other := collectRecords(t, GenerateRecords(43, 5, 16))
	assert.NotEqual(t, first[0].Vector, other[0].Vector)
}

func TestGenerateRecordsEarlyStop(t *testing.T) {
	count := 0
	for range GenerateRecords(42, 1000, 4) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

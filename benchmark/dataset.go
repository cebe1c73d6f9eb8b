package benchmark

import (
	"fmt"
	"iter"
	"math/rand"
)

// Record is one row of the benchmark dataset. Type and Amount are the
// metadata fields exercised by the filtered-search benchmark.
type Record struct {
	ID      string
	Vector  []float32
	Content string
	Type    string // "even" or "odd", by record index parity
	Amount  int    // record index, so amount filters select a known slice
}

// RandomVector returns a vector with components drawn uniformly from [0, 1).
func RandomVector(rng *rand.Rand, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = rng.Float32()
	}
	return v
}

// GenerateRecords returns a sequence of count records with dim-sized random
// vectors. The same seed always produces the same dataset, so every backend
// is seeded with identical data.
func GenerateRecords(seed int64, count, dim int) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < count; i++ {
			recordType := "odd"
			if i%2 == 0 {
				recordType = "even"
			}
			record := Record{
				ID:      fmt.Sprintf("%d", i),
				Vector:  RandomVector(rng, dim),
				Content: fmt.Sprintf("item-%d", i),
				Type:    recordType,
				Amount:  i,
			}
			if !yield(record) {
				return
			}
		}
	}
}

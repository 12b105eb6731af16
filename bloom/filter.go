// Package bloom provides archive entry deduplication using Bloom filters.
package bloom

import (
	"strconv"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/statblock"
)

// Filter wraps a Bloom filter keyed by archive entry.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected entries
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds an entry to the filter.
func (f *Filter) Add(kind statblock.Kind, id int) {
	f.f.AddString(key(kind, id))
}

// Test returns true if the entry might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(kind statblock.Kind, id int) bool {
	return f.f.TestString(key(kind, id))
}

// TestAndAdd reports whether the entry might already be in the filter and
// adds it in the same step.
func (f *Filter) TestAndAdd(kind statblock.Kind, id int) bool {
	return f.f.TestAndAddString(key(kind, id))
}

// EstimatedCount returns the approximate number of entries in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func key(kind statblock.Kind, id int) string {
	return string(kind) + ":" + strconv.Itoa(id)
}

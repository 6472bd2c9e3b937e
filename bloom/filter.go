// Package bloom provides duplicate detection of training pages using Bloom
// filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by page content hashes.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected pages
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen adds hash to the filter and reports whether it was probably
// present before.
func (f *Filter) Seen(hash string) bool {
	return f.f.TestAndAddString(hash)
}

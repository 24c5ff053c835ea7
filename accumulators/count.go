// Package accumulators provides ready-made policies for hashagg tables
package accumulators

import (
	"github.com/go-sif/hashagg"
)

// Count counts the occurrences of each key. It creates an accumulator of 1, increments
// it on every further occurrence, and merges by addition.
type Count struct{}

// Counter returns a new Count policy
func Counter() hashagg.Policy[uint64] {
	return Count{}
}

// Create initializes the count of a newly seen key
func (Count) Create(key hashagg.Key, v *uint64) {
	*v = 1
}

// Update counts one more occurrence of key
func (Count) Update(key hashagg.Key, v *uint64) {
	*v++
}

// Merge adds the count in src to dst
func (Count) Merge(dst *uint64, src *uint64) {
	*dst += *src
}

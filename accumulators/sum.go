package accumulators

import (
	"github.com/go-sif/hashagg"
)

// Adder returns a new Sum policy, which sums weight(key) over every occurrence of a key
func Adder(weight func(key hashagg.Key) float64) *Sum {
	return &Sum{weight: weight}
}

// Sum accumulates a weight per occurrence of a key. With a constant weight of 1 it behaves
// like Count, but over float64.
//
// Float addition is only associative while every partial sum is exactly representable, e.g.
// for integral weights below 2^53. Other weights make the result depend on merge order, so
// different methods and worker counts may disagree in the last bits.
type Sum struct {
	weight func(key hashagg.Key) float64
}

// Create initializes the sum of a newly seen key with its first weight
func (a *Sum) Create(key hashagg.Key, v *float64) {
	*v = a.weight(key)
}

// Update adds the weight of one more occurrence of key
func (a *Sum) Update(key hashagg.Key, v *float64) {
	*v += a.weight(key)
}

// Merge adds the sum in src to dst
func (a *Sum) Merge(dst *float64, src *float64) {
	*dst += *src
}

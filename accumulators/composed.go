package accumulators

import (
	"github.com/go-sif/hashagg"
)

// Pair holds the accumulators of two composed policies
type Pair[A any, B any] struct {
	First  A
	Second B
}

// Composed runs two policies side by side over a Pair of accumulators
type Composed[A any, B any] struct {
	first  hashagg.Policy[A]
	second hashagg.Policy[B]
}

// Compose returns a new Composed policy
func Compose[A any, B any](first hashagg.Policy[A], second hashagg.Policy[B]) *Composed[A, B] {
	return &Composed[A, B]{first: first, second: second}
}

// Create initializes both accumulators
func (c *Composed[A, B]) Create(key hashagg.Key, v *Pair[A, B]) {
	c.first.Create(key, &v.First)
	c.second.Create(key, &v.Second)
}

// Update updates both accumulators
func (c *Composed[A, B]) Update(key hashagg.Key, v *Pair[A, B]) {
	c.first.Update(key, &v.First)
	c.second.Update(key, &v.Second)
}

// Merge merges both accumulators of src into those of dst
func (c *Composed[A, B]) Merge(dst *Pair[A, B], src *Pair[A, B]) {
	c.first.Merge(&dst.First, &src.First)
	c.second.Merge(&dst.Second, &src.Second)
}

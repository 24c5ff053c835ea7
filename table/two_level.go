package table

import (
	"fmt"
	"log"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
)

// TwoLevel is a sharded accumulator table: an array of 2^bits independent Tables. A Key is
// always routed to the bucket given by the top bits of Hash(key), regardless of which
// goroutine inserts it or in which order.
type TwoLevel[V any] struct {
	bits    uint
	buckets []*Table[V]
}

// ValidateBucketBits returns an error iff bits cannot be used to build a TwoLevel table
func ValidateBucketBits(bits uint) error {
	if bits > MaxBucketBits {
		return errors.ConfigurationError{Reason: fmt.Sprintf("bucket bits %d exceeds the maximum of %d", bits, MaxBucketBits)}
	}
	return nil
}

// NewTwoLevel creates an empty TwoLevel table with 2^bits buckets. Options are applied to every bucket.
func NewTwoLevel[V any](bits uint, opts ...Option) *TwoLevel[V] {
	if err := ValidateBucketBits(bits); err != nil {
		log.Panicf("Unable to create TwoLevel table: %v", err)
	}
	buckets := make([]*Table[V], 1<<bits)
	for i := range buckets {
		buckets[i] = New[V](opts...)
	}
	return &TwoLevel[V]{bits: bits, buckets: buckets}
}

func (tl *TwoLevel[V]) bucketOfHash(hash uint64) int {
	// shifting a uint64 by 64 yields 0, so a single bucket needs no special case
	return int(hash >> (64 - tl.bits))
}

// BucketOf returns the index of the bucket key is routed to
func (tl *TwoLevel[V]) BucketOf(key hashagg.Key) int {
	return tl.bucketOfHash(Hash(key))
}

// Emplace locates the slot for key in its bucket, inserting a zeroed slot if key is absent
func (tl *TwoLevel[V]) Emplace(key hashagg.Key) (*V, bool) {
	hash := Hash(key)
	return tl.buckets[tl.bucketOfHash(hash)].emplaceHash(key, hash)
}

// NumBuckets returns the number of buckets
func (tl *TwoLevel[V]) NumBuckets() int {
	return len(tl.buckets)
}

// Bucket returns the i-th bucket
func (tl *TwoLevel[V]) Bucket(i int) hashagg.Map[V] {
	return tl.buckets[i]
}

// Sizes returns the number of entries in each bucket
func (tl *TwoLevel[V]) Sizes() []int {
	sizes := make([]int, len(tl.buckets))
	for i, b := range tl.buckets {
		sizes[i] = b.Len()
	}
	return sizes
}

// Len returns the number of distinct Keys across all buckets
func (tl *TwoLevel[V]) Len() int {
	total := 0
	for _, b := range tl.buckets {
		total += b.Len()
	}
	return total
}

// ForEach visits every entry, bucket by bucket, until fn returns false
func (tl *TwoLevel[V]) ForEach(fn func(key hashagg.Key, v *V) bool) {
	stopped := false
	for _, b := range tl.buckets {
		b.ForEach(func(key hashagg.Key, v *V) bool {
			stopped = !fn(key, v)
			return !stopped
		})
		if stopped {
			return
		}
	}
}

// Iter returns a cursor over every entry, bucket by bucket
func (tl *TwoLevel[V]) Iter() hashagg.Iterator[V] {
	return &twoLevelIterator[V]{tl: tl, current: tl.buckets[0].Iter()}
}

type twoLevelIterator[V any] struct {
	tl      *TwoLevel[V]
	bucket  int
	current hashagg.Iterator[V]
}

func (it *twoLevelIterator[V]) Next() bool {
	for {
		if it.current.Next() {
			return true
		}
		it.bucket++
		if it.bucket >= len(it.tl.buckets) {
			return false
		}
		it.current = it.tl.buckets[it.bucket].Iter()
	}
}

func (it *twoLevelIterator[V]) Key() hashagg.Key {
	return it.current.Key()
}

func (it *twoLevelIterator[V]) Value() *V {
	return it.current.Value()
}

var _ hashagg.Bucketed[uint64] = (*TwoLevel[uint64])(nil)

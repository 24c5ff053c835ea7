// Package merge combines per-worker accumulator tables into one.
//
// Every strategy designates the first table as the destination and folds all the others into
// it, so the result is the first table, mutated in place; the other tables are consumed and
// must not be used afterwards. A key absent from the destination takes the source accumulator
// as is. A key present in both is combined with a hashagg.Merger, which must be associative
// and commutative since no strategy guarantees a global merge order.
package merge

import (
	"fmt"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
	"github.com/go-sif/hashagg/pool"
)

// Kind selects a merge strategy
type Kind int

const (
	// Sequential folds each source table into the destination, one table after the other
	Sequential Kind = iota
	// Transposed folds one entry of each source table at a time, round-robin
	Transposed
	// BucketParallel merges every bucket of two-level tables as an independent task
	BucketParallel
)

// String returns the name of this Kind
func (k Kind) String() string {
	switch k {
	case Sequential:
		return "sequential"
	case Transposed:
		return "transposed"
	case BucketParallel:
		return "bucket-parallel"
	default:
		return fmt.Sprintf("merge.Kind(%d)", int(k))
	}
}

// Func merges maps into maps[0] and returns it
type Func[V any, M hashagg.Map[V]] func(maps []M, merger hashagg.Merger[V]) (M, error)

// ForKind returns the single-threaded merge strategy for k. BucketParallel is not one of them,
// see MergeBuckets.
func ForKind[V any, M hashagg.Map[V]](k Kind) (Func[V, M], error) {
	switch k {
	case Sequential:
		return MergeSequential[V, M], nil
	case Transposed:
		return MergeTransposed[V, M], nil
	case BucketParallel:
		return nil, errors.ConfigurationError{Reason: "bucket-parallel merge cannot be used as a single-threaded merge"}
	default:
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("%s is an unknown merge strategy", k)}
	}
}

// mergeEntry folds the accumulator src of key into dst
func mergeEntry[V any, M hashagg.Map[V]](dst M, key hashagg.Key, src *V, merger hashagg.Merger[V]) {
	slot, inserted := dst.Emplace(key)
	if inserted {
		*slot = *src
	} else {
		merger.Merge(slot, src)
	}
}

// MergeSequential traverses maps[1], maps[2], ... in order, folding every entry into maps[0]
func MergeSequential[V any, M hashagg.Map[V]](maps []M, merger hashagg.Merger[V]) (M, error) {
	var result M
	if len(maps) == 0 {
		return result, errors.ConfigurationError{Reason: "no tables to merge"}
	}
	result = maps[0]
	for _, src := range maps[1:] {
		src.ForEach(func(key hashagg.Key, v *V) bool {
			mergeEntry[V](result, key, v, merger)
			return true
		})
	}
	return result, nil
}

// MergeTransposed produces the same result as MergeSequential, but interleaves the traversal of
// the source tables: each round folds the next entry of every source table which still has one.
func MergeTransposed[V any, M hashagg.Map[V]](maps []M, merger hashagg.Merger[V]) (M, error) {
	var result M
	if len(maps) == 0 {
		return result, errors.ConfigurationError{Reason: "no tables to merge"}
	}
	result = maps[0]
	iterators := make([]hashagg.Iterator[V], 0, len(maps)-1)
	for _, src := range maps[1:] {
		iterators = append(iterators, src.Iter())
	}
	for {
		finished := true
		for _, it := range iterators {
			if !it.Next() {
				continue
			}
			finished = false
			mergeEntry[V](result, it.Key(), it.Value(), merger)
		}
		if finished {
			return result, nil
		}
	}
}

// MergeBuckets merges two-level tables bucket by bucket. Bucket i of every table is merged into
// bucket i of tables[0] by inner, as one task on p; since a key can only ever live in one bucket,
// the tasks share nothing and each one is the only writer of its destination bucket. MergeBuckets
// returns tables[0] once every bucket task has finished.
func MergeBuckets[V any, B hashagg.Bucketed[V]](tables []B, inner Kind, merger hashagg.Merger[V], p *pool.Pool) (B, error) {
	var result B
	if len(tables) == 0 {
		return result, errors.ConfigurationError{Reason: "no tables to merge"}
	}
	numBuckets := tables[0].NumBuckets()
	for i, t := range tables {
		if t.NumBuckets() != numBuckets {
			return result, errors.ConfigurationError{Reason: fmt.Sprintf("table %d has %d buckets, expected %d", i, t.NumBuckets(), numBuckets)}
		}
	}
	fn, err := ForKind[V, hashagg.Map[V]](inner)
	if err != nil {
		return result, err
	}
	for bucket := 0; bucket < numBuckets; bucket++ {
		p.Schedule(func() error {
			section := make([]hashagg.Map[V], len(tables))
			for i, t := range tables {
				section[i] = t.Bucket(bucket)
			}
			if _, err := fn(section, merger); err != nil {
				return fmt.Errorf("merging bucket %d: %w", bucket, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return result, err
	}
	return tables[0], nil
}

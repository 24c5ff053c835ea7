// Package aggregate builds per-worker accumulator tables from ranges of input keys.
// Every worker aggregates into its own, freshly created table, so aggregation needs no
// synchronization at all. Keys which occur in more than one worker's range are
// reconciled later, by the merge package.
package aggregate

import (
	"fmt"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
	"github.com/go-sif/hashagg/partition"
	"github.com/go-sif/hashagg/pool"
)

// Kind selects an aggregation strategy
type Kind int

const (
	// Plain looks up every key in the table
	Plain Kind = iota
	// RunCompression skips the lookup for a key equal to the one immediately before it
	RunCompression
)

// String returns the name of this Kind
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case RunCompression:
		return "run-compression"
	default:
		return fmt.Sprintf("aggregate.Kind(%d)", int(k))
	}
}

// Policy is the part of a hashagg.Policy needed to build a table
type Policy[V any] interface {
	hashagg.Creator[V]
	hashagg.Updater[V]
}

// Func aggregates keys into m
type Func[V any] func(keys []hashagg.Key, m hashagg.Map[V], policy Policy[V])

// ForKind returns the aggregation strategy for k
func ForKind[V any](k Kind) (Func[V], error) {
	switch k {
	case Plain:
		return Keys[V], nil
	case RunCompression:
		return KeysWithRuns[V], nil
	default:
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("%s is an unknown aggregation strategy", k)}
	}
}

// Keys aggregates every key into m, creating the accumulator of a key on first sight and
// updating it on every later sight
func Keys[V any](keys []hashagg.Key, m hashagg.Map[V], policy Policy[V]) {
	for _, k := range keys {
		v, inserted := m.Emplace(k)
		if inserted {
			policy.Create(k, v)
		} else {
			policy.Update(k, v)
		}
	}
}

// KeysWithRuns produces the same table as Keys, but exploits runs of identical adjacent keys:
// while the key does not change, the slot found for the first key of the run is updated directly.
// The slot stays valid because nothing is inserted into m in the meantime.
func KeysWithRuns[V any](keys []hashagg.Key, m hashagg.Map[V], policy Policy[V]) {
	var place *V
	var prev hashagg.Key
	for i, k := range keys {
		if i != 0 && k == prev {
			policy.Update(k, place)
			continue
		}
		prev = k
		v, inserted := m.Emplace(k)
		place = v
		if inserted {
			policy.Create(k, v)
		} else {
			policy.Update(k, v)
		}
	}
}

// Execute creates one table per range with newMap and aggregates each range into its table
// on p, returning once every worker has finished. Table i holds the aggregate of ranges[i].
// If any worker fails, no tables are returned.
func Execute[V any, M hashagg.Map[V]](keys []hashagg.Key, ranges []partition.Range, kind Kind, newMap func() M, policy Policy[V], p *pool.Pool) ([]M, error) {
	fn, err := ForKind[V](kind)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, errors.ConfigurationError{Reason: "no ranges to aggregate"}
	}
	results := make([]M, len(ranges))
	for i, r := range ranges {
		results[i] = newMap()
		m := results[i]
		slice := r.Slice(keys)
		p.Schedule(func() error {
			fn(slice, m, policy)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

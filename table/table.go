package table

import (
	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
)

// Table is an open-addressing hash table from Key to V, using linear probing over a
// power-of-two array of slots. It grows by doubling once it is half full. The zero Key
// marks empty slots, so it is stored outside the slot array.
type Table[V any] struct {
	keys       []hashagg.Key
	vals       []V
	mask       uint64
	size       int // occupied slots, not counting the zero Key
	hasZero    bool
	zeroVal    V
	maxEntries int
}

// New creates an empty Table
func New[V any](opts ...Option) *Table[V] {
	conf := buildConfig(opts)
	capacity := 1 << conf.initialSizeBits
	return &Table[V]{
		keys:       make([]hashagg.Key, capacity),
		vals:       make([]V, capacity),
		mask:       uint64(capacity - 1),
		maxEntries: conf.maxEntries,
	}
}

// Emplace locates the slot for key, inserting a zeroed slot if key is absent
func (t *Table[V]) Emplace(key hashagg.Key) (*V, bool) {
	return t.emplaceHash(key, Hash(key))
}

func (t *Table[V]) emplaceHash(key hashagg.Key, hash uint64) (*V, bool) {
	if key == 0 {
		if t.hasZero {
			return &t.zeroVal, false
		}
		t.checkLimit()
		t.hasZero = true
		return &t.zeroVal, true
	}
	i := hash & t.mask
	for {
		cur := t.keys[i]
		if cur == key {
			return &t.vals[i], false
		}
		if cur == 0 {
			break
		}
		i = (i + 1) & t.mask
	}
	t.checkLimit()
	if 2*(t.size+1) > len(t.keys) {
		t.grow()
		i = t.findEmpty(hash)
	}
	t.keys[i] = key
	t.size++
	return &t.vals[i], true
}

func (t *Table[V]) checkLimit() {
	if t.maxEntries > 0 && t.Len() >= t.maxEntries {
		panic(errors.ResourceExhaustedError{Limit: t.maxEntries})
	}
}

// findEmpty returns the first empty slot on the probe sequence of hash
func (t *Table[V]) findEmpty(hash uint64) uint64 {
	i := hash & t.mask
	for t.keys[i] != 0 {
		i = (i + 1) & t.mask
	}
	return i
}

// grow doubles the slot array and reinserts every entry. All slot pointers handed out so far
// are invalidated.
func (t *Table[V]) grow() {
	oldKeys, oldVals := t.keys, t.vals
	capacity := 2 * len(oldKeys)
	t.keys = make([]hashagg.Key, capacity)
	t.vals = make([]V, capacity)
	t.mask = uint64(capacity - 1)
	for j, k := range oldKeys {
		if k == 0 {
			continue
		}
		i := t.findEmpty(Hash(k))
		t.keys[i] = k
		t.vals[i] = oldVals[j]
	}
}

// Len returns the number of distinct Keys in this Table
func (t *Table[V]) Len() int {
	if t.hasZero {
		return t.size + 1
	}
	return t.size
}

// Capacity returns the current number of slots
func (t *Table[V]) Capacity() int {
	return len(t.keys)
}

// ForEach visits every entry until fn returns false
func (t *Table[V]) ForEach(fn func(key hashagg.Key, v *V) bool) {
	if t.hasZero && !fn(0, &t.zeroVal) {
		return
	}
	for i, k := range t.keys {
		if k != 0 && !fn(k, &t.vals[i]) {
			return
		}
	}
}

// Iter returns a cursor over every entry
func (t *Table[V]) Iter() hashagg.Iterator[V] {
	return &iterator[V]{t: t, cur: -1}
}

type iterator[V any] struct {
	t       *Table[V]
	started bool
	pos     int
	cur     int // -1 is the out-of-line zero Key
}

func (it *iterator[V]) Next() bool {
	if !it.started {
		it.started = true
		if it.t.hasZero {
			it.cur = -1
			return true
		}
	}
	for it.pos < len(it.t.keys) {
		i := it.pos
		it.pos++
		if it.t.keys[i] != 0 {
			it.cur = i
			return true
		}
	}
	return false
}

func (it *iterator[V]) Key() hashagg.Key {
	if it.cur < 0 {
		return 0
	}
	return it.t.keys[it.cur]
}

func (it *iterator[V]) Value() *V {
	if it.cur < 0 {
		return &it.t.zeroVal
	}
	return &it.t.vals[it.cur]
}

var _ hashagg.Map[uint64] = (*Table[uint64])(nil)

package hashagg

// Map is a hash-indexed mapping from Key to an accumulator of type V, with
// emplace-or-locate semantics. A Map has exactly one writer at a time; nothing
// in a Map is synchronized.
type Map[V any] interface {
	// Emplace locates the slot for key, inserting a zeroed one if key is absent.
	// inserted reports whether the slot is new, in which case the caller must run
	// a Creator on it before any other access. The returned pointer remains valid
	// until the next mutating call on the Map.
	Emplace(key Key) (slot *V, inserted bool)
	Len() int                            // Len returns the number of distinct Keys
	Iter() Iterator[V]                   // Iter returns a cursor over all entries, in table-defined order
	ForEach(fn func(key Key, v *V) bool) // ForEach visits all entries until fn returns false
}

// Iterator is a cursor over the entries of a Map. Mutating the Map invalidates it.
//
//	for it := m.Iter(); it.Next(); {
//		use(it.Key(), it.Value())
//	}
type Iterator[V any] interface {
	Next() bool // Next advances the cursor, returning false once exhausted
	Key() Key   // Key returns the Key of the current entry
	Value() *V  // Value returns the slot of the current entry
}

// Bucketed is a Map partitioned into a fixed number of independent bucket Maps.
// A Key lives in exactly one bucket, chosen by a pure function of the Key, so the
// same bucket index of two Bucketed Maps can be processed without touching any
// other bucket.
type Bucketed[V any] interface {
	Map[V]
	NumBuckets() int      // NumBuckets returns the fixed bucket count
	Bucket(i int) Map[V]  // Bucket returns the i-th bucket
	BucketOf(key Key) int // BucketOf returns the bucket index key is routed to
}

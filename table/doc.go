// Package table provides the hash-indexed accumulator tables aggregated into by workers.
// Table is a single open-addressing hash table with emplace-or-locate semantics. TwoLevel
// partitions keys into a fixed, power-of-two number of independent Tables ("buckets") using
// the top bits of the key's hash, which allows the buckets of several TwoLevel tables to be
// merged in parallel without any synchronization.
//
// Keys are hashed with xxhash (https://github.com/cespare/xxhash), over their little-endian bytes.
// Neither table is safe for concurrent mutation: each instance must have a single writer.
package table

// Package datasource acquires input key sequences. Binary sources are flat arrays of
// little-endian uint64 keys, either raw or compressed with lz4 (https://github.com/pierrec/lz4)
// or zstd (https://github.com/klauspost/compress). Text sources are JSON Lines, parsed by the
// jsonl sub-package.
package datasource

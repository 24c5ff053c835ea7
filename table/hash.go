package table

import (
	"encoding/binary"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/hashagg"
)

// Hash returns the 64-bit hash used to place key in a Table, and to route it to a TwoLevel bucket
func Hash(key hashagg.Key) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return xxhash.Sum64(buf[:])
}

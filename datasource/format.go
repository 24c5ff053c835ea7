package datasource

import (
	"fmt"
	"strings"

	"github.com/go-sif/hashagg/errors"
)

// Format describes the encoding of a key stream
type Format string

const (
	// Raw is a flat array of little-endian uint64 keys
	Raw Format = "raw"
	// LZ4 is a Raw array compressed as an lz4 frame
	LZ4 Format = "lz4"
	// Zstd is a Raw array compressed as a zstd stream
	Zstd Format = "zstd"
	// JSONL is one JSON object per line, holding one key each
	JSONL Format = "jsonl"
)

// ParseFormat translates a case-insensitive format name into a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case Raw, LZ4, Zstd, JSONL:
		return f, nil
	default:
		return "", errors.ConfigurationError{Reason: fmt.Sprintf("%s is an unknown input format", name)}
	}
}

package datasource

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/datasource/parser/jsonl"
	"github.com/go-sif/hashagg/errors"
)

const keySize = 8

// readChunkKeys is the number of keys decoded per read from a binary stream
const readChunkKeys = 8192

// ReadOptions configures ReadKeys
type ReadOptions struct {
	Format  Format // Format of the stream. Defaults to Raw.
	Count   int    // If positive, exactly Count keys are read. Otherwise the stream is read to its end.
	KeyPath string // gjson path of the key, for the JSONL format
}

// ReadKeys reads a key sequence from r. If fewer than opts.Count keys are available, an
// errors.InputUnderflowError is returned.
func ReadKeys(r io.Reader, opts ReadOptions) ([]hashagg.Key, error) {
	if len(opts.Format) == 0 {
		opts.Format = Raw
	}
	switch opts.Format {
	case Raw:
		return readBinaryKeys(bufio.NewReader(r), opts.Count)
	case LZ4:
		return readBinaryKeys(lz4.NewReader(r), opts.Count)
	case Zstd:
		decompressor, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("Unable to initialize decompressor: %w", err)
		}
		defer decompressor.Close()
		return readBinaryKeys(decompressor, opts.Count)
	case JSONL:
		return jsonl.CreateParser(&jsonl.ParserConf{KeyPath: opts.KeyPath}).Parse(r, opts.Count)
	default:
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("%s is an unknown input format", opts.Format)}
	}
}

// readBinaryKeys decodes little-endian keys from r, in chunks
func readBinaryKeys(r io.Reader, count int) ([]hashagg.Key, error) {
	var keys []hashagg.Key
	if count > 0 {
		keys = make([]hashagg.Key, 0, count)
	}
	buf := make([]byte, readChunkKeys*keySize)
	for count <= 0 || len(keys) < count {
		want := readChunkKeys
		if count > 0 && count-len(keys) < want {
			want = count - len(keys)
		}
		n, err := io.ReadFull(r, buf[:want*keySize])
		for off := 0; off+keySize <= n; off += keySize {
			keys = append(keys, binary.LittleEndian.Uint64(buf[off:off+keySize]))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			if n%keySize != 0 {
				return nil, fmt.Errorf("input ends with a truncated key of %d bytes", n%keySize)
			}
			if count > 0 {
				return nil, errors.InputUnderflowError{Want: count, Got: len(keys)}
			}
			return keys, nil
		} else if err != nil {
			return nil, err
		}
	}
	return keys, nil
}

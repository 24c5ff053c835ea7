package datasource

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
)

// WriteKeys encodes keys to w in the given format. JSONL output holds one {"key":N} object per line.
func WriteKeys(w io.Writer, format Format, keys []hashagg.Key) error {
	switch format {
	case Raw, "":
		bw := bufio.NewWriter(w)
		if err := writeBinaryKeys(bw, keys); err != nil {
			return err
		}
		return bw.Flush()
	case LZ4:
		compressor := lz4.NewWriter(w)
		if err := writeBinaryKeys(compressor, keys); err != nil {
			return err
		}
		return compressor.Close()
	case Zstd:
		compressor, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return fmt.Errorf("Unable to initialize compressor: %w", err)
		}
		if err := writeBinaryKeys(compressor, keys); err != nil {
			compressor.Close()
			return err
		}
		return compressor.Close()
	case JSONL:
		bw := bufio.NewWriter(w)
		for _, k := range keys {
			if _, err := fmt.Fprintf(bw, "{\"key\":%d}\n", k); err != nil {
				return err
			}
		}
		return bw.Flush()
	default:
		return errors.ConfigurationError{Reason: fmt.Sprintf("%s is an unknown output format", format)}
	}
}

func writeBinaryKeys(w io.Writer, keys []hashagg.Key) error {
	buf := make([]byte, 0, readChunkKeys*keySize)
	for i, k := range keys {
		buf = binary.LittleEndian.AppendUint64(buf, k)
		if len(buf) == cap(buf) || i == len(keys)-1 {
			if _, err := w.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	return nil
}

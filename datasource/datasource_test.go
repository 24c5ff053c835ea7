package datasource

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAllFormats(t *testing.T) {
	keys, err := Generate(GenerateOptions{N: 20000, Cardinality: 1 << 40, RunLength: 3, Seed: 5})
	require.Nil(t, err)
	keys = append(keys, 0, 18446744073709551615)
	for _, format := range []Format{Raw, LZ4, Zstd, JSONL} {
		var buf bytes.Buffer
		require.Nil(t, WriteKeys(&buf, format, keys), "format %s", format)
		encoded := buf.Bytes()

		all, err := ReadKeys(bytes.NewReader(encoded), ReadOptions{Format: format})
		require.Nil(t, err, "format %s", format)
		require.Equal(t, keys, all, "format %s", format)

		some, err := ReadKeys(bytes.NewReader(encoded), ReadOptions{Format: format, Count: 100})
		require.Nil(t, err, "format %s", format)
		require.Equal(t, keys[:100], some, "format %s", format)
	}
}

func TestReadUnderflow(t *testing.T) {
	for _, format := range []Format{Raw, LZ4, Zstd, JSONL} {
		var buf bytes.Buffer
		require.Nil(t, WriteKeys(&buf, format, []hashagg.Key{1, 2, 3}))
		_, err := ReadKeys(&buf, ReadOptions{Format: format, Count: 10})
		require.Equal(t, errors.InputUnderflowError{Want: 10, Got: 3}, err, "format %s", format)
	}
}

func TestReadEmpty(t *testing.T) {
	keys, err := ReadKeys(bytes.NewReader(nil), ReadOptions{})
	require.Nil(t, err)
	require.Empty(t, keys)
}

func TestReadTruncatedKey(t *testing.T) {
	data := make([]byte, 8, 12)
	binary.LittleEndian.PutUint64(data, 77)
	data = append(data, 1, 2, 3)
	_, err := ReadKeys(bytes.NewReader(data), ReadOptions{Format: Raw})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "truncated")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("LZ4")
	require.Nil(t, err)
	require.Equal(t, LZ4, f)
	_, err = ParseFormat("gzip")
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestGenerate(t *testing.T) {
	a, err := Generate(GenerateOptions{N: 1000, Cardinality: 10, RunLength: 4, Seed: 1})
	require.Nil(t, err)
	b, err := Generate(GenerateOptions{N: 1000, Cardinality: 10, RunLength: 4, Seed: 1})
	require.Nil(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 1000)
	for _, k := range a {
		require.Less(t, k, hashagg.Key(10))
	}
	_, err = Generate(GenerateOptions{N: 10})
	require.IsType(t, errors.ConfigurationError{}, err)
}

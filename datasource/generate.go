package datasource

import (
	"fmt"
	"math/rand"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
)

// GenerateOptions configures Generate
type GenerateOptions struct {
	N           int   // N is the number of keys to produce
	Cardinality int   // Cardinality bounds the number of distinct keys, drawn from [0, Cardinality)
	RunLength   int   // RunLength is the maximum length of a run of identical adjacent keys. Defaults to 1.
	Seed        int64 // Seed makes the output reproducible
}

// Generate produces a synthetic key sequence. Keys are drawn uniformly, each repeated
// between 1 and RunLength times in a row.
func Generate(opts GenerateOptions) ([]hashagg.Key, error) {
	if opts.N < 0 {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("cannot generate %d keys", opts.N)}
	}
	if opts.Cardinality <= 0 {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("cardinality must be greater than 0, got %d", opts.Cardinality)}
	}
	if opts.RunLength <= 0 {
		opts.RunLength = 1
	}
	rnd := rand.New(rand.NewSource(opts.Seed))
	keys := make([]hashagg.Key, 0, opts.N)
	for len(keys) < opts.N {
		k := hashagg.Key(rnd.Int63n(int64(opts.Cardinality)))
		run := 1 + rnd.Intn(opts.RunLength)
		for j := 0; j < run && len(keys) < opts.N; j++ {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

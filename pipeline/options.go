package pipeline

import (
	"fmt"

	"github.com/go-sif/hashagg/errors"
	"github.com/go-sif/hashagg/logging"
	"github.com/go-sif/hashagg/pool"
	"github.com/go-sif/hashagg/stats"
	"github.com/go-sif/hashagg/table"
)

// Options configure a run
type Options struct {
	Workers    int             // [REQUIRED] the number of workers, and so of ranges and per-worker tables
	Method     Method          // the combination of table, aggregation and merge strategy to run. Defaults to method 1.
	BucketBits *uint           // two-level tables have 2^BucketBits buckets. Defaults to table.DefaultBucketBits if nil.
	MaxEntries int             // if positive, limits the size of every hash table (per bucket for two-level tables)
	Verify     bool            // iff true, check that the merged table holds exactly the distinct input keys
	Logger     *logging.Logger // destination for log records. Defaults to a no-op Logger.
	Reporter   stats.Reporter  // receives the Report of every successful run, if set
	Pool       *pool.Pool      // the pool tasks are scheduled on. Defaults to a new Pool with Workers goroutines.
}

// Bits returns a pointer to bits, for use as Options.BucketBits
func Bits(bits uint) *uint {
	return &bits
}

// CloneOptions makes a copy of Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		Workers:    opts.Workers,
		Method:     opts.Method,
		BucketBits: opts.BucketBits,
		MaxEntries: opts.MaxEntries,
		Verify:     opts.Verify,
		Logger:     opts.Logger,
		Reporter:   opts.Reporter,
		Pool:       opts.Pool,
	}
}

// ensureDefaultOptionsValues validates opts, and fills in defaults for options which were not supplied
func ensureDefaultOptionsValues(opts *Options) error {
	if opts.Workers <= 0 {
		return errors.ConfigurationError{Reason: fmt.Sprintf("Options.Workers must be greater than 0, got %d", opts.Workers)}
	}
	if opts.Method == (Method{}) {
		opts.Method = methods[0]
	}
	if err := opts.Method.Validate(); err != nil {
		return err
	}
	if opts.BucketBits == nil {
		opts.BucketBits = Bits(table.DefaultBucketBits)
	}
	if err := table.ValidateBucketBits(*opts.BucketBits); err != nil {
		return err
	}
	if opts.MaxEntries < 0 {
		return errors.ConfigurationError{Reason: fmt.Sprintf("Options.MaxEntries cannot be negative, got %d", opts.MaxEntries)}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoopLogger()
	}
	if opts.Pool == nil {
		p, err := pool.New(opts.Workers)
		if err != nil {
			return err
		}
		opts.Pool = p
	}
	return nil
}

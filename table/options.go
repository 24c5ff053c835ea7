package table

const (
	// DefaultInitialSizeBits yields tables which start with 256 slots
	DefaultInitialSizeBits = 8
	// DefaultBucketBits yields TwoLevel tables with 256 buckets
	DefaultBucketBits = 8
	// MaxBucketBits bounds the number of TwoLevel buckets to 65536
	MaxBucketBits = 16
)

type config struct {
	initialSizeBits uint
	maxEntries      int
}

// An Option configures a Table, or each bucket of a TwoLevel table
type Option func(*config)

// WithMaxEntries limits the number of entries a Table may hold. Inserting beyond the limit panics
// with an errors.ResourceExhaustedError, which aborts the run it happens in. For a TwoLevel table the
// limit applies to every bucket. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		c.maxEntries = n
	}
}

// WithInitialSizeBits sets the initial number of slots to 2^bits
func WithInitialSizeBits(bits uint) Option {
	return func(c *config) {
		c.initialSizeBits = bits
	}
}

func buildConfig(opts []Option) config {
	conf := config{initialSizeBits: DefaultInitialSizeBits}
	for _, o := range opts {
		o(&conf)
	}
	if conf.initialSizeBits < 1 {
		conf.initialSizeBits = 1
	}
	return conf
}

package pipeline

import (
	"fmt"

	"github.com/go-sif/hashagg/aggregate"
	"github.com/go-sif/hashagg/errors"
	"github.com/go-sif/hashagg/merge"
)

// TableKind selects the accumulator table workers aggregate into
type TableKind int

const (
	// SingleLevel tables are plain open-addressing hash tables
	SingleLevel TableKind = iota
	// TwoLevel tables are sharded into independent buckets by key hash
	TwoLevel
)

// String returns the name of this TableKind
func (k TableKind) String() string {
	switch k {
	case SingleLevel:
		return "single-level"
	case TwoLevel:
		return "two-level"
	default:
		return fmt.Sprintf("pipeline.TableKind(%d)", int(k))
	}
}

// Method is one combination of table kind, aggregation strategy and merge strategy.
// Inner is the merge strategy applied to each bucket, and is only used by bucket-parallel merges.
type Method struct {
	ID        int
	Table     TableKind
	Aggregate aggregate.Kind
	Merge     merge.Kind
	Inner     merge.Kind
}

// String returns a textual representation of this Method, e.g. "two-level/plain/bucket-parallel(sequential)"
func (m Method) String() string {
	if m.Merge == merge.BucketParallel {
		return fmt.Sprintf("%s/%s/%s(%s)", m.Table, m.Aggregate, m.Merge, m.Inner)
	}
	return fmt.Sprintf("%s/%s/%s", m.Table, m.Aggregate, m.Merge)
}

// Validate returns an errors.ConfigurationError iff this Method cannot be run
func (m Method) Validate() error {
	if m.Table != SingleLevel && m.Table != TwoLevel {
		return errors.ConfigurationError{Reason: fmt.Sprintf("%s is an unknown table kind", m.Table)}
	}
	if m.Aggregate != aggregate.Plain && m.Aggregate != aggregate.RunCompression {
		return errors.ConfigurationError{Reason: fmt.Sprintf("%s is an unknown aggregation strategy", m.Aggregate)}
	}
	switch m.Merge {
	case merge.Sequential, merge.Transposed:
		return nil
	case merge.BucketParallel:
		if m.Table != TwoLevel {
			return errors.ConfigurationError{Reason: fmt.Sprintf("%s merge requires two-level tables, not %s tables", m.Merge, m.Table)}
		}
		if m.Inner != merge.Sequential && m.Inner != merge.Transposed {
			return errors.ConfigurationError{Reason: fmt.Sprintf("%s cannot merge the buckets of a %s merge", m.Inner, m.Merge)}
		}
		return nil
	default:
		return errors.ConfigurationError{Reason: fmt.Sprintf("%s is an unknown merge strategy", m.Merge)}
	}
}

// methods are numbered as in the benchmark this engine grew out of, hence the gap after 10
var methods = []Method{
	{ID: 1, Table: SingleLevel, Aggregate: aggregate.Plain, Merge: merge.Sequential},
	{ID: 2, Table: SingleLevel, Aggregate: aggregate.RunCompression, Merge: merge.Sequential},
	{ID: 3, Table: SingleLevel, Aggregate: aggregate.Plain, Merge: merge.Transposed},
	{ID: 4, Table: SingleLevel, Aggregate: aggregate.RunCompression, Merge: merge.Transposed},
	{ID: 5, Table: TwoLevel, Aggregate: aggregate.Plain, Merge: merge.Sequential},
	{ID: 6, Table: TwoLevel, Aggregate: aggregate.RunCompression, Merge: merge.Sequential},
	{ID: 7, Table: TwoLevel, Aggregate: aggregate.Plain, Merge: merge.Transposed},
	{ID: 8, Table: TwoLevel, Aggregate: aggregate.RunCompression, Merge: merge.Transposed},
	{ID: 9, Table: TwoLevel, Aggregate: aggregate.Plain, Merge: merge.BucketParallel, Inner: merge.Sequential},
	{ID: 10, Table: TwoLevel, Aggregate: aggregate.RunCompression, Merge: merge.BucketParallel, Inner: merge.Sequential},
	{ID: 13, Table: TwoLevel, Aggregate: aggregate.Plain, Merge: merge.BucketParallel, Inner: merge.Transposed},
	{ID: 14, Table: TwoLevel, Aggregate: aggregate.RunCompression, Merge: merge.BucketParallel, Inner: merge.Transposed},
}

// AllMethods returns every numbered Method, in order
func AllMethods() []Method {
	result := make([]Method, len(methods))
	copy(result, methods)
	return result
}

// MethodByID returns the numbered Method with the given id
func MethodByID(id int) (Method, error) {
	for _, m := range methods {
		if m.ID == id {
			return m, nil
		}
	}
	return Method{}, errors.ConfigurationError{Reason: fmt.Sprintf("%d is an unknown method", id)}
}

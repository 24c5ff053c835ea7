package merge

import (
	"math/rand"
	"testing"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/accumulators"
	"github.com/go-sif/hashagg/aggregate"
	"github.com/go-sif/hashagg/errors"
	"github.com/go-sif/hashagg/partition"
	"github.com/go-sif/hashagg/pool"
	"github.com/go-sif/hashagg/table"
	"github.com/stretchr/testify/require"
)

func createTestKeys(seed int64, n int, cardinality int) []hashagg.Key {
	rnd := rand.New(rand.NewSource(seed))
	keys := make([]hashagg.Key, n)
	for i := range keys {
		keys[i] = hashagg.Key(rnd.Intn(cardinality))
	}
	return keys
}

func countKeys(keys []hashagg.Key) map[hashagg.Key]uint64 {
	counts := make(map[hashagg.Key]uint64)
	for _, k := range keys {
		counts[k]++
	}
	return counts
}

func toMap(m hashagg.Map[uint64]) map[hashagg.Key]uint64 {
	result := make(map[hashagg.Key]uint64, m.Len())
	m.ForEach(func(key hashagg.Key, v *uint64) bool {
		result[key] = *v
		return true
	})
	return result
}

// buildTables aggregates keys into one single-level table per worker
func buildTables(t *testing.T, keys []hashagg.Key, workers int) []*table.Table[uint64] {
	tables := make([]*table.Table[uint64], workers)
	ranges, err := partition.Ranges(len(keys), workers)
	require.Nil(t, err)
	for i, r := range ranges {
		tables[i] = table.New[uint64]()
		aggregate.Keys[uint64](r.Slice(keys), tables[i], accumulators.Counter())
	}
	return tables
}

// buildTwoLevelTables aggregates keys into one two-level table per worker
func buildTwoLevelTables(t *testing.T, keys []hashagg.Key, workers int, bits uint) []*table.TwoLevel[uint64] {
	tables := make([]*table.TwoLevel[uint64], workers)
	ranges, err := partition.Ranges(len(keys), workers)
	require.Nil(t, err)
	for i, r := range ranges {
		tables[i] = table.NewTwoLevel[uint64](bits)
		aggregate.Keys[uint64](r.Slice(keys), tables[i], accumulators.Counter())
	}
	return tables
}

func TestMergeSequentialScenario(t *testing.T) {
	keys := []hashagg.Key{1, 1, 2, 3, 3, 3}
	tables := buildTables(t, keys, 2)
	result, err := MergeSequential[uint64](tables, accumulators.Counter())
	require.Nil(t, err)
	require.Same(t, tables[0], result)
	require.Equal(t, map[hashagg.Key]uint64{1: 2, 2: 1, 3: 3}, toMap(result))
}

func TestMergeStrategiesAgree(t *testing.T) {
	keys := createTestKeys(7, 50000, 2000)
	expected := countKeys(keys)
	for _, workers := range []int{1, 2, 3, 8} {
		seq, err := MergeSequential[uint64](buildTables(t, keys, workers), accumulators.Counter())
		require.Nil(t, err)
		require.Equal(t, expected, toMap(seq))

		tr, err := MergeTransposed[uint64](buildTables(t, keys, workers), accumulators.Counter())
		require.Nil(t, err)
		require.Equal(t, expected, toMap(tr))

		seq2, err := MergeSequential[uint64](buildTwoLevelTables(t, keys, workers, 8), accumulators.Counter())
		require.Nil(t, err)
		require.Equal(t, expected, toMap(seq2))

		tr2, err := MergeTransposed[uint64](buildTwoLevelTables(t, keys, workers, 8), accumulators.Counter())
		require.Nil(t, err)
		require.Equal(t, expected, toMap(tr2))

		p, err := pool.New(workers)
		require.Nil(t, err)
		for _, inner := range []Kind{Sequential, Transposed} {
			tables := buildTwoLevelTables(t, keys, workers, 8)
			bp, err := MergeBuckets[uint64](tables, inner, accumulators.Counter(), p)
			require.Nil(t, err)
			require.Same(t, tables[0], bp)
			require.Equal(t, expected, toMap(bp))
		}
	}
}

func TestTransposedWithUnevenTables(t *testing.T) {
	tables := []*table.Table[uint64]{table.New[uint64](), table.New[uint64](), table.New[uint64](), table.New[uint64]()}
	aggregate.Keys[uint64]([]hashagg.Key{1}, tables[0], accumulators.Counter())
	aggregate.Keys[uint64]([]hashagg.Key{1, 2, 3, 4, 5, 6}, tables[1], accumulators.Counter())
	aggregate.Keys[uint64]([]hashagg.Key{6}, tables[3], accumulators.Counter())
	result, err := MergeTransposed[uint64](tables, accumulators.Counter())
	require.Nil(t, err)
	require.Equal(t, map[hashagg.Key]uint64{1: 2, 2: 1, 3: 1, 4: 1, 5: 1, 6: 2}, toMap(result))
}

func TestAbsentKeyTakesSourceValue(t *testing.T) {
	merges := 0
	policy := hashagg.PolicyFuncs[uint64]{
		MergeFn: func(dst *uint64, src *uint64) {
			merges++
			*dst += *src
		},
	}
	dst, src := table.New[uint64](), table.New[uint64]()
	v, _ := src.Emplace(5)
	*v = 7
	v, _ = dst.Emplace(6)
	*v = 1
	v, _ = src.Emplace(6)
	*v = 2
	result, err := MergeSequential[uint64]([]*table.Table[uint64]{dst, src}, policy)
	require.Nil(t, err)
	require.Equal(t, map[hashagg.Key]uint64{5: 7, 6: 3}, toMap(result))
	require.Equal(t, 1, merges)
}

func TestMergeSingleTable(t *testing.T) {
	tables := buildTables(t, []hashagg.Key{4, 4}, 1)
	result, err := MergeTransposed[uint64](tables, accumulators.Counter())
	require.Nil(t, err)
	require.Equal(t, map[hashagg.Key]uint64{4: 2}, toMap(result))
}

func TestMergeNothing(t *testing.T) {
	_, err := MergeSequential[uint64]([]*table.Table[uint64]{}, accumulators.Counter())
	require.IsType(t, errors.ConfigurationError{}, err)
	_, err = MergeTransposed[uint64]([]*table.Table[uint64]{}, accumulators.Counter())
	require.IsType(t, errors.ConfigurationError{}, err)
	p, err := pool.New(1)
	require.Nil(t, err)
	_, err = MergeBuckets[uint64]([]*table.TwoLevel[uint64]{}, Sequential, accumulators.Counter(), p)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestMergeBucketsRejectsMismatchedTables(t *testing.T) {
	p, err := pool.New(2)
	require.Nil(t, err)
	tables := []*table.TwoLevel[uint64]{table.NewTwoLevel[uint64](3), table.NewTwoLevel[uint64](4)}
	_, err = MergeBuckets[uint64](tables, Sequential, accumulators.Counter(), p)
	require.IsType(t, errors.ConfigurationError{}, err)
	_, err = MergeBuckets[uint64]([]*table.TwoLevel[uint64]{tables[0]}, BucketParallel, accumulators.Counter(), p)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestMergeBucketsKeepsRouting(t *testing.T) {
	keys := createTestKeys(11, 10000, 700)
	p, err := pool.New(4)
	require.Nil(t, err)
	tables := buildTwoLevelTables(t, keys, 4, 3)
	result, err := MergeBuckets[uint64](tables, Transposed, accumulators.Counter(), p)
	require.Nil(t, err)
	for b := 0; b < result.NumBuckets(); b++ {
		result.Bucket(b).ForEach(func(key hashagg.Key, _ *uint64) bool {
			require.Equal(t, b, result.BucketOf(key))
			return true
		})
	}
}

func TestForKind(t *testing.T) {
	_, err := ForKind[uint64, hashagg.Map[uint64]](Kind(9))
	require.IsType(t, errors.ConfigurationError{}, err)
	require.Equal(t, "bucket-parallel", BucketParallel.String())
}

package table

import (
	"sync"
	"testing"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
	"github.com/stretchr/testify/require"
)

func TestTwoLevelRoutesByHash(t *testing.T) {
	tl := NewTwoLevel[uint64](3)
	require.Equal(t, 8, tl.NumBuckets())
	for i := 0; i < 500; i++ {
		k := hashagg.Key(i)
		v, _ := tl.Emplace(k)
		*v++
		bucket := int(Hash(k) >> (64 - 3))
		require.Equal(t, bucket, tl.BucketOf(k))
		// the key must be found in its bucket, and only there
		for b := 0; b < tl.NumBuckets(); b++ {
			found := false
			tl.Bucket(b).ForEach(func(key hashagg.Key, v *uint64) bool {
				found = key == k
				return !found
			})
			require.Equal(t, b == bucket, found)
		}
	}
	require.Equal(t, 500, tl.Len())
}

func TestTwoLevelRoutingIsIndependentOfWriter(t *testing.T) {
	keys := make([]hashagg.Key, 2000)
	for i := range keys {
		keys[i] = hashagg.Key(i * 31)
	}
	// build one table per goroutine, inserting in opposite orders
	tables := []*TwoLevel[uint64]{NewTwoLevel[uint64](4), NewTwoLevel[uint64](4)}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, k := range keys {
			tables[0].Emplace(k)
		}
	}()
	go func() {
		defer wg.Done()
		for i := len(keys) - 1; i >= 0; i-- {
			tables[1].Emplace(keys[i])
		}
	}()
	wg.Wait()
	require.Equal(t, tables[0].Sizes(), tables[1].Sizes())
	for b := 0; b < tables[0].NumBuckets(); b++ {
		tables[0].Bucket(b).ForEach(func(key hashagg.Key, _ *uint64) bool {
			require.Equal(t, b, tables[1].BucketOf(key))
			return true
		})
	}
}

func TestTwoLevelSingleBucket(t *testing.T) {
	tl := NewTwoLevel[uint64](0)
	require.Equal(t, 1, tl.NumBuckets())
	for i := 0; i < 100; i++ {
		tl.Emplace(hashagg.Key(i))
		require.Equal(t, 0, tl.BucketOf(hashagg.Key(i)))
	}
	require.Equal(t, 100, tl.Len())
}

func TestTwoLevelIter(t *testing.T) {
	tl := NewTwoLevel[uint64](DefaultBucketBits)
	for i := 0; i < 3000; i++ {
		v, _ := tl.Emplace(hashagg.Key(i))
		*v = uint64(i)
	}
	seen := make(map[hashagg.Key]bool)
	for it := tl.Iter(); it.Next(); {
		require.Equal(t, uint64(it.Key()), *it.Value())
		seen[it.Key()] = true
	}
	require.Len(t, seen, 3000)

	empty := NewTwoLevel[uint64](2)
	require.False(t, empty.Iter().Next())
}

func TestValidateBucketBits(t *testing.T) {
	require.Nil(t, ValidateBucketBits(0))
	require.Nil(t, ValidateBucketBits(MaxBucketBits))
	err := ValidateBucketBits(MaxBucketBits + 1)
	_, ok := err.(errors.ConfigurationError)
	require.True(t, ok)
	require.Panics(t, func() { NewTwoLevel[uint64](MaxBucketBits + 1) })
}

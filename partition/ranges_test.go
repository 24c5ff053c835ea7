package partition

import (
	"testing"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
	"github.com/stretchr/testify/require"
)

func TestRangesCoverInput(t *testing.T) {
	for _, length := range []int{0, 1, 5, 6, 7, 100, 1001} {
		for workers := 1; workers <= 9; workers++ {
			ranges, err := Ranges(length, workers)
			require.Nil(t, err)
			require.Len(t, ranges, workers)
			require.Equal(t, 0, ranges[0].Begin)
			require.Equal(t, length, ranges[workers-1].End)
			total := 0
			for i, r := range ranges {
				require.LessOrEqual(t, r.Begin, r.End)
				if i > 0 {
					require.Equal(t, ranges[i-1].End, r.Begin)
				}
				// ranges differ in size by at most one position
				require.LessOrEqual(t, r.Len(), length/workers+1)
				require.GreaterOrEqual(t, r.Len(), length/workers)
				total += r.Len()
			}
			require.Equal(t, length, total)
		}
	}
}

func TestSingleWorkerGetsEverything(t *testing.T) {
	ranges, err := Ranges(42, 1)
	require.Nil(t, err)
	require.Equal(t, []Range{{Begin: 0, End: 42}}, ranges)
}

func TestFewerKeysThanWorkers(t *testing.T) {
	ranges, err := Ranges(2, 4)
	require.Nil(t, err)
	empty := 0
	for _, r := range ranges {
		if r.Len() == 0 {
			empty++
		}
	}
	require.Equal(t, 2, empty)
}

func TestZeroWorkersRejected(t *testing.T) {
	_, err := Ranges(10, 0)
	require.NotNil(t, err)
	_, ok := err.(errors.ConfigurationError)
	require.True(t, ok)
	_, err = Ranges(10, -3)
	require.NotNil(t, err)
}

func TestSlice(t *testing.T) {
	keys := []hashagg.Key{1, 1, 2, 3, 3, 3}
	ranges, err := Ranges(len(keys), 2)
	require.Nil(t, err)
	require.Equal(t, []hashagg.Key{1, 1, 2}, ranges[0].Slice(keys))
	require.Equal(t, []hashagg.Key{3, 3, 3}, ranges[1].Slice(keys))
	require.Equal(t, "[3, 6)", ranges[1].String())
}

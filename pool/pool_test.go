package pool

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/go-sif/hashagg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewRejectsZeroSize(t *testing.T) {
	_, err := New(0)
	require.NotNil(t, err)
	_, ok := err.(errors.ConfigurationError)
	require.True(t, ok)
}

func TestWaitIsABarrier(t *testing.T) {
	p, err := New(4)
	require.Nil(t, err)
	var done int64
	for i := 0; i < 64; i++ {
		p.Schedule(func() error {
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&done, 1)
			return nil
		})
	}
	require.Nil(t, p.Wait())
	require.Equal(t, int64(64), atomic.LoadInt64(&done))
}

func TestConcurrencyIsBounded(t *testing.T) {
	p, err := New(3)
	require.Nil(t, err)
	var running, peak int64
	for i := 0; i < 30; i++ {
		p.Schedule(func() error {
			now := atomic.AddInt64(&running, 1)
			for {
				old := atomic.LoadInt64(&peak)
				if now <= old || atomic.CompareAndSwapInt64(&peak, old, now) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&running, -1)
			return nil
		})
	}
	require.Nil(t, p.Wait())
	require.LessOrEqual(t, atomic.LoadInt64(&peak), int64(3))
}

func TestWaitReportsAllErrors(t *testing.T) {
	p, err := New(2)
	require.Nil(t, err)
	for i := 0; i < 5; i++ {
		p.Schedule(func() error {
			if i%2 == 0 {
				return fmt.Errorf("task %d failed", i)
			}
			return nil
		})
	}
	err = p.Wait()
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 3)

	// the pool is reset after Wait
	p.Schedule(func() error { return nil })
	require.Nil(t, p.Wait())
}

func TestPanicsBecomeErrors(t *testing.T) {
	p, err := New(1)
	require.Nil(t, err)
	p.Schedule(func() error {
		panic(errors.ResourceExhaustedError{Limit: 8})
	})
	p.Schedule(func() error {
		panic("not an error")
	})
	err = p.Wait()
	require.NotNil(t, err)
	merr := err.(*multierror.Error)
	require.Len(t, merr.Errors, 2)
	var rerr errors.ResourceExhaustedError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, 8, rerr.Limit)
	require.Contains(t, err.Error(), "not an error")
}

// Package pool provides the fixed-size worker pool used for fork/join execution.
// Tasks are scheduled onto at most Size() goroutines at a time, and Wait acts as
// the join barrier: it blocks until every scheduled task has finished, and reports
// every task failure at once.
package pool

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/go-sif/hashagg/errors"
)

// Pool runs tasks on a bounded number of goroutines. A Pool is meant to be driven
// by a single coordinating goroutine, which schedules tasks and then Waits for them.
// Tasks must never Schedule onto the Pool they are running on.
type Pool struct {
	size    int
	group   *errgroup.Group
	errLock sync.Mutex
	errs    *multierror.Error
}

// New creates a Pool which runs at most size tasks concurrently
func New(size int) (*Pool, error) {
	if size <= 0 {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("pool size must be greater than 0, got %d", size)}
	}
	p := &Pool{size: size}
	p.reset()
	return p, nil
}

func (p *Pool) reset() {
	p.group = new(errgroup.Group)
	p.group.SetLimit(p.size)
	p.errs = nil
}

// Size returns the maximum number of concurrently running tasks
func (p *Pool) Size() int {
	return p.size
}

// Schedule submits a task to the Pool. It returns as soon as the task has been handed
// to a goroutine, blocking only while all of the Pool's goroutines are busy. Panics inside
// the task are recovered and reported by Wait as errors.
func (p *Pool) Schedule(task func() error) {
	p.group.Go(func() error {
		if err := safeTask(task); err != nil {
			p.errLock.Lock()
			p.errs = multierror.Append(p.errs, err)
			p.errLock.Unlock()
		}
		// errors are collected above, so that one failure does not hide the others
		return nil
	})
}

// Wait blocks until every scheduled task has completed, and returns all of their errors
// combined into a *multierror.Error (or nil). The Pool may be reused afterwards.
func (p *Pool) Wait() error {
	_ = p.group.Wait()
	p.errLock.Lock()
	err := p.errs.ErrorOrNil()
	p.errLock.Unlock()
	p.reset()
	return err
}

// safeTask runs task such that panics are recovered and nice error messages are constructed.
// Panics carrying an error are wrapped, so typed errors remain reachable via errors.As.
func safeTask(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("Task Panic: %w\n%s", anErr, getTrace())
			} else {
				err = fmt.Errorf("Task Panic: %v\n%s", r, getTrace())
			}
		}
	}()
	err = task()
	return
}

// getTrace produces the string representation of a stack trace
func getTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

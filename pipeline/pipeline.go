// Package pipeline orchestrates parallel aggregation runs. A run partitions its input
// into one range per worker, aggregates every range into a private table on a worker
// pool, waits for all of them, and then merges the per-worker tables into one result
// using the configured merge strategy.
package pipeline

import (
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/aggregate"
	"github.com/go-sif/hashagg/errors"
	"github.com/go-sif/hashagg/logging"
	"github.com/go-sif/hashagg/merge"
	"github.com/go-sif/hashagg/partition"
	"github.com/go-sif/hashagg/pool"
	"github.com/go-sif/hashagg/stats"
	"github.com/go-sif/hashagg/table"
)

// Result is the outcome of a successful run
type Result[V any] struct {
	RunID  string
	Method Method
	Table  hashagg.Map[V] // Table is the merged table. It is owned by the caller.
	Report stats.Report
}

// run holds the state of one execution, and is only touched by the goroutine driving it
type run[V any] struct {
	id     string
	opts   *Options
	policy hashagg.Policy[V]
	logger *logging.Logger
	stats  *stats.RunStatistics
	phase  Phase
	report stats.Report
}

func (r *run[V]) enter(phase Phase) {
	r.phase = phase
	r.logger.WithPhase(phase.String()).Debug("entering phase")
}

func (r *run[V]) fail(err error) error {
	r.logger.WithPhase(r.phase.String()).Error("run failed", "error", err)
	return errors.PhaseError{Phase: r.phase.String(), Err: err}
}

// Run aggregates keys with the given policy, as configured by opts. Configuration
// errors are returned before any task is scheduled. Any failure afterwards is returned
// as an errors.PhaseError naming the phase in which it occurred. The input is only read.
func Run[V any](keys []hashagg.Key, opts *Options, policy hashagg.Policy[V]) (*Result[V], error) {
	if opts == nil {
		return nil, errors.ConfigurationError{Reason: "Options must not be nil"}
	}
	conf := CloneOptions(opts)
	if err := ensureDefaultOptionsValues(conf); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("unable to generate run id: %w", err)
	}
	r := &run[V]{
		id:     id.String(),
		opts:   conf,
		policy: policy,
		logger: conf.Logger.WithRun(id.String(), conf.Method.String()),
		stats:  &stats.RunStatistics{},
		phase:  Idle,
	}
	r.report = stats.Report{RunID: r.id, Method: conf.Method.String(), NumKeys: len(keys)}
	r.logger.Info("starting run", "keys", len(keys), "workers", conf.Workers)
	r.stats.Start()

	var result hashagg.Map[V]
	switch conf.Method.Table {
	case TwoLevel:
		newMap := func() *table.TwoLevel[V] {
			return table.NewTwoLevel[V](*conf.BucketBits, r.tableOptions()...)
		}
		result, err = execute(r, keys, newMap, r.mergeTwoLevel)
	default:
		newMap := func() *table.Table[V] {
			return table.New[V](r.tableOptions()...)
		}
		result, err = execute(r, keys, newMap, mergeWith[V, *table.Table[V]](r))
	}
	if err != nil {
		return nil, err
	}

	if conf.Verify {
		r.enter(Verifying)
		if err := Verify(keys, result); err != nil {
			return nil, r.fail(err)
		}
	}
	r.enter(Done)
	r.logger.Info("run completed",
		"size", r.report.ResultSize,
		"elapsed", r.stats.GetRuntime().String(),
	)
	if conf.Reporter != nil {
		conf.Reporter.Report(r.report)
	}
	return &Result[V]{
		RunID:  r.id,
		Method: conf.Method,
		Table:  result,
		Report: r.report,
	}, nil
}

func (r *run[V]) tableOptions() []table.Option {
	if r.opts.MaxEntries > 0 {
		return []table.Option{table.WithMaxEntries(r.opts.MaxEntries)}
	}
	return nil
}

// execute drives a run through partitioning, aggregation and merging. The per-worker
// tables are handed to mergeFn, which owns them from then on.
func execute[V any, M hashagg.Map[V]](r *run[V], keys []hashagg.Key, newMap func() M, mergeFn func(tables []M) (M, error)) (hashagg.Map[V], error) {
	r.enter(Partitioning)
	ranges, err := partition.Ranges(len(keys), r.opts.Workers)
	if err != nil {
		return nil, r.fail(err)
	}

	r.enter(Aggregating)
	r.stats.StartPhase()
	tables, err := aggregate.Execute[V](keys, ranges, r.opts.Method.Aggregate, newMap, r.policy, r.opts.Pool)
	if err != nil {
		return nil, r.fail(err)
	}
	r.report.Aggregate = r.stats.EndPhase(Aggregating.String(), len(keys))
	r.enter(Aggregated)

	r.report.WorkerSizes = make([]int, len(tables))
	for i, t := range tables {
		r.report.WorkerSizes[i] = t.Len()
		r.report.SizeBeforeMerge += t.Len()
	}
	r.logger.Debug("aggregated",
		"elapsed", r.report.Aggregate.Elapsed.String(),
		"sizeBeforeMerge", r.report.SizeBeforeMerge,
	)

	r.enter(Merging)
	r.stats.StartPhase()
	result, err := mergeFn(tables)
	if err != nil {
		return nil, r.fail(err)
	}
	r.report.Merge = r.stats.EndPhase(Merging.String(), r.report.SizeBeforeMerge)
	r.report.ResultSize = result.Len()
	r.enter(Merged)
	return result, nil
}

// mergeWith returns a merge function for the run's (non bucket-parallel) merge strategy.
// The merge runs as a single task on the pool, so that panics surface as errors.
func mergeWith[V any, M hashagg.Map[V]](r *run[V]) func(tables []M) (M, error) {
	return func(tables []M) (M, error) {
		var result M
		fn, err := merge.ForKind[V, M](r.opts.Method.Merge)
		if err != nil {
			return result, err
		}
		err = runTask(r.opts.Pool, func() error {
			var err error
			result, err = fn(tables, r.policy)
			return err
		})
		return result, err
	}
}

func (r *run[V]) mergeTwoLevel(tables []*table.TwoLevel[V]) (*table.TwoLevel[V], error) {
	if r.opts.Method.Merge != merge.BucketParallel {
		return mergeWith[V, *table.TwoLevel[V]](r)(tables)
	}
	// MergeBuckets schedules its own tasks, so it must run on this goroutine
	return merge.MergeBuckets[V](tables, r.opts.Method.Inner, r.policy, r.opts.Pool)
}

// runTask runs one task on p and waits for it
func runTask(p *pool.Pool, task func() error) error {
	p.Schedule(task)
	return p.Wait()
}

// Package testing provides helpers for testing aggregation policies against every method
package testing

import (
	"fmt"
	"reflect"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/pipeline"
)

// Snapshot copies the contents of a table into a map
func Snapshot[V any](m hashagg.Map[V]) map[hashagg.Key]V {
	result := make(map[hashagg.Key]V, m.Len())
	m.ForEach(func(key hashagg.Key, v *V) bool {
		result[key] = *v
		return true
	})
	return result
}

// LocalRunAllMethods runs keys through every numbered method with a certain number of workers,
// returning a snapshot of each merged result keyed by method id. opts may be nil; its Workers
// and Method are overridden for every run.
func LocalRunAllMethods[V any](keys []hashagg.Key, opts *pipeline.Options, policy hashagg.Policy[V], numWorkers int) (results map[int]map[hashagg.Key]V, err error) {
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				panic(r)
			}
		}
	}()

	if opts == nil {
		opts = &pipeline.Options{}
	}
	results = make(map[int]map[hashagg.Key]V)
	for _, m := range pipeline.AllMethods() {
		runOpts := pipeline.CloneOptions(opts)
		runOpts.Workers = numWorkers
		runOpts.Method = m
		res, err := pipeline.Run(keys, runOpts, policy)
		if err != nil {
			return nil, fmt.Errorf("method %d (%s): %w", m.ID, m, err)
		}
		results[m.ID] = Snapshot(res.Table)
	}
	return results, nil
}

// CheckMethodsAgree runs keys through every numbered method, and returns an error unless
// all of them produce the same result. It returns the agreed result otherwise.
func CheckMethodsAgree[V any](keys []hashagg.Key, opts *pipeline.Options, policy hashagg.Policy[V], numWorkers int) (map[hashagg.Key]V, error) {
	results, err := LocalRunAllMethods(keys, opts, policy, numWorkers)
	if err != nil {
		return nil, err
	}
	first := pipeline.AllMethods()[0].ID
	for id, result := range results {
		if !reflect.DeepEqual(results[first], result) {
			return nil, fmt.Errorf("method %d disagrees with method %d", id, first)
		}
	}
	return results[first], nil
}

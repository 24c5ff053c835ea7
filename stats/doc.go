// Package stats records how long the phases of an aggregation run took, and reports them.
// Timings are captured by the goroutine driving a run, after each join barrier, as immutable
// PhaseTiming records; nothing in here is ever touched by aggregation or merge tasks.
package stats

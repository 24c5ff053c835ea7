package pipeline

import "fmt"

// Phase is the state of a run. A run moves through the phases in order, and never
// leaves Aggregating or Merging before the corresponding join barrier has returned.
type Phase int

const (
	// Idle is the state of a run which has not started
	Idle Phase = iota
	// Partitioning splits the input into one range per worker
	Partitioning
	// Aggregating runs one aggregation task per worker
	Aggregating
	// Aggregated is reached once every aggregation task has finished
	Aggregated
	// Merging combines the per-worker tables
	Merging
	// Merged is reached once every merge task has finished
	Merged
	// Verifying checks the merged table against the input, if requested
	Verifying
	// Done is the state of a completed run
	Done
)

// String returns the name of this Phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Partitioning:
		return "partitioning"
	case Aggregating:
		return "aggregating"
	case Aggregated:
		return "aggregated"
	case Merging:
		return "merging"
	case Merged:
		return "merged"
	case Verifying:
		return "verifying"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("pipeline.Phase(%d)", int(p))
	}
}

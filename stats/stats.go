package stats

import (
	"time"
)

// PhaseTiming is the immutable record of one completed phase of a run
type PhaseTiming struct {
	Phase    string        // Phase names the phase, e.g. "aggregating"
	Elapsed  time.Duration // Elapsed is the wall-clock duration of the phase
	Elements int           // Elements is the number of items the phase processed
}

// Throughput returns the number of elements processed per second
func (pt PhaseTiming) Throughput() float64 {
	if pt.Elapsed <= 0 {
		return 0
	}
	return float64(pt.Elements) / pt.Elapsed.Seconds()
}

// RunStatistics collects PhaseTimings for a single run. It is not synchronized, and
// is meant to be used only by the goroutine driving the run.
type RunStatistics struct {
	started               bool
	startTime             time.Time
	currentPhaseStartTime time.Time
	phases                []PhaseTiming
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start() {
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.phases = make([]PhaseTiming, 0, 2)
	}
}

// StartPhase tracks the beginning of a new phase
func (rs *RunStatistics) StartPhase() {
	rs.currentPhaseStartTime = time.Now()
}

// EndPhase tracks the end of the current phase, returning its record
func (rs *RunStatistics) EndPhase(phase string, elements int) PhaseTiming {
	pt := PhaseTiming{
		Phase:    phase,
		Elapsed:  time.Since(rs.currentPhaseStartTime),
		Elements: elements,
	}
	rs.phases = append(rs.phases, pt)
	return pt
}

// GetStartTime returns the start time of the run
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the time elapsed since the run started
func (rs *RunStatistics) GetRuntime() time.Duration {
	return time.Since(rs.startTime)
}

// GetPhases returns a copy of all recorded phases, in the order they ended
func (rs *RunStatistics) GetPhases() []PhaseTiming {
	phases := make([]PhaseTiming, len(rs.phases))
	copy(phases, rs.phases)
	return phases
}

package stats

import (
	"fmt"
	"io"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/go-sif/hashagg/logging"
)

// Report summarizes one completed run
type Report struct {
	RunID           string
	Method          string
	NumKeys         int
	Aggregate       PhaseTiming
	Merge           PhaseTiming
	WorkerSizes     []int // WorkerSizes holds the number of distinct keys in each worker's table before merging
	SizeBeforeMerge int   // SizeBeforeMerge is the sum of WorkerSizes
	ResultSize      int   // ResultSize is the number of distinct keys in the merged table
}

// Total returns the combined timing of aggregation and merging, measured against the input size
func (r Report) Total() PhaseTiming {
	return PhaseTiming{
		Phase:    "total",
		Elapsed:  r.Aggregate.Elapsed + r.Merge.Elapsed,
		Elements: r.NumKeys,
	}
}

// A Reporter publishes Reports. Reporters are called by the goroutine driving a run,
// after its final join barrier.
type Reporter interface {
	Report(r Report)
}

// TextReporter writes Reports as human-readable text
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a TextReporter writing to w
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func formatRate(pt PhaseTiming) string {
	return humanize.CommafWithDigits(pt.Throughput(), 2) + " elem/sec."
}

// Report writes r
func (tr *TextReporter) Report(r Report) {
	var b strings.Builder
	fmt.Fprintf(&b, "Method: %s\n", r.Method)
	fmt.Fprintf(&b, "Aggregated in %.2f (%s)\n", r.Aggregate.Elapsed.Seconds(), formatRate(r.Aggregate))
	sizes := make([]string, len(r.WorkerSizes))
	for i, s := range r.WorkerSizes {
		sizes[i] = humanize.Comma(int64(s))
	}
	fmt.Fprintf(&b, "Sizes: %s\n", strings.Join(sizes, ", "))
	fmt.Fprintf(&b, "Merged in %.2f (%s)\n", r.Merge.Elapsed.Seconds(), formatRate(r.Merge))
	total := r.Total()
	fmt.Fprintf(&b, "Total in %.2f (%s)\n", total.Elapsed.Seconds(), formatRate(total))
	fmt.Fprintf(&b, "Size: %s\n\n", humanize.Comma(int64(r.ResultSize)))
	io.WriteString(tr.w, b.String())
}

// LogReporter emits Reports as structured log records
type LogReporter struct {
	logger *logging.Logger
}

// NewLogReporter creates a LogReporter
func NewLogReporter(logger *logging.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report logs r
func (lr *LogReporter) Report(r Report) {
	total := r.Total()
	lr.logger.Info("run completed",
		"run", r.RunID,
		"method", r.Method,
		"keys", r.NumKeys,
		"aggregate_seconds", r.Aggregate.Elapsed.Seconds(),
		"aggregate_rate", r.Aggregate.Throughput(),
		"worker_sizes", r.WorkerSizes,
		"merge_seconds", r.Merge.Elapsed.Seconds(),
		"merge_rate", r.Merge.Throughput(),
		"total_seconds", total.Elapsed.Seconds(),
		"total_rate", total.Throughput(),
		"size", r.ResultSize,
	)
}

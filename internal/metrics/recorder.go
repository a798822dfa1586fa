package metrics

import "time"

// ResultLabel enumerates operation result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// RunOutcomeLabel enumerates the final status of a pipeline run.
type RunOutcomeLabel string

const (
	RunOutcomeSuccess RunOutcomeLabel = "success"
	RunOutcomeFailed  RunOutcomeLabel = "failed"
)

// Recorder defines observability hooks for publishing operations and runs.
// NoopRecorder is the default so callers never need nil checks.
type Recorder interface {
	ObserveOperationDuration(op string, d time.Duration)
	IncOperationResult(op string, result ResultLabel)
	AddPathsModified(op string, n int)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveOperationDuration(string, time.Duration) {}
func (NoopRecorder) IncOperationResult(string, ResultLabel)         {}
func (NoopRecorder) AddPathsModified(string, int)                   {}
func (NoopRecorder) ObserveRunDuration(time.Duration)               {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)                  {}

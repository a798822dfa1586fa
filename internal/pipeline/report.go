package pipeline

import (
	"time"
)

// StepResult records the outcome of one step.
type StepResult struct {
	Name     string
	Paths    []string
	Duration time.Duration
	Err      error
}

// Report describes one pipeline run.
type Report struct {
	RunID     string
	BaseDir   string
	StartTime time.Time
	Duration  time.Duration
	Steps     []StepResult
}

// TotalPaths returns the number of paths written across all steps.
func (r *Report) TotalPaths() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Paths)
	}
	return n
}

// Failed returns the failing step, if any.
func (r *Report) Failed() (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Err != nil {
			return s, true
		}
	}
	return StepResult{}, false
}

package metrics

import (
	"sync"
	"time"
)

// testRecorder counts calls so other packages' expectations can be mirrored here.
type testRecorder struct {
	mu          sync.Mutex
	durations   map[string]int
	results     map[string]map[ResultLabel]int
	paths       map[string]int
	runs        int
	runOutcomes map[RunOutcomeLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		durations:   map[string]int{},
		results:     map[string]map[ResultLabel]int{},
		paths:       map[string]int{},
		runOutcomes: map[RunOutcomeLabel]int{},
	}
}

func (t *testRecorder) ObserveOperationDuration(op string, _ time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.durations[op]++
}

func (t *testRecorder) IncOperationResult(op string, result ResultLabel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.results[op]
	if !ok {
		m = map[ResultLabel]int{}
		t.results[op] = m
	}
	m[result]++
}

func (t *testRecorder) AddPathsModified(op string, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paths[op] += n
}

func (t *testRecorder) ObserveRunDuration(time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs++
}

func (t *testRecorder) IncRunOutcome(outcome RunOutcomeLabel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runOutcomes[outcome]++
}

var (
	_ Recorder = (*testRecorder)(nil)
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

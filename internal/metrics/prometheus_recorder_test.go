package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveOperationDuration("add_doctype", 150*time.Millisecond)
	pr.IncOperationResult("add_doctype", ResultSuccess)
	pr.AddPathsModified("add_doctype", 3)
	pr.AddPathsModified("add_doctype", 0)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncRunOutcome(RunOutcomeSuccess)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 5)

	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				values[mf.GetName()] += c.GetValue()
			}
		}
	}
	assert.InDelta(t, 3, values["htmlpublish_paths_modified_total"], 0.0001)
	assert.InDelta(t, 1, values["htmlpublish_operation_results_total"], 0.0001)
	assert.InDelta(t, 1, values["htmlpublish_run_outcomes_total"], 0.0001)
	assert.Same(t, reg, pr.Registry())
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveOperationDuration("x", time.Second)
		pr.IncOperationResult("x", ResultFailed)
		pr.AddPathsModified("x", 1)
		pr.ObserveRunDuration(time.Second)
		pr.IncRunOutcome(RunOutcomeFailed)
	})
	assert.Nil(t, pr.Registry())
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncOperationResult("add_favicon", ResultFailed)

	path := filepath.Join(t.TempDir(), "textfile", "htmlpublish.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `htmlpublish_operation_results_total{operation="add_favicon",result="failed"} 1`), text)

	assert.NoError(t, WriteTextfile(path, nil))
}

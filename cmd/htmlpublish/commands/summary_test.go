package commands

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/htmlpublish/internal/pipeline"
)

func TestPrintReport(t *testing.T) {
	color.NoColor = true
	report := &pipeline.Report{
		RunID:    "run-1",
		BaseDir:  "/srv/site",
		Duration: 42 * time.Millisecond,
		Steps: []pipeline.StepResult{
			{Name: "add_access_file", Paths: []string{"/srv/site", "/srv/site/a"}, Duration: time.Millisecond},
			{Name: "add_doctype"},
			{Name: "add_script", Err: errors.New("write failed")},
		},
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "run run-1  /srv/site")
	assert.Contains(t, out, "✓ add_access_file")
	assert.Contains(t, out, "2 path(s)")
	assert.Contains(t, out, "- add_doctype")
	assert.Contains(t, out, "up to date")
	assert.Contains(t, out, "✗ add_script")
	assert.Contains(t, out, "write failed")
	assert.Contains(t, out, "2 path(s) written in 42ms")
}

func TestPrintPaths(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	printPaths(&buf, "add_favicon", nil)
	assert.Equal(t, "add_favicon: nothing to do\n", buf.String())

	buf.Reset()
	printPaths(&buf, "add_favicon", []string{"/a.html"})
	assert.Equal(t, "/a.html\nadd_favicon: 1 path(s) written\n", buf.String())
}

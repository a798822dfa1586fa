package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/htmlpublish/internal/pipeline"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	skipColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// printPaths lists the paths written by one operation followed by a count.
func printPaths(out io.Writer, op string, paths []string) {
	for _, p := range paths {
		_, _ = fmt.Fprintln(out, p)
	}
	if len(paths) == 0 {
		_, _ = skipColor.Fprintf(out, "%s: nothing to do\n", op)
		return
	}
	_, _ = okColor.Fprintf(out, "%s: %d path(s) written\n", op, len(paths))
}

// printReport writes a per-step summary of a pipeline run.
func printReport(out io.Writer, r *pipeline.Report) {
	_, _ = dimColor.Fprintf(out, "run %s  %s\n", r.RunID, r.BaseDir)
	for _, s := range r.Steps {
		switch {
		case s.Err != nil:
			_, _ = failColor.Fprintf(out, "  ✗ %-16s", s.Name)
			_, _ = fmt.Fprintf(out, " %v\n", s.Err)
		case len(s.Paths) == 0:
			_, _ = skipColor.Fprintf(out, "  - %-16s", s.Name)
			_, _ = fmt.Fprintf(out, " up to date (%s)\n", s.Duration.Round(time.Millisecond))
		default:
			_, _ = okColor.Fprintf(out, "  ✓ %-16s", s.Name)
			_, _ = fmt.Fprintf(out, " %d path(s) (%s)\n", len(s.Paths), s.Duration.Round(time.Millisecond))
		}
	}
	_, _ = fmt.Fprintf(out, "%d path(s) written in %s\n", r.TotalPaths(), r.Duration.Round(time.Millisecond))
}

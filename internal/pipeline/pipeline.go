// Package pipeline runs the configured post-processing steps against one
// documentation tree in a fixed order.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/htmlpublish/internal/config"
	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
	"git.home.luguber.info/inful/htmlpublish/internal/metrics"
	"git.home.luguber.info/inful/htmlpublish/internal/observability"
	"git.home.luguber.info/inful/htmlpublish/internal/publish"
)

// Step is one named operation bound to its configured arguments.
type Step struct {
	Name string
	Run  func(p *publish.Publisher, baseDir string) ([]string, error)
}

// Runner executes the steps derived from a Config.
type Runner struct {
	cfg       *config.Config
	publisher *publish.Publisher
	logger    *slog.Logger
	recorder  metrics.Recorder
	newID     func() string
}

// New creates a Runner. The publisher carries the filesystem and metrics
// used by each step; every step runs on its own copy, so p is never modified.
func New(cfg *config.Config, p *publish.Publisher) *Runner {
	return &Runner{
		cfg:       cfg,
		publisher: p,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
		newID:     func() string { return uuid.NewString() },
	}
}

// WithLogger sets the logger for run and step summaries.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// WithRecorder sets the recorder for run-level metrics.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// Run executes every configured step in order and stops at the first
// failure. The report is returned even when a step fails. Cancellation is
// checked between steps; a running step always completes.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: r.newID(), BaseDir: r.cfg.BaseDir, StartTime: start}
	ctx = observability.WithRunID(ctx, report.RunID)

	err := r.run(ctx, report)

	report.Duration = time.Since(start)
	r.recorder.ObserveRunDuration(report.Duration)
	if err != nil {
		r.recorder.IncRunOutcome(metrics.RunOutcomeFailed)
		observability.ErrorContext(ctx, r.logger, "Run failed",
			logfields.Root(report.BaseDir), logfields.Duration(report.Duration), logfields.Error(err))
		return report, err
	}
	r.recorder.IncRunOutcome(metrics.RunOutcomeSuccess)
	observability.InfoContext(ctx, r.logger, "Run complete",
		logfields.Root(report.BaseDir),
		logfields.Count(report.TotalPaths()),
		logfields.Duration(report.Duration))
	return report, nil
}

func (r *Runner) run(ctx context.Context, report *Report) error {
	steps, err := Steps(ctx, r.cfg, r.logger)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		observability.WarnContext(ctx, r.logger, "No steps configured", logfields.Root(r.cfg.BaseDir))
		return nil
	}

	skip := r.cfg.ShouldSkipIfPresent()
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		stepCtx := observability.WithStep(ctx, s.Name)
		stepStart := time.Now()
		pub := r.publisher.Clone().
			SkipIfPresent(skip).
			WithLogger(observability.Logger(stepCtx, r.logger))
		paths, err := s.Run(pub, r.cfg.BaseDir)
		report.Steps = append(report.Steps, StepResult{
			Name:     s.Name,
			Paths:    paths,
			Duration: time.Since(stepStart),
			Err:      err,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Steps builds the ordered step list from cfg: access file, stylesheet,
// doctype, script, favicon, analytics. Template files are read here, so a
// watch loop picks up template edits on the next run.
func Steps(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]Step, error) {
	var steps []Step

	if a := cfg.AccessFile; a != nil {
		source := a.Source
		steps = append(steps, Step{Name: publish.OpAccessFile, Run: func(p *publish.Publisher, dir string) ([]string, error) {
			return p.AddAccessFile(dir, source)
		}})
	}

	if s := cfg.Stylesheet; s != nil {
		source, entry, subdir := s.Source, s.EntryPoint, s.Subdir
		steps = append(steps, Step{Name: publish.OpStylesheet, Run: func(p *publish.Publisher, dir string) ([]string, error) {
			return p.WithStylesheetDir(subdir).AddStylesheet(dir, source, entry)
		}})
	}

	updates := []struct {
		name string
		tag  string
		tmpl *config.TemplateConfig
		run  func(p *publish.Publisher, dir, content string) ([]string, error)
	}{
		{publish.OpDoctype, publish.DoctypeTag, cfg.Doctype, (*publish.Publisher).AddDoctype},
		{publish.OpScript, publish.HeadCloseTag, cfg.Script, (*publish.Publisher).AddScript},
		{publish.OpFavicon, publish.HeadCloseTag, cfg.Favicon, (*publish.Publisher).AddFavicon},
	}
	for _, u := range updates {
		if u.tmpl == nil {
			continue
		}
		content, err := u.tmpl.Content()
		if err != nil {
			return nil, err
		}
		warnMissingTag(ctx, logger, u.name, u.tag, content)
		run := u.run
		steps = append(steps, Step{Name: u.name, Run: func(p *publish.Publisher, dir string) ([]string, error) {
			return run(p, dir, content)
		}})
	}

	if a := cfg.Analytics; a != nil {
		content, err := a.Content()
		if err != nil {
			return nil, err
		}
		warnMissingTag(ctx, logger, publish.OpAnalytics, publish.BodyCloseTag, content)
		id := a.ID
		steps = append(steps, Step{Name: publish.OpAnalytics, Run: func(p *publish.Publisher, dir string) ([]string, error) {
			return p.AddAnalytics(dir, id, content)
		}})
	}

	return steps, nil
}

// warnMissingTag flags templates that drop the tag they replace, which
// removes the tag from every page.
func warnMissingTag(ctx context.Context, logger *slog.Logger, step, tag, content string) {
	if !strings.Contains(content, tag) {
		observability.WarnContext(ctx, logger, "Template does not contain the tag it replaces",
			logfields.Step(step), logfields.Tag(tag))
	}
}

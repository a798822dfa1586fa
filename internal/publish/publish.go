// Package publish exposes the named post-processing operations applied to a
// generated HTML documentation tree.
//
// Every operation performs one full traversal and returns the paths it
// created, overwrote or rewrote. Package-level functions operate on the host
// filesystem; construct a Publisher to inject a filesystem, logger or
// metrics recorder.
package publish

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlpublish/internal/filters"
	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
	"git.home.luguber.info/inful/htmlpublish/internal/metrics"
	"git.home.luguber.info/inful/htmlpublish/internal/tree"
)

// Tags matched by the fixed update operations.
const (
	DoctypeTag   = "<html>"
	HeadCloseTag = "</head>"
	BodyCloseTag = "</body>"
)

const (
	// AnalyticsPlaceholder is replaced with the tracking ID in analytics templates.
	AnalyticsPlaceholder = "ANALYTICS-ID"
	// StylesheetDir is the subdirectory that receives the stylesheet.
	StylesheetDir = "css"
	// HTMLSuffix selects the files rewritten by update operations.
	HTMLSuffix = ".html"
)

// Operation names used for logging and metrics labels.
const (
	OpAccessFile = "add_access_file"
	OpStylesheet = "add_stylesheet"
	OpDoctype    = "add_doctype"
	OpScript     = "add_script"
	OpFavicon    = "add_favicon"
	OpAnalytics  = "add_analytics"
	OpUpdate     = "update_html"
)

// HTMLFilter admits visible directories and files ending in .html. Hidden
// .html files are admitted; only hidden directories are pruned.
var HTMLFilter = filters.Or(
	filters.And(filters.IsDirectory, filters.IsVisible),
	filters.And(filters.IsFile, filters.HasSuffix(HTMLSuffix)),
)

// Publisher runs the operations against an injected filesystem.
type Publisher struct {
	fs            afero.Fs
	logger        *slog.Logger
	recorder      metrics.Recorder
	skipIfPresent bool
	stylesheetDir string
}

// New creates a Publisher over fsys (the host filesystem when nil). Updates
// skip files that already contain their replacement, so re-running an
// operation is a no-op.
func New(fsys afero.Fs) *Publisher {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Publisher{
		fs:            fsys,
		logger:        slog.Default(),
		recorder:      metrics.NoopRecorder{},
		skipIfPresent: true,
		stylesheetDir: StylesheetDir,
	}
}

// Clone returns a copy that can be reconfigured without affecting p.
func (p *Publisher) Clone() *Publisher {
	c := *p
	return &c
}

// WithLogger sets the logger passed down to every traversal.
func (p *Publisher) WithLogger(l *slog.Logger) *Publisher {
	if l != nil {
		p.logger = l
	}
	return p
}

// WithRecorder sets the metrics recorder.
func (p *Publisher) WithRecorder(r metrics.Recorder) *Publisher {
	if r != nil {
		p.recorder = r
	}
	return p
}

// SkipIfPresent controls whether updates leave alone files that already
// contain the replacement. Disabling it re-applies templates on every run.
func (p *Publisher) SkipIfPresent(skip bool) *Publisher {
	p.skipIfPresent = skip
	return p
}

// WithStylesheetDir changes the subdirectory that receives the stylesheet.
// An empty dir places it next to the entry point.
func (p *Publisher) WithStylesheetDir(dir string) *Publisher {
	p.stylesheetDir = dir
	return p
}

// AddAccessFile copies accessFile into baseDir and every directory below it.
func (p *Publisher) AddAccessFile(baseDir, accessFile string) ([]string, error) {
	start := time.Now()
	paths, err := tree.NewCopier(p.fs, accessFile).
		WithLogger(p.logger).
		Copy(baseDir)
	return p.finish(OpAccessFile, baseDir, start, paths, err, logfields.Source(accessFile))
}

// AddStylesheet copies cssFile into the css/ subdirectory (see
// WithStylesheetDir) of every directory holding a file whose name ends with
// entryPoint.
func (p *Publisher) AddStylesheet(baseDir, cssFile, entryPoint string) ([]string, error) {
	start := time.Now()
	if entryPoint == "" {
		return p.finish(OpStylesheet, baseDir, start, nil,
			ferrors.ValidationError("entry point must not be empty").Build())
	}
	match := filters.And(filters.IsFile, filters.NameEndsWith(entryPoint))
	paths, err := tree.NewFilteredCopier(p.fs, cssFile, match, p.stylesheetDir).
		WithLogger(p.logger).
		Copy(baseDir)
	return p.finish(OpStylesheet, baseDir, start, paths, err, logfields.Source(cssFile))
}

// UpdateHTML replaces the first occurrence of tag with replacement in every
// .html file below baseDir, skipping hidden directories.
func (p *Publisher) UpdateHTML(baseDir, tag, replacement string) ([]string, error) {
	return p.update(OpUpdate, baseDir, tag, replacement)
}

// AddDoctype inserts template in place of the opening <html> tag.
func (p *Publisher) AddDoctype(baseDir, template string) ([]string, error) {
	return p.update(OpDoctype, baseDir, DoctypeTag, template)
}

// AddScript inserts template in place of the closing head tag.
func (p *Publisher) AddScript(baseDir, template string) ([]string, error) {
	return p.update(OpScript, baseDir, HeadCloseTag, template)
}

// AddFavicon inserts template in place of the closing head tag.
func (p *Publisher) AddFavicon(baseDir, template string) ([]string, error) {
	return p.update(OpFavicon, baseDir, HeadCloseTag, template)
}

// AddAnalytics substitutes id for every ANALYTICS-ID in template and inserts
// the result in place of the closing body tag. A template without the
// placeholder is used unchanged. An empty id is rejected with a validation
// error before the tree is touched.
func (p *Publisher) AddAnalytics(baseDir, id, template string) ([]string, error) {
	if id == "" {
		return p.finish(OpAnalytics, baseDir, time.Now(), nil,
			ferrors.ValidationError("analytics id must not be empty").Build())
	}
	if !strings.Contains(template, AnalyticsPlaceholder) {
		p.logger.Warn("Analytics template has no placeholder; id not injected",
			logfields.Operation(OpAnalytics))
	}
	return p.update(OpAnalytics, baseDir, BodyCloseTag, InjectAnalyticsID(template, id))
}

// InjectAnalyticsID returns template with every placeholder replaced by id.
func InjectAnalyticsID(template, id string) string {
	return strings.ReplaceAll(template, AnalyticsPlaceholder, id)
}

func (p *Publisher) update(op, baseDir, tag, replacement string) ([]string, error) {
	start := time.Now()
	paths, err := tree.NewUpdater(p.fs, tag, replacement).
		WithFilter(HTMLFilter).
		SkipIfPresent(p.skipIfPresent).
		WithLogger(p.logger).
		Update(baseDir)
	return p.finish(op, baseDir, start, paths, err, logfields.Tag(tag))
}

// finish records metrics and the summary log line for one operation.
func (p *Publisher) finish(op, baseDir string, start time.Time, paths []string, err error, attrs ...slog.Attr) ([]string, error) {
	d := time.Since(start)
	p.recorder.ObserveOperationDuration(op, d)

	base := []any{logfields.Operation(op), logfields.Root(baseDir), logfields.Duration(d)}
	for _, a := range attrs {
		base = append(base, a)
	}

	if err != nil {
		p.recorder.IncOperationResult(op, metrics.ResultFailed)
		p.logger.Error("Operation failed", append(base, logfields.Error(err))...)
		return nil, err
	}

	result := metrics.ResultSuccess
	if len(paths) == 0 {
		result = metrics.ResultSkipped
	}
	p.recorder.IncOperationResult(op, result)
	p.recorder.AddPathsModified(op, len(paths))
	p.logger.Info("Operation complete", append(base, logfields.Count(len(paths)))...)
	return paths, nil
}

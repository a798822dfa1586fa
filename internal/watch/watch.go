// Package watch re-runs a function whenever files below a directory tree
// change, with debouncing.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc is invoked once at start and after every settled burst of changes.
type RunFunc func(ctx context.Context) error

// Options tunes a Watcher.
type Options struct {
	// Debounce is the quiet period before a run is triggered. It is also how
	// long changes are ignored after a run, so the run's own writes do not
	// trigger another one.
	Debounce time.Duration
	// IgnoreNames lists base names that never trigger a run, such as the
	// assets the run copies into every directory.
	IgnoreNames []string
	// Files lists extra files, usually outside the tree, whose changes
	// trigger a run (templates, assets, the config file).
	Files []string
}

// Watcher watches a tree and calls its RunFunc on changes.
type Watcher struct {
	root   string
	run    RunFunc
	opts   Options
	logger *slog.Logger
	ignore map[string]struct{}
	files  map[string]struct{}

	running       atomic.Bool
	suppressUntil atomic.Int64
}

// New creates a Watcher for root.
func New(root string, run RunFunc, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	w := &Watcher{
		root:   filepath.Clean(root),
		run:    run,
		opts:   opts,
		logger: slog.Default(),
		ignore: make(map[string]struct{}, len(opts.IgnoreNames)),
		files:  make(map[string]struct{}, len(opts.Files)),
	}
	if abs, err := filepath.Abs(w.root); err == nil {
		w.root = abs
	}
	for _, n := range opts.IgnoreNames {
		w.ignore[n] = struct{}{}
	}
	for _, f := range opts.Files {
		if abs, err := filepath.Abs(f); err == nil {
			w.files[abs] = struct{}{}
		}
	}
	return w
}

// WithLogger sets the logger.
func (w *Watcher) WithLogger(l *slog.Logger) *Watcher {
	if l != nil {
		w.logger = l
	}
	return w
}

// Run performs an initial run and then watches until ctx is done. Failed
// runs are logged and watching continues. Only a watcher setup failure is
// returned.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := w.setupFileWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	w.execute(ctx)

	ctx, cancel := context.WithCancel(ctx)
	rebuildReq, trigger, stop := newDebouncer(w.opts.Debounce)
	done := make(chan struct{})
	go w.worker(ctx, rebuildReq, done)
	defer func() {
		stop()
		cancel()
		<-done
	}()

	w.logger.Info("Watching for changes", logfields.Root(w.root))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watch stopped", logfields.Root(w.root))
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// setupFileWatcher creates the fsnotify watcher over the tree and the
// directories holding extra files.
func (w *Watcher) setupFileWatcher() (*fsnotify.Watcher, error) {
	info, err := os.Stat(w.root)
	if err != nil || !info.IsDir() {
		return nil, ferrors.ConfigError("watch root is not a directory").
			WithCause(err).
			WithContext("path", w.root).
			Build()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "cannot create file watcher").Build()
	}
	w.addDirsRecursive(watcher, w.root)
	for f := range w.files {
		if dir := filepath.Dir(f); !w.underRoot(dir) {
			if err := watcher.Add(dir); err != nil {
				w.logger.Warn("Watch add failed", logfields.Path(dir), logfields.Error(err))
			}
		}
	}
	return watcher, nil
}

// newDebouncer returns a request channel, a trigger that fires the channel
// once the debounce interval passes without another trigger, and a stop func.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

func (w *Watcher) worker(ctx context.Context, req <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			w.logger.Info("Change detected; re-running", logfields.Root(w.root))
			w.execute(ctx)
		}
	}
}

// execute runs once and opens the suppression window for the run's own writes.
func (w *Watcher) execute(ctx context.Context) {
	w.running.Store(true)
	defer func() {
		w.suppressUntil.Store(time.Now().Add(w.opts.Debounce).UnixNano())
		w.running.Store(false)
	}()
	if err := w.run(ctx); err != nil {
		w.logger.Warn("Run failed; waiting for further changes", logfields.Error(err))
	}
}

func (w *Watcher) handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.shouldIgnoreEvent(ev.Name) {
		return
	}
	if w.running.Load() || time.Now().UnixNano() < w.suppressUntil.Load() {
		w.logger.Debug("Ignoring change written by run", logfields.Path(ev.Name))
		return
	}
	if ev.Has(fsnotify.Create) && w.underRoot(ev.Name) {
		if fi, err := os.Lstat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(watcher, ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	trigger()
}

// addDirsRecursive watches root and every visible directory below it.
// Symlinked directories are not followed.
func (w *Watcher) addDirsRecursive(watcher *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for events that should not trigger a run.
func (w *Watcher) shouldIgnoreEvent(path string) bool {
	if _, ok := w.files[path]; ok {
		return false
	}
	if !w.underRoot(path) {
		return true
	}

	base := filepath.Base(path)
	if _, ok := w.ignore[base]; ok {
		return true
	}

	// Hidden files include the updater's temp files.
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}

func (w *Watcher) underRoot(path string) bool {
	return path == w.root || strings.HasPrefix(path, w.root+string(filepath.Separator))
}

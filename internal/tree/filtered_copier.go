package tree

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlpublish/internal/filters"
	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
)

// FilteredCopier copies one source file into <dir>/<subpath>/ for every
// directory under the root that contains at least one entry admitted by match.
//
// Every non-symlink subdirectory is examined, whether or not its parent
// qualified. The subpath directory is created when missing.
type FilteredCopier struct {
	fs      afero.Fs
	source  string
	match   filters.Filter
	subpath string
	logger  *slog.Logger
}

// NewFilteredCopier creates a FilteredCopier. An empty subpath copies the
// source next to the matching entry.
func NewFilteredCopier(fsys afero.Fs, source string, match filters.Filter, subpath string) *FilteredCopier {
	return &FilteredCopier{
		fs:      fsys,
		source:  source,
		match:   filters.OrAll(match),
		subpath: subpath,
		logger:  slog.Default(),
	}
}

// WithLogger sets the logger used for per-directory debug output.
func (c *FilteredCopier) WithLogger(l *slog.Logger) *FilteredCopier {
	if l != nil {
		c.logger = l
	}
	return c
}

// Copy walks root and returns the <dir>/<subpath> directories that received
// a copy, in traversal order.
func (c *FilteredCopier) Copy(root string) ([]string, error) {
	if c.subpath != "" && !filepath.IsLocal(c.subpath) {
		return nil, ferrors.ConfigError("subpath must be relative and stay below each directory").
			WithContext("path", c.subpath).
			Build()
	}
	if err := checkRoot(c.fs, root); err != nil {
		return nil, err
	}
	a, err := loadAsset(c.fs, c.source)
	if err != nil {
		return nil, err
	}

	var copied []string
	if err := c.visit(root, a, &copied); err != nil {
		return nil, err
	}
	return copied, nil
}

func (c *FilteredCopier) visit(dir string, a *asset, copied *[]string) error {
	// Listing happens before the copy, so a subpath created here is not
	// examined until the next run.
	entries, err := listDir(c.fs, dir)
	if err != nil {
		return err
	}

	if c.qualifies(entries) {
		target := filepath.Join(dir, c.subpath)
		if err := c.fs.MkdirAll(target, 0o755); err != nil {
			return ioError(err, "cannot create directory", target)
		}
		dest, err := a.writeTo(c.fs, target)
		if err != nil {
			return err
		}
		*copied = append(*copied, target)
		c.logger.Debug("Copied asset", logfields.Path(dest))
	}

	for _, e := range entries {
		if !e.IsDir || e.IsSymlink {
			continue
		}
		if err := c.visit(e.Path(), a, copied); err != nil {
			return err
		}
	}
	return nil
}

func (c *FilteredCopier) qualifies(entries []filters.Entry) bool {
	for _, e := range entries {
		if c.match(e) {
			return true
		}
	}
	return false
}

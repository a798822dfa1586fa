package tree

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/htmlpublish/internal/filters"
	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
)

// Copier copies one source file into every directory of a tree admitted by
// its filter.
//
// Every directory below the root is visited, including the children of
// directories the filter rejects; the filter only decides which directories
// receive a copy. The root is checked like any other directory. Existing
// files of the same name are overwritten.
type Copier struct {
	fs     afero.Fs
	source string
	filter filters.Filter
	logger *slog.Logger
}

// NewCopier creates a Copier for source. Without WithFilter every directory qualifies.
func NewCopier(fsys afero.Fs, source string) *Copier {
	return &Copier{
		fs:     fsys,
		source: source,
		filter: filters.AcceptAll,
		logger: slog.Default(),
	}
}

// WithFilter restricts the directories that receive a copy.
func (c *Copier) WithFilter(f filters.Filter) *Copier {
	c.filter = filters.OrAll(f)
	return c
}

// WithLogger sets the logger used for per-directory debug output.
func (c *Copier) WithLogger(l *slog.Logger) *Copier {
	if l != nil {
		c.logger = l
	}
	return c
}

// Copy walks root and returns the directories that received a copy, in
// traversal order.
func (c *Copier) Copy(root string) ([]string, error) {
	if err := checkRoot(c.fs, root); err != nil {
		return nil, err
	}
	a, err := loadAsset(c.fs, c.source)
	if err != nil {
		return nil, err
	}

	self, err := rootEntry(c.fs, root)
	if err != nil {
		return nil, err
	}

	var copied []string
	if err := c.visit(root, self, a, &copied); err != nil {
		return nil, err
	}
	return copied, nil
}

func (c *Copier) visit(path string, dir filters.Entry, a *asset, copied *[]string) error {
	if c.filter(dir) {
		dest, err := a.writeTo(c.fs, path)
		if err != nil {
			return err
		}
		*copied = append(*copied, path)
		c.logger.Debug("Copied asset", logfields.Path(dest))
	}

	entries, err := listDir(c.fs, path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir || e.IsSymlink {
			continue
		}
		if err := c.visit(e.Path(), e, a, copied); err != nil {
			return err
		}
	}
	return nil
}

// rootEntry describes root as an entry of its parent, so filters see its
// name. Relative roots such as "." are resolved first.
func rootEntry(fsys afero.Fs, root string) (filters.Entry, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return filters.Entry{}, ioError(err, "cannot stat directory", root)
	}
	named := filepath.Clean(root)
	if abs, err := filepath.Abs(named); err == nil {
		named = abs
	}
	e := filters.NewEntry(filepath.Dir(named), info)
	e.Name = filepath.Base(named)
	return e, nil
}

package tree

import (
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlpublish/internal/filters"
	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
)

// Updater replaces the first occurrence of a tag with a replacement in every
// file admitted by its filter.
//
// The filter governs both descent and selection: admitted directories are
// walked, admitted regular files are rewritten. The root itself is always
// walked. Files that do not contain the tag are left untouched and are not
// reported. A matching file that is not writable aborts the walk.
type Updater struct {
	fs            afero.Fs
	tag           string
	replacement   string
	filter        filters.Filter
	skipIfPresent bool
	logger        *slog.Logger
}

// NewUpdater creates an Updater. Without WithFilter every entry is admitted.
func NewUpdater(fsys afero.Fs, tag, replacement string) *Updater {
	return &Updater{
		fs:          fsys,
		tag:         tag,
		replacement: replacement,
		filter:      filters.AcceptAll,
		logger:      slog.Default(),
	}
}

// WithFilter restricts the entries that are walked and rewritten.
func (u *Updater) WithFilter(f filters.Filter) *Updater {
	u.filter = filters.OrAll(f)
	return u
}

// SkipIfPresent leaves files alone when they already contain the replacement.
// Templates usually embed their own tag, so without this a second run
// inserts the template again.
func (u *Updater) SkipIfPresent(skip bool) *Updater {
	u.skipIfPresent = skip
	return u
}

// WithLogger sets the logger used for per-file debug output.
func (u *Updater) WithLogger(l *slog.Logger) *Updater {
	if l != nil {
		u.logger = l
	}
	return u
}

// Update walks root and returns the files that were rewritten, in traversal order.
func (u *Updater) Update(root string) ([]string, error) {
	if u.tag == "" {
		return nil, ferrors.ValidationError("tag to replace must not be empty").Build()
	}
	if err := checkRoot(u.fs, root); err != nil {
		return nil, err
	}

	var updated []string
	if err := u.visit(root, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *Updater) visit(dir string, updated *[]string) error {
	entries, err := listDir(u.fs, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsSymlink || !u.filter(e) {
			continue
		}
		if e.IsDir {
			if err := u.visit(e.Path(), updated); err != nil {
				return err
			}
			continue
		}
		if !e.IsRegular() {
			continue
		}
		changed, err := u.updateFile(e)
		if err != nil {
			return err
		}
		if changed {
			*updated = append(*updated, e.Path())
		}
	}
	return nil
}

func (u *Updater) updateFile(e filters.Entry) (bool, error) {
	path := e.Path()
	data, err := afero.ReadFile(u.fs, path)
	if err != nil {
		return false, ioError(err, "read failed", path)
	}

	content := string(data)
	if !strings.Contains(content, u.tag) {
		u.logger.Debug("Tag not found", logfields.Path(path), logfields.Tag(u.tag))
		return false, nil
	}
	if u.skipIfPresent && strings.Contains(content, u.replacement) {
		u.logger.Debug("Replacement already present", logfields.Path(path))
		return false, nil
	}

	if err := checkWritable(u.fs, path, e.Mode.Perm()); err != nil {
		return false, ioError(err, "write failed", path)
	}
	content = strings.Replace(content, u.tag, u.replacement, 1)
	if err := writeFileAtomic(u.fs, path, []byte(content), e.Mode.Perm()); err != nil {
		return false, ioError(err, "write failed", path)
	}
	u.logger.Debug("Updated file", logfields.Path(path), logfields.Tag(u.tag))
	return true, nil
}

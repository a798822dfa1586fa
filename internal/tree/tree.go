package tree

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlpublish/internal/filters"
)

// checkRoot verifies that root exists and is a directory.
func checkRoot(fsys afero.Fs, root string) error {
	info, err := fsys.Stat(root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return ferrors.ConfigError("base directory does not exist").
				WithContext("path", root).
				Build()
		}
		return ferrors.ConfigError("cannot access base directory").
			WithCause(err).
			WithContext("path", root).
			Build()
	}
	if !info.IsDir() {
		return ferrors.ConfigError("base directory is not a directory").
			WithContext("path", root).
			Build()
	}
	return nil
}

// asset is a source file loaded once per traversal.
type asset struct {
	name string
	data []byte
	perm fs.FileMode
}

// loadAsset reads the source file fully before any destination is touched.
func loadAsset(fsys afero.Fs, source string) (*asset, error) {
	info, err := fsys.Stat(source)
	if err != nil {
		msg := "cannot access asset file"
		if stderrors.Is(err, fs.ErrNotExist) {
			msg = "asset file does not exist"
		}
		return nil, ferrors.ConfigError(msg).
			WithCause(err).
			WithContext("path", source).
			Build()
	}
	if info.IsDir() {
		return nil, ferrors.ConfigError("asset file is a directory").
			WithContext("path", source).
			Build()
	}
	data, err := afero.ReadFile(fsys, source)
	if err != nil {
		return nil, ferrors.ConfigError("asset file is not readable").
			WithCause(err).
			WithContext("path", source).
			Build()
	}
	return &asset{name: filepath.Base(source), data: data, perm: info.Mode().Perm()}, nil
}

// writeTo writes the asset into dir, replacing any file of the same name.
func (a *asset) writeTo(fsys afero.Fs, dir string) (string, error) {
	dest := filepath.Join(dir, a.name)
	if err := afero.WriteFile(fsys, dest, a.data, a.perm); err != nil {
		return "", ioError(err, "copy failed", dest)
	}
	return dest, nil
}

// listDir returns the entries of dir in lexical order.
func listDir(fsys afero.Fs, dir string) ([]filters.Entry, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, ioError(err, "cannot read directory", dir)
	}
	entries := make([]filters.Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, filters.NewEntry(dir, info))
	}
	return entries, nil
}

func ioError(cause error, msg, path string) error {
	return ferrors.WrapError(cause, ferrors.CategoryFileSystem, msg).
		WithContext("path", path).
		Build()
}

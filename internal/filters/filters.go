// Package filters provides composable predicates over filesystem entries.
//
// A Filter decides whether a traversal should act on (or descend into) an
// entry. Filters are plain function values and compose with And, Or and Not:
//
//	htmlTree := filters.Or(
//		filters.And(filters.IsDirectory, filters.IsVisible),
//		filters.And(filters.IsFile, filters.HasSuffix(".html")),
//	)
package filters

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// HiddenPrefix marks a hidden file or directory name.
const HiddenPrefix = "."

// Entry describes one filesystem entry as seen from a directory listing.
type Entry struct {
	Dir       string
	Name      string
	IsDir     bool
	IsSymlink bool
	Mode      fs.FileMode
}

// NewEntry builds an Entry for a listing result of dir.
func NewEntry(dir string, info fs.FileInfo) Entry {
	return Entry{
		Dir:       dir,
		Name:      info.Name(),
		IsDir:     info.IsDir(),
		IsSymlink: info.Mode()&fs.ModeSymlink != 0,
		Mode:      info.Mode(),
	}
}

// Path returns the full path of the entry.
func (e Entry) Path() string {
	return filepath.Join(e.Dir, e.Name)
}

// IsHidden reports whether the entry name starts with HiddenPrefix.
func (e Entry) IsHidden() bool {
	return strings.HasPrefix(e.Name, HiddenPrefix)
}

// IsRegular reports whether the entry is a plain file.
func (e Entry) IsRegular() bool {
	return e.Mode.IsRegular()
}

// Filter is a pure predicate over an Entry.
type Filter func(Entry) bool

// AcceptAll admits every entry.
func AcceptAll(Entry) bool { return true }

// IsDirectory admits directories.
func IsDirectory(e Entry) bool { return e.IsDir }

// IsFile admits anything that is not a directory.
func IsFile(e Entry) bool { return !e.IsDir }

// IsVisible admits entries whose name does not start with HiddenPrefix.
func IsVisible(e Entry) bool { return !e.IsHidden() }

// HasSuffix admits entries whose name ends with any of the literal suffixes.
// Matching is case-sensitive.
func HasSuffix(suffixes ...string) Filter {
	return func(e Entry) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(e.Name, s) {
				return true
			}
		}
		return false
	}
}

// NameEquals admits entries named exactly name.
func NameEquals(name string) Filter {
	return func(e Entry) bool { return e.Name == name }
}

// NameEndsWith admits entries whose name ends with s.
func NameEndsWith(s string) Filter {
	return HasSuffix(s)
}

// And admits an entry only when every filter does. And() admits everything.
// Nil filters are ignored.
func And(preds ...Filter) Filter {
	return func(e Entry) bool {
		for _, f := range preds {
			if f != nil && !f(e) {
				return false
			}
		}
		return true
	}
}

// Or admits an entry when at least one filter does. Or() admits nothing.
// Nil filters are ignored.
func Or(preds ...Filter) Filter {
	return func(e Entry) bool {
		for _, f := range preds {
			if f != nil && f(e) {
				return true
			}
		}
		return false
	}
}

// Not inverts f.
func Not(f Filter) Filter {
	return func(e Entry) bool { return !f(e) }
}

// OrAll returns f, or AcceptAll when f is nil.
func OrAll(f Filter) Filter {
	if f == nil {
		return AcceptAll
	}
	return f
}

// Package tree implements the recursive traversals that post-process a
// generated documentation tree.
//
// Three components share one traversal model:
//
//   - Copier copies a source asset into every qualifying directory.
//   - FilteredCopier copies a source asset into a subdirectory of every
//     directory that holds a matching entry (for example an entry point).
//   - Updater rewrites files by replacing the first occurrence of a tag.
//
// Traversal is depth-first with directory entries in lexical order, so result
// slices are deterministic. Symbolic links, to files or directories, are never
// followed or modified. All I/O goes through an afero.Fs.
//
// Errors are classified: a missing or unusable root or asset is a
// CategoryConfig error raised before anything is written; a failure while
// walking or writing is a CategoryFileSystem error that aborts the traversal.
// Nothing is rolled back, so writes completed before the failure remain.
package tree

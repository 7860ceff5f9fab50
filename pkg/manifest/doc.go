// Package manifest locates dependency declarations inside Cargo manifests.
//
// The scanner is line-oriented and deliberately not a TOML parser: it runs on
// every completion request, on text that is usually mid-edit and therefore
// often invalid TOML. [Scan] makes a single forward pass and produces a
// [Structure] recording
//
//   - the span of the inline [dependencies] table, and
//   - every [dependencies.<name>] table with the line of its version key and
//     the span of its features array.
//
// Positions are zero-based line indices and byte offsets within a line.
// [NotFound] (-1) marks absent lines and characters.
//
// [Workspace] memoizes structures per document and rebuilds them only when
// the document text changes. [Discover] walks a directory tree and loads every
// Cargo.toml it finds into a Workspace. [ReadMeta] is the one place where a
// real TOML decoder is used, for package and workspace metadata of saved
// manifests.
package manifest

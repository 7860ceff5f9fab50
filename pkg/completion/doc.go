// Package completion turns a cursor position in a Cargo manifest into an
// ordered list of suggestions for crate names, versions and features.
//
// A request flows through four stages:
//
//	text ──manifest.Scan──▶ Structure ──Resolve──▶ Context ──Engine──▶ List
//
// [Resolve] is purely positional. It never tokenizes the document; it looks
// at the current line, the dependency tables found by the scanner, and the
// cursor, and picks one [Context] variant. The [Engine] then fetches what
// the variant needs from the crate data service and builds the [List].
//
// The engine is total: registry failures, unknown versions and ambiguous
// text all degrade to an empty list. Errors are logged and reported to
// [observability.CompletionHooks], never returned to the editor.
package completion

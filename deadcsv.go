// # DeadCSV: A Schema-Bound Streaming DSV Library for Go
//
// DeadCSV is a dead-simple Go library for streaming delimiter-separated records whose shape is fixed ahead of time by an ordered field schema. It keeps allocations low by reusing one line buffer across reads and slicing records out of it without copying.
//
// # Features
//
// - Ordered field schemas with a cached header line and a caller-chosen single-byte separator.
// - Streaming reader with strict per-line field-count enforcement and zero-copy field views.
// - Optional header validation on the reader and header emission on the writer.
// - Buffered writer emitting exactly one separator between fields and one newline per record.
// - Structured error reporting via `ParseError`, `ErrEmptySchema`, `ErrHeaderMismatch`, and `ErrFieldCount`.
// - Benchmarks, a round-trip fuzz target, and table-driven unit tests for regression protection.
//
// # Format
//
// Plain bytes, one record per line, lines terminated by a single `\n`. No quoting and no escaping: field values must not contain the separator or a newline, and values that do produce detectably malformed lines rather than silent corruption. Records returned by `Reader.Read` borrow the reader's internal buffer and are valid only until the next read; set `CopyFields` or use `ReadAll` when records must outlive it.
//
// # Getting Started
//
// The module path is `github.com/floppyMike/deadcsv`. Build a `Schema` once, then hand it to `NewReader` or `NewWriter` together with the stream.
package deadcsv

// Package tac implements the record-reversal engine behind the tac command.
//
// The engine takes a complete, read-only input buffer and writes its records
// to a sink in reverse order. Separator bytes keep their exact placement:
// in After mode a separator ends the record to its left, in Before mode it
// starts the record to its right.
//
// PIPELINE:
//
//  1. Locate: find every separator occurrence (byte, byte string or regular
//     expression) as an ascending list of Match values.
//  2. Assemble: turn matches into record Spans, ordered last record first.
//  3. Write: emit the spans through one contiguous write for small inputs, or
//     batched vectored writes that reference the input directly for large
//     inputs.
//
// Each stage is a pure function of the previous stage's output. Only the
// writer performs I/O.
//
// The engine is synchronous and holds no state between calls. Cancellation
// is achieved by making the sink fail; the error is returned unchanged and no
// further records are written.
//
// Regular-expression separators are found with a backward search over a
// shrinking right bound. Each reduction re-scans one byte at a time, so the
// worst case is quadratic in the input length.
package tac

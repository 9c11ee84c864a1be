// Package domain implements record-boundary recovery for NCEI storm-events
// CSV exports whose formatting convention changed partway through the
// archive's history.
//
// # Export Conventions
//
// The export is the result of a multi-decade NCEI storm events search. Every
// record carries a trailing ABSOLUTE_ROWNUMBER column that increments by one
// starting at 1 — the only reliable record-boundary signal in the file.
//
// Modern records (roughly mid-2006 onward) are conventional CSV: one
// physical line per record, quoted narrative fields, '|' used inside
// narratives as a paragraph separator.
//
// Early records (1996 to mid-2006) are malformed: the EVENT_NARRATIVE field
// ends with a literal `"","` marker on the record's first physical line, the
// EPISODE_NARRATIVE text then continues across subsequent lines without any
// quoting, and the record finally closes with `",<rownumber>` (or bare
// `,<rownumber>`). Narrative text may itself end in digits, so a trailing
// number alone is not a boundary — only the exact next expected row number
// closes a record.
//
// # Recovery Model
//
// [ScanSpans] walks physical lines and groups them into spans, one span per
// logical record. [ParseSpan] turns a span into a [Record]: single-line
// spans take the strict CSV path, multi-line spans are reconstructed around
// the rightmost empty-narrative marker, and marker-less multi-line spans
// fall back to a collapse-and-reparse attempt. [WriteRecords] re-serializes
// everything as uniform single-line CSV.
//
// All functions here are pure over their inputs; the package holds no
// mutable state.
package domain

// Package pipeline orchestrates document-level table processing.
//
// A Runner drives each table through a fixed state machine: header
// classification, orientation detection, header flattening where the
// layout calls for it, record extraction, and optional unit
// enrichment. Tables run concurrently on a bounded worker pool, and an
// optional per-table wall-clock budget caps how long any one table may
// take.
//
// The pipeline degrades instead of failing. A table whose orientation
// cannot be determined still yields best-effort records, a panic while
// processing one table never disturbs its siblings, and a sink that
// rejects records only marks that table's report. Run returns a
// Summary with one TableReport per input describing how far the table
// progressed and which issues it accumulated.
package pipeline

// Package orient classifies the structural orientation of financial tables.
//
// Financial reports lay the same facts out in structurally different ways:
// metrics down the first column with a dedicated unit column (transposed),
// entity listings behind a numeric junk column, plain metric-by-period
// grids, and stacked multi-level headers. The [Detector] combines per-column
// statistics (classify.ColumnStats), the header-row count, and the table's
// aspect ratio into one of the model.Orientation values plus a confidence
// and an extraction-strategy tag.
//
// # Rule Order
//
// Rules run in fixed priority order; the first rule whose thresholds are met
// wins. Multi-header detection runs first because extra header rows change
// how every column is read. The fallback is never an error: tables matching
// no rule become OrientationUnknown and are extracted best-effort at capped
// confidence.
//
// # Thresholds
//
// All thresholds live in [Config] with defaults in [DefaultConfig], so
// detection is reproducible and testable. There is deliberately no
// per-table tuning.
//
// # Multi-Header Flattening
//
// [Flatten] composes stacked header levels into per-column (metric, entity)
// pairs. Levels are assigned by classification, never concatenated, so both
// fields remain separately queryable.
package orient

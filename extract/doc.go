// Package extract turns classified tables into candidate fact records.
//
// Extraction is performed by types implementing the [Strategy] interface,
// one per table orientation. Strategies are registered by name and the
// [Extractor] dispatches on the strategy tag chosen by the orientation
// detector:
//
//   - transposed-metric: metrics down column 0, units down column 1
//   - entity-column-junk: numeric index column skipped, entities in column 1
//   - normal-metric: metrics as row headers, periods/entities as column headers
//   - multi-header: metric/entity pairs from flattened column headers
//   - best-effort: value-only records for undetected orientations
//
// # Value Parsing
//
// All strategies share classify.ParseValue semantics: thousands separators
// in both 1,234.5 and 1.234,5 styles, parenthesized negatives, embedded
// unit suffixes ("23.2 EUR/ton"), and placeholders ("-", "N/A") that yield
// no record rather than a zero.
//
// # Field Discipline
//
// A record is only emitted when its value parsed, and a field is only
// populated from evidence of the right kind: a temporal header never lands
// in metric or entity. Cells that fit nowhere are skipped, not fabricated.
package extract

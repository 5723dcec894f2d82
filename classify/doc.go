// Package classify assigns semantic categories to table header text and
// analyzes the semantic make-up of table columns.
//
// # Header Classification
//
// The [Classifier] applies a catalog.Catalog to a single header's text:
//
//	cls, err := classify.NewClassifier(catalog.Default())
//	class, confidence := cls.Classify("Jan-25") // Temporal, 0.95
//
// Categories are evaluated in fixed priority order (temporal, entity,
// metric, unit) and the first category scoring above [Classifier.MinWeight]
// wins. Confidence reflects match specificity: an exact keyword hit scores
// higher than a token or substring hit of the same rule weight. Text that
// matches nothing is Unknown with confidence 0.
//
// # Numeric Cells
//
// [ParseValue] parses numeric data cells, handling both 1,234.5 and 1.234,5
// separator styles, parenthesized negatives, and embedded unit suffixes
// ("23.2 EUR/ton"). Placeholder cells ("-", "N/A", empty) parse to no value,
// never to zero.
//
// # Column Statistics
//
// [Classifier.AnalyzeColumn] computes per-column ratios of metric, entity,
// unit, and numeric cells. The orientation detector uses these ratios as
// structural evidence.
package classify

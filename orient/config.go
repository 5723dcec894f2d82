package orient

// Config holds the detection thresholds. All values are documented,
// reproducible constants; per-table tuning is deliberately not supported.
type Config struct {
	// TransposedMetricRatio is the minimum metric ratio in column 0 for
	// the transposed-metric rule. Fixed at 0.4: historical tunings used
	// both 0.4 and 0.5, and 0.4 keeps sparse metric columns (footnoted or
	// abbreviated metric names the catalog only partially covers) inside
	// the rule.
	TransposedMetricRatio float64

	// TransposedUnitRatio is the minimum unit ratio in column 1 for the
	// transposed-metric rule. Higher than the metric threshold because a
	// dedicated unit column is nearly homogeneous when present.
	TransposedUnitRatio float64

	// WideAspectCutoff is the maximum rows/cols ratio for the
	// transposed-metric rule; transposed tables are wide, not tall.
	WideAspectCutoff float64

	// JunkNumericRatio is the minimum numeric ratio in column 0 for the
	// entity-column-junk rule (a pure numeric index column).
	JunkNumericRatio float64

	// JunkEntityRatio is the minimum entity ratio in column 1 for the
	// entity-column-junk rule.
	JunkEntityRatio float64

	// TallAspectCutoff is the minimum rows/cols ratio for the
	// entity-column-junk rule; entity listings run tall.
	TallAspectCutoff float64

	// NormalMetricRatio is the minimum metric ratio for the column that
	// anchors the normal-metric rule. Lower than the transposed threshold:
	// the rule also requires an adjacent numeric column.
	NormalMetricRatio float64

	// NormalNumericRatio is the minimum numeric ratio in the column
	// following the metric column for the normal-metric rule.
	NormalNumericRatio float64

	// MetricScanCols is how many leading columns are scanned for the
	// metric column of the normal-metric rule. Covers layouts with a
	// leading entity column before the metric column.
	MetricScanCols int

	// UnknownConfidence caps the confidence of the fallback orientation.
	UnknownConfidence float64
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		TransposedMetricRatio: 0.4,
		TransposedUnitRatio:   0.6,
		WideAspectCutoff:      2.5,
		JunkNumericRatio:      0.9,
		JunkEntityRatio:       0.5,
		TallAspectCutoff:      0.75,
		NormalMetricRatio:     0.2,
		NormalNumericRatio:    0.5,
		MetricScanCols:        2,
		UnknownConfidence:     0.3,
	}
}

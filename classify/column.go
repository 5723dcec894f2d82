package classify

import (
	"github.com/tsawler/factura/model"
)

// ColumnStats summarizes the semantic make-up of one column's data cells.
// Ratios are over the non-placeholder cells examined; a column of blanks
// yields all zeros.
type ColumnStats struct {
	MetricRatio  float64
	EntityRatio  float64
	UnitRatio    float64
	NumericRatio float64

	// Cells is the number of non-placeholder data cells examined.
	Cells int
}

// AnalyzeColumn classifies every non-header cell of the column and returns
// the ratio of cells in each semantic category plus the ratio of bare
// numeric literals. Placeholder cells ("-", "N/A", empty) are skipped
// entirely: they are neither numeric nor semantic and carry no evidence.
func (c *Classifier) AnalyzeColumn(t *model.Table, col int) ColumnStats {
	var stats ColumnStats
	if t == nil || col < 0 || col >= t.ColCount() {
		return stats
	}

	var metric, entity, unit, numeric int
	for row := t.HeaderRowCount(); row < t.RowCount(); row++ {
		text := t.TextAt(row, col)
		if IsPlaceholder(text) {
			continue
		}
		stats.Cells++

		if IsNumeric(text) {
			numeric++
			continue
		}
		class, _ := c.Classify(text)
		switch class {
		case model.HeaderMetric:
			metric++
		case model.HeaderEntity:
			entity++
		case model.HeaderUnit:
			unit++
		}
	}

	if stats.Cells == 0 {
		return stats
	}
	n := float64(stats.Cells)
	stats.MetricRatio = float64(metric) / n
	stats.EntityRatio = float64(entity) / n
	stats.UnitRatio = float64(unit) / n
	stats.NumericRatio = float64(numeric) / n
	return stats
}

package extract

import (
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/orient"
)

// transposedStrategy extracts transposed-metric tables: metric names run
// down column 0, units down column 1, and entities (or periods) sit in the
// column headers.
type transposedStrategy struct{}

func (s *transposedStrategy) Name() string { return orient.StrategyTransposed }

func (s *transposedStrategy) Extract(ctx *Context) []model.FactRecord {
	t := ctx.Table
	var records []model.FactRecord

	for row := t.HeaderRowCount(); row < t.RowCount(); row++ {
		metric := t.TextAt(row, 0)
		if classify.IsPlaceholder(metric) {
			metric = ""
		}
		metric, suffixUnit := splitMetricUnit(metric, ctx.Classifier)

		rowUnit := t.TextAt(row, 1)
		if classify.IsPlaceholder(rowUnit) {
			rowUnit = ""
		}

		for col := 2; col < t.ColCount(); col++ {
			value, cellUnit, ok := classify.ParseValue(t.TextAt(row, col))
			if !ok {
				continue
			}
			rec := newRecord(t, row, col, value, ctx.Result.Confidence)
			setIfNotEmpty(&rec.Metric, metric)

			// The most local unit evidence wins: cell suffix, then the
			// metric's parenthetical, then the unit column.
			switch {
			case cellUnit != "":
				rec.Unit = model.String(cellUnit)
			case suffixUnit != "":
				rec.Unit = model.String(suffixUnit)
			case rowUnit != "":
				rec.Unit = model.String(rowUnit)
			}

			header := columnHeader(t, col)
			if class, _ := ctx.Classifier.Classify(header); class == model.HeaderTemporal {
				setIfNotEmpty(&rec.Period, header)
			} else {
				setIfNotEmpty(&rec.Entity, header)
			}
			records = append(records, rec)
		}
	}
	return records
}

package extract

import (
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/orient"
)

// multiHeaderStrategy extracts tables with stacked header rows. Per-column
// metric and entity come from the flattened header pairs; the row header
// contributes the period when temporal, or the metric when the headers
// carried only entities.
type multiHeaderStrategy struct{}

func (s *multiHeaderStrategy) Name() string { return orient.StrategyMultiHead }

func (s *multiHeaderStrategy) Extract(ctx *Context) []model.FactRecord {
	t := ctx.Table
	flat := ctx.Flat
	if flat == nil {
		flat = orient.Flatten(t, ctx.Classifier)
	}

	var records []model.FactRecord
	for row := t.HeaderRowCount(); row < t.RowCount(); row++ {
		rowHeader := t.TextAt(row, 0)
		rowClass, _ := ctx.Classifier.Classify(rowHeader)

		for col := 1; col < t.ColCount(); col++ {
			value, cellUnit, ok := classify.ParseValue(t.TextAt(row, col))
			if !ok {
				continue
			}
			fh := flat[col]

			metric := fh.Metric
			if metric == "" && rowClass == model.HeaderMetric {
				metric = rowHeader
			}
			metric, suffixUnit := splitMetricUnit(metric, ctx.Classifier)

			rec := newRecord(t, row, col, value, ctx.Result.Confidence)
			setIfNotEmpty(&rec.Metric, metric)
			setIfNotEmpty(&rec.Entity, fh.Entity)

			switch {
			case fh.Period != "":
				rec.Period = model.String(fh.Period)
			case rowClass == model.HeaderTemporal:
				setIfNotEmpty(&rec.Period, rowHeader)
			}

			switch {
			case cellUnit != "":
				rec.Unit = model.String(cellUnit)
			case suffixUnit != "":
				rec.Unit = model.String(suffixUnit)
			}
			records = append(records, rec)
		}
	}
	return records
}

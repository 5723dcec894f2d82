package extract

import (
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/orient"
)

// unitRowLookahead is how many leading data rows are checked for a
// dedicated unit row.
const unitRowLookahead = 2

// normalStrategy extracts normal metric tables: metric names run down a
// leading column (the row headers), entities or periods sit in the column
// headers, and an optional leading entity column pairs each row with its
// entity.
type normalStrategy struct{}

func (s *normalStrategy) Name() string { return orient.StrategyNormal }

func (s *normalStrategy) Extract(ctx *Context) []model.FactRecord {
	t := ctx.Table

	metricCol := ctx.Result.MetricCol
	if metricCol < 0 {
		metricCol = 0
	}
	entityCol := ctx.Result.EntityCol
	firstValueCol := metricCol + 1

	// Column headers: temporal headers become periods, entity headers
	// become entities. Anything else carries no row semantics.
	colPeriod := make(map[int]string)
	colEntity := make(map[int]string)
	for col := firstValueCol; col < t.ColCount(); col++ {
		header := columnHeader(t, col)
		switch class, _ := ctx.Classifier.Classify(header); class {
		case model.HeaderTemporal:
			colPeriod[col] = header
		case model.HeaderEntity:
			colEntity[col] = header
		}
	}

	colUnit, unitRows := s.scanUnitRow(ctx, firstValueCol)

	var records []model.FactRecord
	for row := t.HeaderRowCount(); row < t.RowCount(); row++ {
		if unitRows[row] {
			continue
		}
		metric := t.TextAt(row, metricCol)
		if classify.IsPlaceholder(metric) {
			metric = ""
		}
		metric, suffixUnit := splitMetricUnit(metric, ctx.Classifier)

		rowEntity := ""
		if entityCol >= 0 {
			rowEntity = t.TextAt(row, entityCol)
		}

		for col := firstValueCol; col < t.ColCount(); col++ {
			if col == metricCol || col == entityCol {
				continue
			}
			value, cellUnit, ok := classify.ParseValue(t.TextAt(row, col))
			if !ok {
				continue
			}
			rec := newRecord(t, row, col, value, ctx.Result.Confidence)
			setIfNotEmpty(&rec.Metric, metric)
			setIfNotEmpty(&rec.Period, colPeriod[col])
			if rowEntity != "" {
				setIfNotEmpty(&rec.Entity, rowEntity)
			} else {
				setIfNotEmpty(&rec.Entity, colEntity[col])
			}
			switch {
			case cellUnit != "":
				rec.Unit = model.String(cellUnit)
			case suffixUnit != "":
				rec.Unit = model.String(suffixUnit)
			default:
				setIfNotEmpty(&rec.Unit, colUnit[col])
			}
			records = append(records, rec)
		}
	}
	return records
}

// scanUnitRow checks the first data rows for a dedicated unit row: a row
// whose value-column cells are unit-classified and not numeric, commonly
// printed directly under the headers ("", "EUR m", "EUR m", "%"). Matched
// rows provide per-column units and are excluded from data extraction.
func (s *normalStrategy) scanUnitRow(ctx *Context, firstValueCol int) (map[int]string, map[int]bool) {
	t := ctx.Table
	colUnit := make(map[int]string)
	unitRows := make(map[int]bool)

	end := t.HeaderRowCount() + unitRowLookahead
	if end > t.RowCount() {
		end = t.RowCount()
	}
	for row := t.HeaderRowCount(); row < end; row++ {
		units := 0
		other := 0
		for col := firstValueCol; col < t.ColCount(); col++ {
			text := t.TextAt(row, col)
			if classify.IsPlaceholder(text) {
				continue
			}
			if classify.IsNumeric(text) {
				other++
				continue
			}
			if class, _ := ctx.Classifier.Classify(text); class == model.HeaderUnit {
				units++
			} else {
				other++
			}
		}
		if units == 0 || other > 0 {
			continue
		}
		unitRows[row] = true
		for col := firstValueCol; col < t.ColCount(); col++ {
			if text := t.TextAt(row, col); !classify.IsPlaceholder(text) {
				colUnit[col] = text
			}
		}
	}
	return colUnit, unitRows
}

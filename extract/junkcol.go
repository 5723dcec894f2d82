package extract

import (
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/orient"
)

// headerLookahead is how many leading data rows are scanned for a stray
// header row when the table's flagged header rows carry no metric or unit.
const headerLookahead = 3

// junkColumnStrategy extracts tables whose column 0 is a non-semantic
// numeric index. Column 1 carries the entity; metrics and units come from
// the column headers, or from a stray header row among the first data rows,
// or stay nil for later inference.
type junkColumnStrategy struct{}

func (s *junkColumnStrategy) Name() string { return orient.StrategyJunkColumn }

func (s *junkColumnStrategy) Extract(ctx *Context) []model.FactRecord {
	t := ctx.Table
	entityCol := ctx.Result.EntityCol
	if entityCol < 0 {
		entityCol = 1
	}
	firstValueCol := entityCol + 1

	colMetric := make(map[int]string)
	colUnit := make(map[int]string)
	colPeriod := make(map[int]string)
	for col := firstValueCol; col < t.ColCount(); col++ {
		header := columnHeader(t, col)
		switch class, _ := ctx.Classifier.Classify(header); class {
		case model.HeaderMetric:
			colMetric[col] = header
		case model.HeaderUnit:
			colUnit[col] = header
		case model.HeaderTemporal:
			colPeriod[col] = header
		}
	}

	skipRows := s.scanStrayHeaders(ctx, firstValueCol, colMetric, colUnit)

	var records []model.FactRecord
	for row := t.HeaderRowCount(); row < t.RowCount(); row++ {
		if skipRows[row] {
			continue
		}
		entity := t.TextAt(row, entityCol)

		for col := firstValueCol; col < t.ColCount(); col++ {
			value, cellUnit, ok := classify.ParseValue(t.TextAt(row, col))
			if !ok {
				continue
			}
			rec := newRecord(t, row, col, value, ctx.Result.Confidence)
			setIfNotEmpty(&rec.Entity, entity)
			setIfNotEmpty(&rec.Metric, colMetric[col])
			setIfNotEmpty(&rec.Period, colPeriod[col])
			if cellUnit != "" {
				rec.Unit = model.String(cellUnit)
			} else {
				setIfNotEmpty(&rec.Unit, colUnit[col])
			}
			records = append(records, rec)
		}
	}
	return records
}

// scanStrayHeaders looks for metric or unit labels in the first few data
// rows. Layout parsers sometimes leave a header row unflagged; such a row
// has no numeric cells in the value columns and at least one metric- or
// unit-classified cell. Matched rows fill the column maps (without
// overriding real headers) and are excluded from data extraction.
func (s *junkColumnStrategy) scanStrayHeaders(ctx *Context, firstValueCol int, colMetric, colUnit map[int]string) map[int]bool {
	t := ctx.Table
	skip := make(map[int]bool)
	if len(colMetric) > 0 {
		return skip
	}

	end := t.HeaderRowCount() + headerLookahead
	if end > t.RowCount() {
		end = t.RowCount()
	}
	for row := t.HeaderRowCount(); row < end; row++ {
		found := false
		numeric := false
		for col := firstValueCol; col < t.ColCount(); col++ {
			text := t.TextAt(row, col)
			if classify.IsPlaceholder(text) {
				continue
			}
			if classify.IsNumeric(text) {
				numeric = true
				break
			}
			switch class, _ := ctx.Classifier.Classify(text); class {
			case model.HeaderMetric:
				if _, ok := colMetric[col]; !ok {
					colMetric[col] = text
				}
				found = true
			case model.HeaderUnit:
				if _, ok := colUnit[col]; !ok {
					colUnit[col] = text
				}
				found = true
			}
		}
		if numeric {
			break
		}
		if found {
			skip[row] = true
		}
	}
	return skip
}

package extract

import (
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/orient"
)

// bestEffortStrategy handles tables with no detected orientation. It walks
// every data cell and emits value-only records: semantic fields stay nil
// because no structural rule vouches for them, and the unit is kept only
// when embedded in the cell text itself.
type bestEffortStrategy struct{}

func (s *bestEffortStrategy) Name() string { return orient.StrategyBestEffort }

func (s *bestEffortStrategy) Extract(ctx *Context) []model.FactRecord {
	t := ctx.Table
	var records []model.FactRecord

	for row := t.HeaderRowCount(); row < t.RowCount(); row++ {
		for col := 0; col < t.ColCount(); col++ {
			value, cellUnit, ok := classify.ParseValue(t.TextAt(row, col))
			if !ok {
				continue
			}
			rec := newRecord(t, row, col, value, ctx.Result.Confidence)
			if cellUnit != "" {
				rec.Unit = model.String(cellUnit)
			}
			records = append(records, rec)
		}
	}
	return records
}

package orient

import (
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
)

// FlatHeader is the composed header of one column in a multi-header table.
// Each header level lands in the field matching its classification; levels
// that classify as Unknown are dropped rather than concatenated, so metric
// and entity never merge into one opaque string.
type FlatHeader struct {
	Metric string
	Entity string

	// Period holds a temporal-classified header level (a period column
	// under a metric header), keeping it out of Metric and Entity.
	Period string
}

// Flatten composes the hierarchical column headers of a multi-header table
// into per-column flat headers. Header rows are walked top-to-bottom; when
// two levels classify the same way the topmost wins. Spanning headers
// already repeat across every column they cover, so a metric spanning three
// entity columns contributes its text to all three.
func Flatten(t *model.Table, classifier *classify.Classifier) map[int]FlatHeader {
	flat := make(map[int]FlatHeader)
	if t == nil || classifier == nil {
		return flat
	}

	headerRows := t.HeaderRowCount()
	for col := 0; col < t.ColCount(); col++ {
		var fh FlatHeader
		for row := 0; row < headerRows; row++ {
			text := t.TextAt(row, col)
			if text == "" {
				continue
			}
			class, _ := classifier.Classify(text)
			switch class {
			case model.HeaderMetric:
				if fh.Metric == "" {
					fh.Metric = text
				}
			case model.HeaderEntity:
				if fh.Entity == "" {
					fh.Entity = text
				}
			case model.HeaderTemporal:
				if fh.Period == "" {
					fh.Period = text
				}
			}
			// Unknown and unit levels are dropped; units are resolved by
			// the extractor from unit rows or metric suffixes.
		}
		if fh != (FlatHeader{}) {
			flat[col] = fh
		}
	}
	return flat
}

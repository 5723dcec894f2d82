package extract

import (
	"regexp"

	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/orient"
)

// Strategy is the interface for orientation-specific extraction algorithms.
type Strategy interface {
	// Name returns the strategy tag the orientation detector dispatches on.
	Name() string

	// Extract walks the table's data cells and emits candidate records.
	Extract(ctx *Context) []model.FactRecord
}

// Context carries everything a strategy needs for one table pass.
type Context struct {
	Table      *model.Table
	Result     orient.Result
	Classifier *classify.Classifier

	// Flat holds the flattened per-column headers for multi-header tables,
	// nil otherwise.
	Flat map[int]orient.FlatHeader
}

// Registry of strategies by name.
var registry = make(map[string]Strategy)

// Register registers a strategy under its name.
func Register(s Strategy) {
	registry[s.Name()] = s
}

// ForStrategy returns the strategy registered under name, falling back to
// the best-effort strategy so extraction never dead-ends on an unknown tag.
func ForStrategy(name string) Strategy {
	if s, ok := registry[name]; ok {
		return s
	}
	return registry[orient.StrategyBestEffort]
}

func init() {
	Register(&transposedStrategy{})
	Register(&junkColumnStrategy{})
	Register(&normalStrategy{})
	Register(&multiHeaderStrategy{})
	Register(&bestEffortStrategy{})
}

// Extractor dispatches tables to the extraction strategy chosen by the
// orientation detector.
type Extractor struct {
	classifier *classify.Classifier
}

// NewExtractor creates an extractor using the given classifier.
func NewExtractor(classifier *classify.Classifier) *Extractor {
	return &Extractor{classifier: classifier}
}

// Extract emits candidate fact records for one table. Cells that cannot be
// mapped to any record field are skipped, never fabricated; a record is only
// emitted when its value parsed.
func (e *Extractor) Extract(t *model.Table, res orient.Result) []model.FactRecord {
	if t == nil {
		return nil
	}
	ctx := &Context{
		Table:      t,
		Result:     res,
		Classifier: e.classifier,
	}
	if res.Orientation == model.OrientationMultiHeaderMetric {
		ctx.Flat = orient.Flatten(t, e.classifier)
	}
	return ForStrategy(res.Strategy).Extract(ctx)
}

// parenSuffix matches a trailing parenthetical in a metric label.
var parenSuffix = regexp.MustCompile(`^(.*?)\s*\(([^()]+)\)\s*$`)

// splitMetricUnit strips a parenthetical unit suffix from a metric label:
// "CAPEX (EUR million)" becomes ("CAPEX", "EUR million"). The parenthetical
// is only treated as a unit when it classifies as one, so footnote markers
// like "Frequency Ratio (1)" stay part of the metric.
func splitMetricUnit(metric string, classifier *classify.Classifier) (string, string) {
	m := parenSuffix.FindStringSubmatch(metric)
	if m == nil || m[1] == "" {
		return metric, ""
	}
	if class, _ := classifier.Classify(m[2]); class != model.HeaderUnit {
		return metric, ""
	}
	return m[1], m[2]
}

// columnHeader returns the text of the bottom header-row cell of the column,
// or "" when the table has no header rows.
func columnHeader(t *model.Table, col int) string {
	hr := t.HeaderRowCount()
	if hr == 0 {
		return ""
	}
	return t.TextAt(hr-1, col)
}

// newRecord builds a record for a parsed value cell.
func newRecord(t *model.Table, row, col int, value float64, confidence float64) model.FactRecord {
	return model.FactRecord{
		Value:      model.Float(value),
		Confidence: confidence,
		Provenance: model.Provenance{
			Page:       t.Page,
			TableIndex: t.Index,
			Row:        row,
			Col:        col,
		},
	}
}

func setIfNotEmpty(dst **string, text string) {
	if text != "" && !classify.IsPlaceholder(text) {
		*dst = model.String(text)
	}
}

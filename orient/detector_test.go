package orient

import (
	"testing"

	"github.com/tsawler/factura/catalog"
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	cls, err := classify.NewClassifier(catalog.Default())
	if err != nil {
		t.Fatalf("NewClassifier failed: %v", err)
	}
	return NewDetector(cls)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TransposedMetricRatio != 0.4 {
		t.Errorf("Expected TransposedMetricRatio 0.4, got %f", cfg.TransposedMetricRatio)
	}
	if cfg.JunkNumericRatio != 0.9 {
		t.Errorf("Expected JunkNumericRatio 0.9, got %f", cfg.JunkNumericRatio)
	}
	if cfg.UnknownConfidence != 0.3 {
		t.Errorf("Expected UnknownConfidence 0.3, got %f", cfg.UnknownConfidence)
	}
}

func TestDetectTransposedMetric(t *testing.T) {
	d := newTestDetector(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "", "Portugal", "Angola"},
		{"EBITDA", "EUR million", "102.5", "33.1"},
		{"Variable Cost", "EUR/ton", "23.2", "-"},
		{"Production", "kt", "88.0", "41.5"},
	}, 1)

	res := d.Detect(tbl)
	if res.Orientation != model.OrientationTransposedMetric {
		t.Fatalf("Expected TransposedMetric, got %v", res.Orientation)
	}
	if res.Strategy != StrategyTransposed {
		t.Errorf("Expected strategy %q, got %q", StrategyTransposed, res.Strategy)
	}
	if res.Confidence < 0.6 || res.Confidence > 1 {
		t.Errorf("Confidence %f outside expected range", res.Confidence)
	}
}

func TestDetectEntityColumnJunk(t *testing.T) {
	d := newTestDetector(t)
	// Column 0 is a pure numeric index; column 1 holds entity names.
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "", "Aug-25"},
		{"14.003", "Portugal", "23.2"},
		{"8.430", "Tunisia", "29.4"},
		{"2.100", "Angola", "31.0"},
	}, 1)

	res := d.Detect(tbl)
	if res.Orientation != model.OrientationEntityColumnJunk {
		t.Fatalf("Expected EntityColumnJunk, got %v", res.Orientation)
	}
	if res.EntityCol != 1 {
		t.Errorf("Expected entity column 1, got %d", res.EntityCol)
	}
}

func TestDetectNormalMetric(t *testing.T) {
	d := newTestDetector(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "Aug-25", "Aug-24"},
		{"EBITDA", "102.5", "98.1"},
		{"CAPEX", "12.0", "14.2"},
	}, 1)

	res := d.Detect(tbl)
	if res.Orientation != model.OrientationNormalMetric {
		t.Fatalf("Expected NormalMetric, got %v", res.Orientation)
	}
	if res.MetricCol != 0 {
		t.Errorf("Expected metric column 0, got %d", res.MetricCol)
	}
}

func TestDetectNormalMetricWithLeadingEntityColumn(t *testing.T) {
	d := newTestDetector(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"Entity", "Metric", "Aug-25", "Aug-24"},
		{"Portugal", "Variable Cost", "23.2", "29.4"},
	}, 1)

	res := d.Detect(tbl)
	if res.Orientation != model.OrientationNormalMetric {
		t.Fatalf("Expected NormalMetric, got %v", res.Orientation)
	}
	if res.MetricCol != 1 {
		t.Errorf("Expected metric column 1, got %d", res.MetricCol)
	}
	if res.EntityCol != 0 {
		t.Errorf("Expected entity column 0, got %d", res.EntityCol)
	}
}

func TestDetectMultiHeaderPrecedence(t *testing.T) {
	d := newTestDetector(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "Frequency Ratio (1)", "Frequency Ratio (1)"},
		{"", "Portugal", "Angola"},
		{"Jan-25", "7.45", "-"},
	}, 2)

	res := d.Detect(tbl)
	if res.Orientation != model.OrientationMultiHeaderMetric {
		t.Fatalf("Expected MultiHeaderMetric, got %v", res.Orientation)
	}
	if res.Strategy != StrategyMultiHead {
		t.Errorf("Expected strategy %q, got %q", StrategyMultiHead, res.Strategy)
	}
}

func TestDetectUnknownFallback(t *testing.T) {
	d := newTestDetector(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"alpha", "beta"},
		{"gamma", "delta"},
	}, 0)

	res := d.Detect(tbl)
	if res.Orientation != model.OrientationUnknown {
		t.Fatalf("Expected Unknown, got %v", res.Orientation)
	}
	if res.Confidence != DefaultConfig().UnknownConfidence {
		t.Errorf("Expected capped confidence %f, got %f",
			DefaultConfig().UnknownConfidence, res.Confidence)
	}

	// Degenerate inputs degrade the same way, never panic.
	if got := d.Detect(nil).Orientation; got != model.OrientationUnknown {
		t.Errorf("Expected Unknown for nil table, got %v", got)
	}
	empty := model.NewTable(1, 0, 0, 0)
	if got := d.Detect(empty).Orientation; got != model.OrientationUnknown {
		t.Errorf("Expected Unknown for empty table, got %v", got)
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := newTestDetector(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "Aug-25"},
		{"EBITDA", "102.5"},
		{"CAPEX", "12.0"},
	}, 1)

	first := d.Detect(tbl)
	for i := 0; i < 5; i++ {
		if got := d.Detect(tbl); got != first {
			t.Fatalf("Run %d: detection not deterministic: %+v vs %+v", i, got, first)
		}
	}
}

package extract

import (
	"math"
	"testing"

	"github.com/tsawler/factura/catalog"
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/orient"
)

type harness struct {
	detector  *orient.Detector
	extractor *Extractor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cls, err := classify.NewClassifier(catalog.Default())
	if err != nil {
		t.Fatalf("NewClassifier failed: %v", err)
	}
	return &harness{
		detector:  orient.NewDetector(cls),
		extractor: NewExtractor(cls),
	}
}

func (h *harness) run(t *testing.T, tbl *model.Table) ([]model.FactRecord, orient.Result) {
	t.Helper()
	res := h.detector.Detect(tbl)
	return h.extractor.Extract(tbl, res), res
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func checkValue(t *testing.T, rec model.FactRecord, want float64) {
	t.Helper()
	if rec.Value == nil {
		t.Fatal("Expected a value")
	}
	if math.Abs(*rec.Value-want) > 1e-9 {
		t.Errorf("Expected value %v, got %v", want, *rec.Value)
	}
}

// Scenario: two stacked header rows, metric above entity, temporal row
// header. The placeholder cell must produce no record at all.
func TestExtractMultiHeader(t *testing.T) {
	h := newHarness(t)
	tbl := model.NewTableFromRows(3, 2, [][]string{
		{"", "Frequency Ratio (1)", "Frequency Ratio (1)"},
		{"", "Portugal", "Angola"},
		{"Jan-25", "7.45", "-"},
	}, 2)

	records, res := h.run(t, tbl)
	if res.Orientation != model.OrientationMultiHeaderMetric {
		t.Fatalf("Expected MultiHeaderMetric, got %v", res.Orientation)
	}
	if len(records) != 1 {
		t.Fatalf("Expected exactly 1 record, got %d", len(records))
	}

	rec := records[0]
	if str(rec.Entity) != "Portugal" {
		t.Errorf("Expected entity Portugal, got %q", str(rec.Entity))
	}
	if str(rec.Metric) != "Frequency Ratio (1)" {
		t.Errorf("Expected metric with footnote marker intact, got %q", str(rec.Metric))
	}
	if str(rec.Period) != "Jan-25" {
		t.Errorf("Expected period Jan-25, got %q", str(rec.Period))
	}
	checkValue(t, rec, 7.45)
	if rec.Provenance.Page != 3 || rec.Provenance.TableIndex != 2 {
		t.Errorf("Unexpected provenance %+v", rec.Provenance)
	}
}

// Scenario: single header row with leading entity and metric columns and
// one period column per value column.
func TestExtractNormalMetricWithEntityColumn(t *testing.T) {
	h := newHarness(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"Entity", "Metric", "Aug-25", "Aug-24"},
		{"Portugal", "Variable Cost", "23.2", "29.4"},
	}, 1)

	records, res := h.run(t, tbl)
	if res.Orientation != model.OrientationNormalMetric {
		t.Fatalf("Expected NormalMetric, got %v", res.Orientation)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	wantPeriods := map[string]float64{"Aug-25": 23.2, "Aug-24": 29.4}
	for _, rec := range records {
		if str(rec.Entity) != "Portugal" {
			t.Errorf("Expected entity Portugal, got %q", str(rec.Entity))
		}
		if str(rec.Metric) != "Variable Cost" {
			t.Errorf("Expected metric Variable Cost, got %q", str(rec.Metric))
		}
		want, ok := wantPeriods[str(rec.Period)]
		if !ok {
			t.Errorf("Unexpected period %q", str(rec.Period))
			continue
		}
		checkValue(t, rec, want)
		delete(wantPeriods, str(rec.Period))
	}
	if len(wantPeriods) != 0 {
		t.Errorf("Missing records for periods %v", wantPeriods)
	}
}

// Scenario: pure numeric junk in column 0. The junk values must never
// surface as entity or metric.
func TestExtractEntityColumnJunk(t *testing.T) {
	h := newHarness(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "", "Aug-25"},
		{"14.003", "Portugal", "23.2"},
		{"8.430", "Tunisia", "29.4"},
		{"2.100", "Angola", "31.0"},
	}, 1)

	records, res := h.run(t, tbl)
	if res.Orientation != model.OrientationEntityColumnJunk {
		t.Fatalf("Expected EntityColumnJunk, got %v", res.Orientation)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	for _, rec := range records {
		entity := str(rec.Entity)
		if entity != "Portugal" && entity != "Tunisia" && entity != "Angola" {
			t.Errorf("Unexpected entity %q", entity)
		}
		if rec.Metric != nil && classify.IsNumeric(*rec.Metric) {
			t.Errorf("Junk column value leaked into metric: %q", *rec.Metric)
		}
		if str(rec.Period) != "Aug-25" {
			t.Errorf("Expected period Aug-25, got %q", str(rec.Period))
		}
		if rec.Provenance.Col != 2 {
			t.Errorf("Expected records only from column 2, got col %d", rec.Provenance.Col)
		}
	}
}

func TestExtractTransposedMetric(t *testing.T) {
	h := newHarness(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "", "Portugal", "Angola"},
		{"EBITDA", "EUR million", "102.5", "33.1"},
		{"Variable Cost", "EUR/ton", "23.2", "-"},
		{"Production", "kt", "88.0", "41.5"},
	}, 1)

	records, res := h.run(t, tbl)
	if res.Orientation != model.OrientationTransposedMetric {
		t.Fatalf("Expected TransposedMetric, got %v", res.Orientation)
	}
	// Three metric rows, two entity columns, one placeholder cell.
	if len(records) != 5 {
		t.Fatalf("Expected 5 records, got %d", len(records))
	}

	byKey := make(map[string]model.FactRecord)
	for _, rec := range records {
		byKey[str(rec.Metric)+"/"+str(rec.Entity)] = rec
	}
	rec, ok := byKey["EBITDA/Portugal"]
	if !ok {
		t.Fatal("Missing EBITDA/Portugal record")
	}
	checkValue(t, rec, 102.5)
	if str(rec.Unit) != "EUR million" {
		t.Errorf("Expected unit from unit column, got %q", str(rec.Unit))
	}
	if _, ok := byKey["Variable Cost/Angola"]; ok {
		t.Error("Placeholder cell must not produce a record")
	}
}

func TestExtractNormalMetricUnitSources(t *testing.T) {
	h := newHarness(t)
	// Unit row under the header plus a parenthetical metric suffix; the
	// suffix is the more local evidence and wins for its row.
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "Aug-25", "Aug-24"},
		{"", "EUR million", "EUR million"},
		{"CAPEX (EUR thousand)", "12.0", "14.2"},
		{"EBITDA", "102.5", "98.1"},
	}, 1)

	records, res := h.run(t, tbl)
	if res.Orientation != model.OrientationNormalMetric {
		t.Fatalf("Expected NormalMetric, got %v", res.Orientation)
	}
	if len(records) != 4 {
		t.Fatalf("Expected 4 records (unit row excluded), got %d", len(records))
	}

	for _, rec := range records {
		switch str(rec.Metric) {
		case "CAPEX":
			if str(rec.Unit) != "EUR thousand" {
				t.Errorf("Expected parenthetical unit, got %q", str(rec.Unit))
			}
		case "EBITDA":
			if str(rec.Unit) != "EUR million" {
				t.Errorf("Expected unit-row unit, got %q", str(rec.Unit))
			}
		default:
			t.Errorf("Unexpected metric %q", str(rec.Metric))
		}
	}
}

func TestExtractUnitRowUnlistedCurrency(t *testing.T) {
	h := newHarness(t)
	// Scale words pair with any currency code, so a unit row outside the
	// exact catalog spellings must still be recognized and excluded from
	// the data rows.
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "Aug-25", "Aug-24"},
		{"", "NOK million", "NOK million"},
		{"EBITDA", "102.5", "98.1"},
	}, 1)

	records, res := h.run(t, tbl)
	if res.Orientation != model.OrientationNormalMetric {
		t.Fatalf("Expected NormalMetric, got %v", res.Orientation)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records (unit row excluded), got %d", len(records))
	}
	for _, rec := range records {
		if str(rec.Unit) != "NOK million" {
			t.Errorf("Expected unit from unit row, got %q", str(rec.Unit))
		}
	}
}

func TestExtractUnknownBestEffort(t *testing.T) {
	h := newHarness(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"alpha", "beta"},
		{"gamma", "41.5"},
		{"delta", "epsilon"},
	}, 0)

	records, res := h.run(t, tbl)
	if res.Orientation != model.OrientationUnknown {
		t.Fatalf("Expected Unknown, got %v", res.Orientation)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 value-only record, got %d", len(records))
	}
	rec := records[0]
	if rec.Entity != nil || rec.Metric != nil || rec.Period != nil {
		t.Error("Expected all semantic fields nil for best-effort extraction")
	}
	checkValue(t, rec, 41.5)
	if rec.Confidence > 0.3 {
		t.Errorf("Expected capped confidence, got %f", rec.Confidence)
	}
}

func TestExtractNegativeParenthesis(t *testing.T) {
	h := newHarness(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "Aug-25"},
		{"EBITDA", "(23.2)"},
		{"CAPEX", "12.0"},
	}, 1)

	records, _ := h.run(t, tbl)
	for _, rec := range records {
		if str(rec.Metric) == "EBITDA" {
			checkValue(t, rec, -23.2)
			if rec.Unit != nil {
				t.Errorf("Expected no unit for parenthesized negative, got %q", str(rec.Unit))
			}
			return
		}
	}
	t.Fatal("Missing EBITDA record")
}

func TestExtractEmbeddedCellUnit(t *testing.T) {
	h := newHarness(t)
	tbl := model.NewTableFromRows(1, 0, [][]string{
		{"", "Aug-25"},
		{"Variable Cost", "23.2 EUR/ton"},
		{"Production", "88.0"},
	}, 1)

	records, _ := h.run(t, tbl)
	for _, rec := range records {
		if str(rec.Metric) == "Variable Cost" {
			checkValue(t, rec, 23.2)
			if str(rec.Unit) != "EUR/ton" {
				t.Errorf("Expected embedded unit EUR/ton, got %q", str(rec.Unit))
			}
			return
		}
	}
	t.Fatal("Missing Variable Cost record")
}

// Round-trip: the same facts encoded in all four orientations come back out.
func TestExtractRoundTrip(t *testing.T) {
	h := newHarness(t)

	type fact struct {
		entity, metric, period string
		value                  float64
	}
	want := []fact{
		{"Portugal", "EBITDA", "Aug-25", 102.5},
		{"Angola", "EBITDA", "Aug-25", 33.1},
	}

	tables := map[string]*model.Table{
		"transposed": model.NewTableFromRows(1, 0, [][]string{
			{"", "", "Portugal", "Angola"},
			{"EBITDA", "EUR million", "102.5", "33.1"},
			{"Variable Cost", "EUR/ton", "23.2", "29.9"},
		}, 1),
		"normal": model.NewTableFromRows(1, 0, [][]string{
			{"Entity", "Metric", "Aug-25"},
			{"Portugal", "EBITDA", "102.5"},
			{"Angola", "EBITDA", "33.1"},
		}, 1),
		"multi-header": model.NewTableFromRows(1, 0, [][]string{
			{"", "EBITDA", "EBITDA"},
			{"", "Portugal", "Angola"},
			{"Aug-25", "102.5", "33.1"},
		}, 2),
		"junk-column": model.NewTableFromRows(1, 0, [][]string{
			{"", "", "EBITDA"},
			{"1.001", "Portugal", "102.5"},
			{"2.002", "Angola", "33.1"},
			{"3.003", "Spain", "47.0"},
		}, 1),
	}

	for name, tbl := range tables {
		records, _ := h.run(t, tbl)
		for _, w := range want {
			found := false
			for _, rec := range records {
				if str(rec.Entity) != w.entity || str(rec.Metric) != w.metric {
					continue
				}
				if rec.Value == nil || math.Abs(*rec.Value-w.value) > 1e-9 {
					continue
				}
				// Only the normal and multi-header layouts encode the
				// period alongside entity and metric.
				hasPeriod := name == "normal" || name == "multi-header"
				if hasPeriod && str(rec.Period) != w.period {
					continue
				}
				found = true
				break
			}
			if !found {
				t.Errorf("%s: missing fact %+v", name, w)
			}
		}
	}
}

func TestForStrategyFallback(t *testing.T) {
	s := ForStrategy("never-registered")
	if s == nil {
		t.Fatal("Expected fallback strategy, got nil")
	}
	if s.Name() != orient.StrategyBestEffort {
		t.Errorf("Expected best-effort fallback, got %q", s.Name())
	}
}

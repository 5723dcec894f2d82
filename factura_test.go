package factura

import (
	"context"
	"strings"
	"testing"

	"github.com/tsawler/factura/catalog"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/pipeline"
	"github.com/tsawler/factura/units"
)

func sampleTables() []*model.Table {
	return []*model.Table{
		model.NewTableFromRows(1, 0, [][]string{
			{"Metric", "Unit", "2023", "2024"},
			{"EBITDA", "EUR million", "10.5", "12.0"},
			{"CAPEX", "EUR million", "3.2", "4.1"},
		}, 1),
		model.NewTableFromRows(2, 0, [][]string{
			{"Metric", "Portugal", "Spain"},
			{"Revenue", "100", "80"},
		}, 1),
	}
}

func TestRecords(t *testing.T) {
	records, warnings, err := FromTables(sampleTables()).Records(context.Background())
	if err != nil {
		t.Fatalf("failed to extract records: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected records")
	}
	for _, w := range warnings {
		t.Logf("warning: %s", w)
	}

	// Provenance order: page 1 before page 2.
	if records[0].Provenance.Page != 1 {
		t.Errorf("expected first record from page 1, got page %d", records[0].Provenance.Page)
	}

	found := false
	for _, rec := range records {
		if rec.Metric != nil && *rec.Metric == "EBITDA" && rec.Unit != nil {
			if *rec.Unit != "EUR million" {
				t.Errorf("expected unit EUR million, got %q", *rec.Unit)
			}
			found = true
		}
	}
	if !found {
		t.Error("expected an EBITDA record with a unit")
	}
}

func TestEmptyInput(t *testing.T) {
	records, warnings, err := FromTables(nil).Records(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 || len(warnings) != 0 {
		t.Errorf("expected no output, got %d records %d warnings", len(records), len(warnings))
	}
}

func TestCSVOutput(t *testing.T) {
	csv, _, err := FromTables(sampleTables()).CSV(context.Background())
	if err != nil {
		t.Fatalf("failed to render CSV: %v", err)
	}
	if !strings.Contains(csv, "EBITDA") {
		t.Error("expected CSV to contain EBITDA")
	}
	if !strings.Contains(csv, "entity,metric,period,value,unit") {
		t.Errorf("expected CSV header, got first line %q", strings.SplitN(csv, "\n", 2)[0])
	}
}

func TestMarkdownOutput(t *testing.T) {
	md, _, err := FromTables(sampleTables()).Markdown(context.Background())
	if err != nil {
		t.Fatalf("failed to render markdown: %v", err)
	}
	if !strings.Contains(md, "|") {
		t.Error("expected a markdown table")
	}
}

func TestCatalogFileNotFound(t *testing.T) {
	_, _, err := FromTables(sampleTables()).
		Catalog("nonexistent.yaml").
		Records(context.Background())
	if err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestExtraRules(t *testing.T) {
	tables := []*model.Table{
		model.NewTableFromRows(1, 0, [][]string{
			{"Metric", "2023"},
			{"Widget throughput", "42"},
		}, 1),
	}

	extra := &catalog.Catalog{Rules: []catalog.Rule{
		{Category: "metric", Match: "contains", Patterns: []string{"throughput"}, Weight: 0.9},
	}}

	records, _, err := FromTables(tables).Rules(extra).Records(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, rec := range records {
		if rec.Metric != nil && *rec.Metric == "Widget throughput" {
			found = true
		}
	}
	if !found {
		t.Error("expected the extra rule to classify the metric")
	}
}

func TestInferUnits(t *testing.T) {
	tables := []*model.Table{
		model.NewTableFromRows(1, 0, [][]string{
			{"Metric", "2023"},
			{"EBITDA", "10.5"},
		}, 1),
	}

	inf := units.InferrerFunc(func(_ context.Context, q units.Query) (string, error) {
		if q.MetricName != "EBITDA" {
			t.Errorf("unexpected metric %q", q.MetricName)
		}
		return "EUR million", nil
	})

	dc := model.DocumentContext{PageTitle: "Consolidated results"}
	records, _, err := FromTables(tables, dc).InferUnits(inf).Records(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected records")
	}
	for _, rec := range records {
		if rec.Unit == nil || *rec.Unit != "EUR million" {
			t.Errorf("expected inferred unit on %v", rec)
		}
	}
}

func TestToSink(t *testing.T) {
	sink := pipeline.NewMemorySink()
	summary, err := FromTables(sampleTables()).ToSink(context.Background(), sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Records != sink.Len() {
		t.Errorf("summary records %d != sink %d", summary.Records, sink.Len())
	}
}

func TestMustRecordsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustRecords(FromTables(sampleTables()).Catalog("nonexistent.yaml").Records(context.Background()))
}

func TestFormatWarnings(t *testing.T) {
	if FormatWarnings(nil) != "" {
		t.Error("expected empty string for no warnings")
	}
	out := FormatWarnings([]Warning{
		{Page: 1, Table: 0, Stage: pipeline.StageFinalized, Message: "orientation undetected"},
	})
	if !strings.Contains(out, "page 1 table 0") {
		t.Errorf("unexpected format: %q", out)
	}
}

package model

import (
	"fmt"
	"sort"
	"strings"
)

// Provenance locates a fact record in its source document.
type Provenance struct {
	Page       int
	TableIndex int
	Row        int
	Col        int
}

// FactRecord is a single normalized observation extracted from one table
// cell. Semantic fields are pointers: nil means "not determined", which is
// always preferred over a guessed value. A record is only created when a
// numeric value was successfully parsed.
type FactRecord struct {
	Entity     *string
	Metric     *string
	Period     *string
	Value      *float64
	Unit       *string
	Confidence float64
	Provenance Provenance
}

// String returns a pointer to s, for populating FactRecord fields.
func String(s string) *string { return &s }

// Float returns a pointer to v, for populating FactRecord fields.
func Float(v float64) *float64 { return &v }

// String renders the record compactly for logs.
func (r FactRecord) String() string {
	value := "-"
	if r.Value != nil {
		value = fmt.Sprintf("%g", *r.Value)
	}
	return fmt.Sprintf("entity=%q metric=%q period=%q value=%s unit=%q confidence=%.2f page=%d table=%d",
		deref(r.Entity), deref(r.Metric), deref(r.Period), value, deref(r.Unit),
		r.Confidence, r.Provenance.Page, r.Provenance.TableIndex)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SortByProvenance orders records by (page, table index, row, column).
// Extraction itself makes no ordering guarantee; consumers that need a
// stable order sort with this.
func SortByProvenance(records []FactRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Provenance, records[j].Provenance
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.TableIndex != b.TableIndex {
			return a.TableIndex < b.TableIndex
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
}

// RecordsToCSV renders records as CSV with a fixed header row.
func RecordsToCSV(records []FactRecord) string {
	var sb strings.Builder
	sb.WriteString("entity,metric,period,value,unit,confidence,page,table,row,col\n")
	for _, r := range records {
		value := ""
		if r.Value != nil {
			value = fmt.Sprintf("%g", *r.Value)
		}
		fields := []string{
			deref(r.Entity), deref(r.Metric), deref(r.Period),
			value, deref(r.Unit),
			fmt.Sprintf("%.2f", r.Confidence),
			fmt.Sprintf("%d", r.Provenance.Page),
			fmt.Sprintf("%d", r.Provenance.TableIndex),
			fmt.Sprintf("%d", r.Provenance.Row),
			fmt.Sprintf("%d", r.Provenance.Col),
		}
		for j, f := range fields {
			if strings.ContainsAny(f, ",\"\n") {
				f = "\"" + strings.ReplaceAll(f, "\"", "\"\"") + "\""
			}
			sb.WriteString(f)
			if j < len(fields)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RecordsToMarkdown renders records as a markdown table.
func RecordsToMarkdown(records []FactRecord) string {
	var sb strings.Builder
	sb.WriteString("| Entity | Metric | Period | Value | Unit |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, r := range records {
		value := ""
		if r.Value != nil {
			value = fmt.Sprintf("%g", *r.Value)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			deref(r.Entity), deref(r.Metric), deref(r.Period), value, deref(r.Unit)))
	}
	return sb.String()
}

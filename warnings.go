package factura

import (
	"fmt"
	"strings"

	"github.com/tsawler/factura/pipeline"
)

// Warning describes a degradation encountered while processing one table.
// Warnings never abort a run; they tell the caller which tables produced
// weaker results and why.
type Warning struct {
	Page    int
	Table   int
	Stage   pipeline.Stage
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d table %d [%s]: %s", w.Page, w.Table, w.Stage, w.Message)
}

// FormatWarnings renders warnings one per line for logging.
//
// Example:
//
//	log.Println("Warnings:\n" + factura.FormatWarnings(warnings))
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// warningsFromSummary flattens per-table issues into warnings.
func warningsFromSummary(s pipeline.Summary) []Warning {
	var warnings []Warning
	for _, rep := range s.Reports {
		for _, issue := range rep.Issues {
			warnings = append(warnings, Warning{
				Page:    rep.Page,
				Table:   rep.TableIndex,
				Stage:   rep.Stage,
				Message: issue.Error(),
			})
		}
	}
	return warnings
}

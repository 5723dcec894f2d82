package pipeline

import (
	"github.com/cockroachdb/errors"

	"github.com/tsawler/factura/units"
)

// Table-scoped issue taxonomy. All of these are recoverable: they are
// recorded on the table's report and never terminate processing of the
// document.
var (
	// ErrClassificationAmbiguous: one or more headers resolved to Unknown;
	// the affected record fields stay nil.
	ErrClassificationAmbiguous = errors.New("header classification ambiguous")

	// ErrOrientationUndetected: no orientation rule met its thresholds;
	// the table fell back to best-effort extraction at capped confidence.
	ErrOrientationUndetected = errors.New("orientation undetected")

	// ErrExtractionIncomplete: some non-empty data cells could not be
	// mapped to any record; they were skipped, not fabricated.
	ErrExtractionIncomplete = errors.New("extraction incomplete")

	// ErrInferenceUnavailable: the external unit-inference call failed or
	// timed out; units stay nil and confidence is downgraded.
	ErrInferenceUnavailable = units.ErrUnavailable

	// ErrTableBudgetExceeded: the per-table wall-clock budget expired and
	// the table was finalized with whatever had resolved by then.
	ErrTableBudgetExceeded = errors.New("table budget exceeded")

	// ErrTablePanic: an internal error was recovered; the table emitted
	// nothing.
	ErrTablePanic = errors.New("table processing panicked")
)

package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/factura/catalog"
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/extract"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/orient"
	"github.com/tsawler/factura/units"
)

// Config controls document-level processing.
type Config struct {
	// Workers is the number of tables processed concurrently.
	Workers int

	// TableBudget is the wall-clock budget per table. Zero disables the
	// budget. A table that exceeds it keeps whatever records were
	// finalized before the deadline.
	TableBudget time.Duration
}

// DefaultConfig returns the default processing configuration.
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		TableBudget: 0,
	}
}

// TableInput pairs a table with the document context surrounding it.
type TableInput struct {
	Table   *model.Table
	Context model.DocumentContext
}

// TableReport describes the outcome for a single table. Issues holds
// the degradations encountered; a table with issues still produced the
// records it could.
type TableReport struct {
	Page        int
	TableIndex  int
	Stage       Stage
	Orientation model.Orientation
	Strategy    string
	Confidence  float64
	Records     int
	Issues      []error
}

// Summary aggregates the outcome of a Run.
type Summary struct {
	Tables  int
	Records int
	Reports []TableReport
}

// Runner drives tables through classification, orientation detection,
// extraction, and unit enrichment, delivering records to a Sink. Every
// stage is total: a table that defeats a stage degrades to a weaker
// result instead of failing the document.
type Runner struct {
	cfg        Config
	classifier *classify.Classifier
	detector   *orient.Detector
	extractor  *extract.Extractor
	engine     *units.Engine
	sink       Sink
	log        *zap.Logger

	catalog     *catalog.Catalog
	detectorCfg *orient.Config
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithConfig replaces the default processing configuration.
func WithConfig(cfg Config) RunnerOption {
	return func(r *Runner) {
		if cfg.Workers > 0 {
			r.cfg.Workers = cfg.Workers
		}
		r.cfg.TableBudget = cfg.TableBudget
	}
}

// WithUnitEngine attaches a unit-inference engine. Without one, records
// missing units are delivered with a nil unit.
func WithUnitEngine(engine *units.Engine) RunnerOption {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(log *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithCatalog replaces the embedded default pattern catalog.
func WithCatalog(cat *catalog.Catalog) RunnerOption {
	return func(r *Runner) {
		r.catalog = cat
	}
}

// WithDetectorConfig replaces the orientation thresholds.
func WithDetectorConfig(cfg orient.Config) RunnerOption {
	return func(r *Runner) {
		r.detectorCfg = &cfg
	}
}

// NewRunner creates a Runner delivering records to sink. The embedded
// default catalog and default thresholds apply unless overridden.
func NewRunner(sink Sink, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		cfg:  DefaultConfig(),
		sink: sink,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	cat := r.catalog
	if cat == nil {
		cat = catalog.Default()
	}
	classifier, err := classify.NewClassifier(cat)
	if err != nil {
		return nil, err
	}
	r.classifier = classifier
	if r.detectorCfg != nil {
		r.detector = orient.NewDetectorWithConfig(classifier, *r.detectorCfg)
	} else {
		r.detector = orient.NewDetector(classifier)
	}
	r.extractor = extract.NewExtractor(classifier)
	return r, nil
}

// Run processes tables concurrently and returns a per-table summary.
// The only error Run itself returns is ctx cancellation before all
// tables were attempted; per-table trouble lands in the reports.
func (r *Runner) Run(ctx context.Context, inputs []TableInput) (Summary, error) {
	reports := make([]TableReport, len(inputs))

	var wg sync.WaitGroup
	work := make(chan int)

	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				reports[idx] = r.processTable(ctx, inputs[idx])
			}
		}()
	}

	var runErr error
dispatch:
	for i := range inputs {
		if err := ctx.Err(); err != nil {
			runErr = err
			break dispatch
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break dispatch
		case work <- i:
		}
	}
	close(work)
	wg.Wait()

	summary := Summary{Tables: len(inputs), Reports: reports}
	for _, rep := range reports {
		summary.Records += rep.Records
	}
	sortReports(summary.Reports)
	return summary, runErr
}

// processTable is the per-table state machine. It never returns an
// error: degradations accumulate as issues on the report.
func (r *Runner) processTable(ctx context.Context, in TableInput) (report TableReport) {
	if in.Table != nil {
		report.Page = in.Table.Page
		report.TableIndex = in.Table.Index
	}
	report.Stage = StageIngested
	report.Orientation = model.OrientationUnknown

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("table processing panicked",
				zap.Int("page", report.Page),
				zap.Int("table", report.TableIndex),
				zap.Any("panic", rec))
			report.Issues = append(report.Issues, ErrTablePanic)
		}
	}()

	if in.Table == nil || in.Table.RowCount() == 0 {
		report.Stage = StageFinalized
		return report
	}

	if r.cfg.TableBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.TableBudget)
		defer cancel()
	}

	t := in.Table

	// Header classification. Unknown headers are tolerated; they only
	// mark the table as ambiguous for the report.
	if r.headersAmbiguous(t) {
		report.Issues = append(report.Issues, ErrClassificationAmbiguous)
	}
	report.Stage = StageHeadersClassified

	res := r.detector.Detect(t)
	report.Orientation = res.Orientation
	report.Strategy = res.Strategy
	report.Confidence = res.Confidence
	report.Stage = StageOrientationDetected
	if res.Orientation == model.OrientationUnknown {
		report.Issues = append(report.Issues, ErrOrientationUndetected)
	}
	if res.Orientation == model.OrientationMultiHeaderMetric {
		report.Stage = StageFlattened
	}

	records := r.extractor.Extract(t, res)
	report.Stage = StageExtracted
	if incomplete(t, res, records) {
		report.Issues = append(report.Issues, ErrExtractionIncomplete)
	}

	if err := ctx.Err(); err != nil {
		report.Issues = append(report.Issues, ErrTableBudgetExceeded)
		r.deliver(context.WithoutCancel(ctx), records, &report)
		return report
	}

	if r.engine != nil {
		r.engine.Enrich(ctx, records, in.Context)
	}
	report.Stage = StageUnitEnriched

	// A budget that expired mid-enrichment still keeps the extracted
	// records; delivery proceeds outside the expired deadline.
	if err := ctx.Err(); err != nil {
		report.Issues = append(report.Issues, ErrTableBudgetExceeded)
		ctx = context.WithoutCancel(ctx)
	}
	r.deliver(ctx, records, &report)
	return report
}

// deliver hands records to the sink. Sink failures are reported, not
// fatal; the records for other tables are unaffected.
func (r *Runner) deliver(ctx context.Context, records []model.FactRecord, report *TableReport) {
	report.Records = len(records)
	if len(records) > 0 && r.sink != nil {
		if err := r.sink.IngestFacts(ctx, records); err != nil {
			r.log.Warn("sink rejected records",
				zap.Int("page", report.Page),
				zap.Int("table", report.TableIndex),
				zap.Error(err))
			report.Issues = append(report.Issues, err)
		}
	}
	report.Stage = StageFinalized
}

// headersAmbiguous reports whether any non-empty header cell resolved
// to Unknown.
func (r *Runner) headersAmbiguous(t *model.Table) bool {
	headerRows := t.HeaderRowCount()
	for row := 0; row < headerRows; row++ {
		for col := 0; col < t.ColCount(); col++ {
			text := t.TextAt(row, col)
			if text == "" {
				continue
			}
			if class, _ := r.classifier.Classify(text); class == model.HeaderUnknown {
				return true
			}
		}
	}
	return false
}

// incomplete reports whether numeric data cells outnumber the records
// extracted from them. Columns the layout deliberately excludes, like the
// index and entity columns of a junk-column table, do not count.
func incomplete(t *model.Table, res orient.Result, records []model.FactRecord) bool {
	startCol := 0
	if res.Orientation == model.OrientationEntityColumnJunk {
		entityCol := res.EntityCol
		if entityCol < 0 {
			entityCol = 1
		}
		startCol = entityCol + 1
	}

	numeric := 0
	for row := t.HeaderRowCount(); row < t.RowCount(); row++ {
		for col := startCol; col < t.ColCount(); col++ {
			text := t.TextAt(row, col)
			if text == "" || classify.IsPlaceholder(text) {
				continue
			}
			if _, _, ok := classify.ParseValue(text); ok {
				numeric++
			}
		}
	}
	return len(records) < numeric
}

func sortReports(reports []TableReport) {
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Page != reports[j].Page {
			return reports[i].Page < reports[j].Page
		}
		return reports[i].TableIndex < reports[j].TableIndex
	})
}

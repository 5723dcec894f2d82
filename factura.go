// Package factura provides a fluent API for turning document tables into
// normalized fact records.
//
// Basic usage:
//
//	records, warnings, err := factura.FromTables(tables).Records(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:\n" + factura.FormatWarnings(warnings))
//	}
//
// With options:
//
//	records, _, err := factura.FromTables(tables).
//	    Catalog("patterns.yaml").
//	    Workers(8).
//	    TableBudget(5 * time.Second).
//	    Records(ctx)
//
// For advanced use cases, the lower-level pipeline, classify, orient,
// extract, and units packages are also available.
package factura

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/factura/catalog"
	"github.com/tsawler/factura/model"
	"github.com/tsawler/factura/pipeline"
	"github.com/tsawler/factura/units"
)

// Processor accumulates fluent configuration and runs the extraction
// pipeline on a terminal call. Setter methods return the Processor for
// chaining; configuration errors surface on the terminal call, never
// mid-chain.
type Processor struct {
	inputs []pipeline.TableInput
	cfg    pipeline.Config

	catalogPath string
	extraRules  *catalog.Catalog
	inferrer    units.Inferrer
	engineOpts  []units.Option
	log         *zap.Logger

	err error
}

// FromTables creates a Processor over tables that share one document
// context. Pass a zero DocumentContext when no surrounding text is known.
func FromTables(tables []*model.Table, dc ...model.DocumentContext) *Processor {
	var ctx model.DocumentContext
	if len(dc) > 0 {
		ctx = dc[0]
	}
	p := &Processor{cfg: pipeline.DefaultConfig()}
	for _, t := range tables {
		p.inputs = append(p.inputs, pipeline.TableInput{Table: t, Context: ctx})
	}
	return p
}

// FromInputs creates a Processor over tables that each carry their own
// document context.
func FromInputs(inputs []pipeline.TableInput) *Processor {
	return &Processor{
		inputs: inputs,
		cfg:    pipeline.DefaultConfig(),
	}
}

// Catalog loads a YAML pattern catalog from path and merges it over the
// embedded default. Later rules win on ties.
func (p *Processor) Catalog(path string) *Processor {
	p.catalogPath = path
	return p
}

// Rules merges extra classification rules over the embedded default
// catalog.
func (p *Processor) Rules(cat *catalog.Catalog) *Processor {
	p.extraRules = cat
	return p
}

// Workers sets how many tables are processed concurrently.
func (p *Processor) Workers(n int) *Processor {
	if n > 0 {
		p.cfg.Workers = n
	}
	return p
}

// TableBudget caps the wall-clock time spent on any single table. A
// table that exceeds the budget keeps the records finalized before the
// deadline. Zero disables the cap.
func (p *Processor) TableBudget(d time.Duration) *Processor {
	p.cfg.TableBudget = d
	return p
}

// InferUnits attaches a unit inferrer consulted for records whose unit
// could not be read off the table. Explicit table evidence always wins
// over inference.
func (p *Processor) InferUnits(inf units.Inferrer, opts ...units.Option) *Processor {
	p.inferrer = inf
	p.engineOpts = opts
	return p
}

// Logger sets the structured logger used during processing. The default
// discards output.
func (p *Processor) Logger(log *zap.Logger) *Processor {
	p.log = log
	return p
}

// Records runs the pipeline and returns the extracted records in
// provenance order, plus any per-table warnings.
//
// Example:
//
//	records, warnings, err := factura.FromTables(tables).Records(ctx)
func (p *Processor) Records(ctx context.Context) ([]model.FactRecord, []Warning, error) {
	sink := pipeline.NewMemorySink()
	summary, err := p.run(ctx, sink)
	if err != nil {
		return nil, warningsFromSummary(summary), err
	}
	return sink.Records(), warningsFromSummary(summary), nil
}

// Summary runs the pipeline and returns the per-table reports alongside
// the records, for callers that want the full processing detail.
func (p *Processor) Summary(ctx context.Context) ([]model.FactRecord, pipeline.Summary, error) {
	sink := pipeline.NewMemorySink()
	summary, err := p.run(ctx, sink)
	if err != nil {
		return nil, summary, err
	}
	return sink.Records(), summary, nil
}

// CSV runs the pipeline and renders the records as CSV.
//
// Example:
//
//	csv, warnings, err := factura.FromTables(tables).CSV(ctx)
func (p *Processor) CSV(ctx context.Context) (string, []Warning, error) {
	records, warnings, err := p.Records(ctx)
	if err != nil {
		return "", warnings, err
	}
	return model.RecordsToCSV(records), warnings, nil
}

// Markdown runs the pipeline and renders the records as a markdown table.
func (p *Processor) Markdown(ctx context.Context) (string, []Warning, error) {
	records, warnings, err := p.Records(ctx)
	if err != nil {
		return "", warnings, err
	}
	return model.RecordsToMarkdown(records), warnings, nil
}

// ToSink runs the pipeline delivering records to the caller's sink
// instead of collecting them in memory.
func (p *Processor) ToSink(ctx context.Context, sink pipeline.Sink) (pipeline.Summary, error) {
	return p.run(ctx, sink)
}

func (p *Processor) run(ctx context.Context, sink pipeline.Sink) (pipeline.Summary, error) {
	if p.err != nil {
		return pipeline.Summary{}, p.err
	}

	opts := []pipeline.RunnerOption{pipeline.WithConfig(p.cfg)}

	cat, err := p.buildCatalog()
	if err != nil {
		return pipeline.Summary{}, err
	}
	if cat != nil {
		opts = append(opts, pipeline.WithCatalog(cat))
	}
	if p.inferrer != nil {
		engineOpts := p.engineOpts
		if p.log != nil {
			engineOpts = append(engineOpts, units.WithLogger(p.log))
		}
		opts = append(opts, pipeline.WithUnitEngine(units.NewEngine(p.inferrer, engineOpts...)))
	}
	if p.log != nil {
		opts = append(opts, pipeline.WithLogger(p.log))
	}

	runner, err := pipeline.NewRunner(sink, opts...)
	if err != nil {
		return pipeline.Summary{}, err
	}
	return runner.Run(ctx, p.inputs)
}

// buildCatalog resolves the effective catalog, or nil for the embedded
// default.
func (p *Processor) buildCatalog() (*catalog.Catalog, error) {
	if p.catalogPath == "" && p.extraRules == nil {
		return nil, nil
	}
	cat := catalog.Default()
	if p.catalogPath != "" {
		loaded, err := catalog.Load(p.catalogPath)
		if err != nil {
			return nil, err
		}
		cat = cat.Merge(loaded)
	}
	if p.extraRules != nil {
		cat = cat.Merge(p.extraRules)
	}
	return cat, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords wraps a terminal call returning (T, []Warning, error) and
// panics if the error is non-nil. Warnings are discarded.
//
// Example:
//
//	records := factura.MustRecords(factura.FromTables(tables).Records(ctx))
func MustRecords[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

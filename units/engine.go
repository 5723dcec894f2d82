package units

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tsawler/factura/model"
)

// ErrUnavailable marks a failed or timed-out inference call. Records for
// the affected metric keep a nil unit and a downgraded confidence; the
// error never propagates past the engine.
var ErrUnavailable = errors.New("unit inference unavailable")

// failureDowngrade scales record confidence when inference was attempted
// and failed.
const failureDowngrade = 0.8

// Engine enriches extracted records with inferred units. For each distinct
// unit-less metric it builds one context bundle, calls the external
// collaborator at most twice (one attempt plus one retry), and caches the
// result for the remainder of the document run. Explicit in-table units are
// never overridden.
//
// Concurrent Enrich calls (one per table) share the cache; duplicate
// requests for a metric already in flight wait for the first resolver
// instead of issuing another call.
type Engine struct {
	inferrer Inferrer
	cache    Cache
	log      *zap.Logger
	limiter  *rate.Limiter
	sem      chan struct{}

	group *flightGroup
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache replaces the default in-memory cache.
func WithCache(c Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithLogger sets the engine's logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithRateLimit bounds the rate of external calls.
func WithRateLimit(l *rate.Limiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// WithMaxInFlight bounds the number of concurrent external calls. The
// default is 4; cache hits are never blocked by the bound.
func WithMaxInFlight(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sem = make(chan struct{}, n)
		}
	}
}

// NewEngine creates an enrichment engine around the given collaborator.
func NewEngine(inferrer Inferrer, opts ...Option) *Engine {
	e := &Engine{
		inferrer: inferrer,
		cache:    NewMemoryCache(),
		log:      zap.NewNop(),
		sem:      make(chan struct{}, 4),
		group:    newFlightGroup(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich fills in units for records that lack one, in place. It cannot fail:
// records whose metric resolves to nothing keep a nil unit, and records
// whose inference call failed additionally get their confidence downgraded.
func (e *Engine) Enrich(ctx context.Context, records []model.FactRecord, dc model.DocumentContext) {
	if e.inferrer == nil || len(records) == 0 {
		return
	}

	// Group record indices by distinct unit-less metric. Records with an
	// explicit unit are untouched: explicit always wins.
	byMetric := make(map[string][]int)
	for i, rec := range records {
		if rec.Unit != nil || rec.Metric == nil {
			continue
		}
		byMetric[*rec.Metric] = append(byMetric[*rec.Metric], i)
	}

	for metric, indices := range byMetric {
		unit, err := e.resolve(ctx, metric, dc)
		if err != nil {
			e.log.Debug("unit inference failed",
				zap.String("metric", metric), zap.Error(err))
			for _, i := range indices {
				records[i].Confidence *= failureDowngrade
			}
			continue
		}
		if unit == "" {
			continue
		}
		for _, i := range indices {
			records[i].Unit = model.String(unit)
		}
	}
}

// resolve returns the unit for a metric, consulting the cache first and
// deduplicating concurrent requests for the same metric.
func (e *Engine) resolve(ctx context.Context, metric string, dc model.DocumentContext) (string, error) {
	if unit, ok := e.cache.Get(metric); ok {
		return unit, nil
	}

	unit, err, _ := e.group.do(ctx, metric, func() (string, error) {
		u, err := e.call(ctx, metric, dc)
		if err == nil {
			// Cache before the flight entry is released so a concurrent
			// resolver cannot slip between and issue a second call.
			e.cache.Set(metric, u)
		}
		return u, err
	})
	return unit, err
}

// call performs the bounded, rate-limited external call with one retry.
func (e *Engine) call(ctx context.Context, metric string, dc model.DocumentContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(ErrUnavailable, err.Error())
	}
	select {
	case e.sem <- struct{}{}:
		defer func() { <-e.sem }()
	case <-ctx.Done():
		return "", errors.Wrap(ErrUnavailable, ctx.Err().Error())
	}

	q := buildQuery(metric, dc)
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return "", errors.Wrap(ErrUnavailable, err.Error())
			}
		}
		unit, err := e.inferrer.InferUnit(ctx, q)
		if err == nil {
			return unit, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", errors.Wrapf(ErrUnavailable, "metric %q: %v", metric, lastErr)
}

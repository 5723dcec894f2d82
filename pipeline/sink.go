package pipeline

import (
	"context"
	"sync"

	"github.com/tsawler/factura/model"
)

// Sink is the storage collaborator consuming extracted records. The
// pipeline is a pure producer: persistence, indexing, and retrieval are
// entirely the sink's concern.
type Sink interface {
	IngestFacts(ctx context.Context, records []model.FactRecord) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, records []model.FactRecord) error

func (f SinkFunc) IngestFacts(ctx context.Context, records []model.FactRecord) error {
	return f(ctx, records)
}

// MemorySink collects records in memory. Useful for tests and for callers
// that post-process records themselves.
type MemorySink struct {
	mu      sync.Mutex
	records []model.FactRecord
}

// NewMemorySink creates an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) IngestFacts(_ context.Context, records []model.FactRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// Len returns the number of collected records.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Records returns a copy of the collected records in provenance order.
// Tables are processed in parallel, so arrival order is meaningless.
func (s *MemorySink) Records() []model.FactRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.FactRecord, len(s.records))
	copy(out, s.records)
	model.SortByProvenance(out)
	return out
}

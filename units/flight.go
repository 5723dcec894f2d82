package units

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
)

// flightGroup deduplicates concurrent resolutions of the same metric: the
// first caller runs the function, later callers wait for its result. Calls
// are idempotent, so a caller whose context expires simply reports
// unavailability while the owner finishes.
type flightGroup struct {
	mu    sync.Mutex
	calls map[string]*flightCall
}

type flightCall struct {
	done chan struct{}
	unit string
	err  error
}

func newFlightGroup() *flightGroup {
	return &flightGroup{calls: make(map[string]*flightCall)}
}

// do runs fn for key, or waits for an in-flight run. shared is true when
// the result came from another caller's run.
func (g *flightGroup) do(ctx context.Context, key string, fn func() (string, error)) (unit string, err error, shared bool) {
	g.mu.Lock()
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		select {
		case <-c.done:
			return c.unit, c.err, true
		case <-ctx.Done():
			return "", errors.Wrap(ErrUnavailable, ctx.Err().Error()), true
		}
	}

	c := &flightCall{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	c.unit, c.err = fn()
	close(c.done)

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()

	return c.unit, c.err, false
}

package mount

import "context"

// Pending is the handle to an in-flight dispatch.
type Pending struct {
	done    chan struct{}
	outcome Outcome
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(outcome Outcome) {
	p.outcome = outcome
	close(p.done)
}

// Done is closed once the dispatch has settled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the dispatch settles or ctx ends. Giving up on the wait
// does not stop the load; it still completes and reports.
func (p *Pending) Wait(ctx context.Context) (Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.done:
		return p.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Outcome returns the settled outcome without blocking.
func (p *Pending) Outcome() (Outcome, bool) {
	select {
	case <-p.done:
		return p.outcome, true
	default:
		return Outcome{}, false
	}
}

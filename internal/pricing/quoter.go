package pricing

import (
	"context"
	"sync"
)

// Quoter layers the display ordering rule over the resolver: every
// quote shows the instant bundled-table estimate first, then the
// store-backed figure replaces it if and when it resolves. When quotes
// overlap, only the most recent one may apply its resolution; stale
// responses are dropped so an out-of-order fetch can never overwrite a
// newer price.
type Quoter struct {
	resolver *Resolver

	mu  sync.Mutex
	seq uint64
}

func NewQuoter(resolver *Resolver) *Quoter {
	return &Quoter{resolver: resolver}
}

// Quote returns the synchronous estimate immediately and resolves the
// authoritative breakdown in the background. apply is invoked at most
// once, and only if no newer Quote call has superseded this one.
func (q *Quoter) Quote(ctx context.Context, req Request, freq Frequency, apply func(Breakdown)) Breakdown {
	q.mu.Lock()
	q.seq++
	seq := q.seq
	q.mu.Unlock()

	estimate := CalculateSync(req, freq)

	go func() {
		resolved := q.resolver.Calculate(ctx, req, freq)

		q.mu.Lock()
		latest := q.seq == seq
		q.mu.Unlock()

		if latest && apply != nil {
			apply(resolved)
		}
	}()

	return estimate
}

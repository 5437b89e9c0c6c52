package pricing

import (
	"context"
	"log"
	"sync"
	"time"
)

// Source supplies current pricing rows. The production implementation
// is the GORM pricing repository; tests supply stubs.
type Source interface {
	CurrentRecords(ctx context.Context) ([]Record, error)
}

// DefaultCacheTTL bounds how stale a resolved table may be before the
// next calculation refetches.
const DefaultCacheTTL = 5 * time.Minute

type fetch struct {
	done chan struct{}
	tbl  *Table
	err  error
}

// Resolver is the asynchronous path: it merges store records over the
// bundled defaults and caches the result. Concurrent callers share a
// single in-flight fetch.
type Resolver struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	cached    *Table
	fetchedAt time.Time
	inflight  *fetch
}

func NewResolver(src Source) *Resolver {
	return &Resolver{
		src: src,
		ttl: DefaultCacheTTL,
		now: time.Now,
	}
}

// Current returns the merged pricing table, fetching from the source
// when the cache is cold or expired.
func (r *Resolver) Current(ctx context.Context) (*Table, error) {
	r.mu.Lock()
	if r.cached != nil && r.now().Sub(r.fetchedAt) < r.ttl {
		tbl := r.cached
		r.mu.Unlock()
		return tbl, nil
	}
	if r.inflight != nil {
		f := r.inflight
		r.mu.Unlock()
		select {
		case <-f.done:
			return f.tbl, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f := &fetch{done: make(chan struct{})}
	r.inflight = f
	r.mu.Unlock()

	records, err := r.src.CurrentRecords(ctx)

	r.mu.Lock()
	r.inflight = nil
	if err != nil {
		f.err = err
	} else {
		f.tbl = BuildTable(records, DefaultTable(), r.now())
		r.cached = f.tbl
		r.fetchedAt = r.now()
	}
	r.mu.Unlock()
	close(f.done)

	return f.tbl, f.err
}

// Calculate resolves current prices and computes the breakdown. A store
// failure is logged and the bundled-table result is returned instead;
// callers always get a number.
func (r *Resolver) Calculate(ctx context.Context, req Request, freq Frequency) Breakdown {
	tbl, err := r.Current(ctx)
	if err != nil {
		log.Printf("pricing: store fetch failed, using bundled table: %v", err)
		return CalculateSync(req, freq)
	}
	return Calculate(req, freq, tbl)
}

// Invalidate drops the cached table. The admin pricing surface calls
// this after every save so the next quote sees the edit.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.fetchedAt = time.Time{}
	r.mu.Unlock()
}

// Package pager loads ordered feed pages incrementally: a lazy,
// append-only sequence that ends when the server runs out of items.
package pager

import (
	"sync"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/logger"
)

// State is the pagination state machine:
//
//	Idle → Loading → Ready ⇄ LoadingMore → Exhausted
//
// Failed is reachable from Loading and LoadingMore and retryable back into
// the same loading state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoadingMore
	StateReady
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoadingMore:
		return "loading-more"
	case StateReady:
		return "ready"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchPage requests one page by zero-based index.
type FetchPage func(page, pageSize int) ([]api.Post, error)

// Pager drives one paginated collection, appending fetched pages into the
// cache under its key so optimistic patches can reach the items.
type Pager struct {
	store    *cache.Store
	key      cache.Key
	fetch    FetchPage
	pageSize int

	mu       sync.Mutex
	state    State
	nextPage int
	lastErr  error
}

// New creates a pager over key. pageSize is also the exhaustion test: a
// page with fewer items than requested is the last one.
func New(store *cache.Store, key cache.Key, pageSize int, fetch FetchPage) *Pager {
	return &Pager{
		store:    store,
		key:      key,
		fetch:    fetch,
		pageSize: pageSize,
		state:    StateIdle,
	}
}

// State returns the current pagination state.
func (p *Pager) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the error from the last failed fetch, if any.
func (p *Pager) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Items returns all posts fetched so far, in request order.
func (p *Pager) Items() []api.Post {
	if value, ok := p.store.Read(p.key); ok {
		if pages, ok := value.(cache.PostPages); ok {
			return pages.Flatten()
		}
	}
	return nil
}

// FetchNext loads the next page. It is a no-op returning nil while a fetch
// is already in flight or after exhaustion, so callers near the end of the
// list may invoke it repeatedly without issuing duplicate requests. Only
// one page request is ever in flight, which is what keeps pages appended
// in request order.
func (p *Pager) FetchNext() error {
	p.mu.Lock()
	switch p.state {
	case StateLoading, StateLoadingMore, StateExhausted:
		p.mu.Unlock()
		return nil
	}

	page := p.nextPage
	if page == 0 {
		p.state = StateLoading
	} else {
		p.state = StateLoadingMore
	}
	p.lastErr = nil
	p.mu.Unlock()

	logger.Debug("Fetching page", "key", p.key.String(), "page", page)
	items, err := p.fetch(page, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.state = StateFailed
		p.lastErr = err
		return err
	}

	exhausted := len(items) < p.pageSize
	p.appendPage(items, exhausted)
	p.nextPage = page + 1

	if exhausted {
		p.state = StateExhausted
	} else {
		p.state = StateReady
	}
	return nil
}

// Retry re-attempts the failed fetch. No-op unless the pager is Failed.
func (p *Pager) Retry() error {
	p.mu.Lock()
	if p.state != StateFailed {
		p.mu.Unlock()
		return nil
	}
	// FetchNext re-enters Loading or LoadingMore based on the cursor.
	p.state = StateReady
	if p.nextPage == 0 {
		p.state = StateIdle
	}
	p.mu.Unlock()

	return p.FetchNext()
}

// Reset drops all fetched pages and returns to Idle. The cache entry is
// invalidated so readers refetch.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = StateIdle
	p.nextPage = 0
	p.lastErr = nil
	p.store.Invalidate(p.key)
}

func (p *Pager) appendPage(items []api.Post, exhausted bool) {
	var pages cache.PostPages
	if value, ok := p.store.Read(p.key); ok {
		if existing, ok := value.(cache.PostPages); ok {
			pages = existing
		}
	}
	next := cache.PostPages{
		Pages:     append(append([][]api.Post{}, pages.Pages...), items),
		Exhausted: exhausted,
	}
	p.store.Write(p.key, next)
}

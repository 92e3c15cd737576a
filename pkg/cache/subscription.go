package cache

import (
	"context"
	"time"

	"github.com/campuslink/cli/pkg/logger"
)

// RefreshPolicy controls how a subscription keeps its key fresh. Today the
// only transport is interval polling; a push transport can satisfy the
// same subscription surface later without changing consumers.
type RefreshPolicy struct {
	Interval time.Duration
}

// FetchFunc produces a fresh value for a subscribed key.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Subscription keeps one cache key refreshed per its policy and delivers
// each new value on Updates.
type Subscription struct {
	store   *Store
	key     Key
	fetch   FetchFunc
	policy  RefreshPolicy
	updates chan interface{}
	cancel  context.CancelFunc
}

// Subscribe starts refreshing key with fetch under the given policy. The
// initial fetch happens immediately; failures are logged and retried on
// the next interval.
func (s *Store) Subscribe(ctx context.Context, key Key, fetch FetchFunc, policy RefreshPolicy) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		store:   s,
		key:     key,
		fetch:   fetch,
		policy:  policy,
		updates: make(chan interface{}, 1),
		cancel:  cancel,
	}
	go sub.run(ctx)
	return sub
}

// Updates delivers each refreshed value. The channel is closed when the
// subscription stops.
func (sub *Subscription) Updates() <-chan interface{} {
	return sub.updates
}

// Stop ends the subscription. The cache entry stays; only refreshing
// stops.
func (sub *Subscription) Stop() {
	sub.cancel()
}

func (sub *Subscription) run(ctx context.Context) {
	defer close(sub.updates)

	sub.refresh(ctx)

	ticker := time.NewTicker(sub.policy.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sub.refresh(ctx)
		}
	}
}

func (sub *Subscription) refresh(ctx context.Context) {
	value, err := sub.fetch(ctx)
	if err != nil {
		logger.Warn("Subscription refresh failed", "key", sub.key.String(), "error", err)
		return
	}

	sub.store.Write(sub.key, value)

	select {
	case sub.updates <- value:
	default:
		// Consumer is behind; drop in favor of the next refresh.
	}
}

// Package optimistic wraps state-changing network calls with an optimistic
// local cache effect and deterministic rollback. Every mutation follows the
// same sequence: snapshot the touched cache entries, patch them
// synchronously so the caller sees the change with zero latency, send the
// request, then reconcile on success or roll back on failure. The mutation
// types and their patch/rollback/invalidation sets are declared up front in
// mutations.go rather than scattered across callers.
package optimistic

import (
	"context"
	"errors"
	"sync"

	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/logger"
)

// Action names a logical mutation type.
type Action string

const (
	ActionLikePost    Action = "like-post"
	ActionComment     Action = "comment-create"
	ActionFollow      Action = "follow"
	ActionJoinGroup   Action = "join-group"
	ActionLikeStory   Action = "like-story"
	ActionSendMessage Action = "send-message"
)

// ErrPending is returned when the same action on the same entity already
// has an optimistic mutation in flight. The policy is coalesce-while-
// pending: the second attempt applies nothing and sends nothing.
var ErrPending = errors.New("optimistic: mutation already in flight for this entity")

// PatchSet is one cache entry touched by a mutation: the optimistic
// transform and its inverse.
type PatchSet struct {
	Key    cache.Key
	Apply  func(interface{}) interface{}
	Revert func(interface{}) interface{}
}

// Spec declares a mutation: what to patch, what to send, and what to do
// once the network resolves.
type Spec struct {
	Action   Action
	EntityID string

	Patches []PatchSet

	// Call performs the network request. It runs off the calling
	// goroutine; the request is never cancelled once sent.
	Call func(ctx context.Context) (interface{}, error)

	// Reconcile, when set, folds server-returned canonical values into the
	// cache after success. It must target only this mutation's entity,
	// never overwrite whole entries.
	Reconcile func(store *cache.Store, result interface{})

	// Invalidates is the fixed set of dependent keys marked stale after
	// success.
	Invalidates []cache.Key
}

// Pending is the handle for an in-flight mutation.
type Pending struct {
	done chan struct{}
	err  error
}

// Wait blocks until the mutation settles and returns its outcome.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// Done reports settlement without blocking.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

type inflightKey struct {
	action Action
	entity string
}

// Coordinator owns the snapshot/apply/send/reconcile sequence for all
// mutations against one cache store.
type Coordinator struct {
	store *cache.Store

	mu       sync.Mutex
	inflight map[inflightKey]*Pending
}

// NewCoordinator creates a coordinator over store.
func NewCoordinator(store *cache.Store) *Coordinator {
	return &Coordinator{
		store:    store,
		inflight: make(map[inflightKey]*Pending),
	}
}

// appliedPatch records one optimistic patch that actually landed, with the
// pre-mutation snapshot and the version the entry had right after the
// patch.
type appliedPatch struct {
	set       PatchSet
	snapshot  cache.Snapshot
	postApply uint64
}

// Dispatch runs the optimistic sequence for spec. The cache patches are
// applied synchronously before Dispatch returns; the network call and its
// reconciliation happen asynchronously. The returned Pending settles when
// reconciliation or rollback has finished.
func (c *Coordinator) Dispatch(ctx context.Context, spec Spec) (*Pending, error) {
	key := inflightKey{action: spec.Action, entity: spec.EntityID}

	c.mu.Lock()
	if _, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		logger.Debug("Mutation coalesced", "action", string(spec.Action), "entity", spec.EntityID)
		return nil, ErrPending
	}
	p := &Pending{done: make(chan struct{})}
	c.inflight[key] = p
	c.mu.Unlock()

	// Snapshot, then apply. Both are synchronous cache operations, so the
	// sequence is atomic with respect to every other synchronous cache
	// access.
	applied := make([]appliedPatch, 0, len(spec.Patches))
	for _, set := range spec.Patches {
		snap := c.store.Snapshot(set.Key)
		if c.store.Patch(set.Key, set.Apply) {
			applied = append(applied, appliedPatch{
				set:       set,
				snapshot:  snap,
				postApply: c.store.Version(set.Key),
			})
		}
	}

	go c.settle(ctx, spec, key, p, applied)

	return p, nil
}

// Run dispatches spec and waits for it to settle.
func (c *Coordinator) Run(ctx context.Context, spec Spec) error {
	p, err := c.Dispatch(ctx, spec)
	if err != nil {
		return err
	}
	return p.Wait()
}

func (c *Coordinator) settle(ctx context.Context, spec Spec, key inflightKey, p *Pending, applied []appliedPatch) {
	result, err := spec.Call(ctx)

	if err != nil {
		c.rollback(applied)
		logger.Debug("Mutation rolled back", "action", string(spec.Action), "entity", spec.EntityID, "error", err)
		p.err = err
	} else {
		if spec.Reconcile != nil {
			spec.Reconcile(c.store, result)
		}
		for _, k := range spec.Invalidates {
			c.store.Invalidate(k)
		}
	}

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	close(p.done)
}

// rollback undoes the optimistic patches. When an entry is untouched since
// our apply, the exact pre-mutation snapshot is restored. When something
// else wrote the entry in between, restoring the snapshot would clobber
// that newer state, so the mutation's inverse patch is applied instead.
func (c *Coordinator) rollback(applied []appliedPatch) {
	for i := len(applied) - 1; i >= 0; i-- {
		ap := applied[i]
		if c.store.RestoreIfVersion(ap.snapshot, ap.postApply) {
			continue
		}
		c.store.Patch(ap.set.Key, ap.set.Revert)
	}
}

// InFlight reports whether a mutation of action on entity is pending.
func (c *Coordinator) InFlight(action Action, entityID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[inflightKey{action: action, entity: entityID}]
	return busy
}

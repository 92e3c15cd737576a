package pager

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
)

// makePosts builds a page of n posts with ids continuing from start.
func makePosts(start, n int) []api.Post {
	posts := make([]api.Post, n)
	for i := range posts {
		posts[i] = api.Post{ID: fmt.Sprintf("%d", start+i)}
	}
	return posts
}

// fixedPages serves pre-built pages by index.
func fixedPages(pages ...[]api.Post) FetchPage {
	return func(page, pageSize int) ([]api.Post, error) {
		if page >= len(pages) {
			return nil, nil
		}
		return pages[page], nil
	}
}

func TestInitialStateIsIdle(t *testing.T) {
	p := New(cache.NewStore(), cache.FeedKey(), 3, fixedPages())
	assert.Equal(t, StateIdle, p.State())
	assert.Empty(t, p.Items())
}

func TestFetchNextAppendsInRequestOrder(t *testing.T) {
	store := cache.NewStore()
	p := New(store, cache.FeedKey(), 3, fixedPages(
		makePosts(0, 3),
		makePosts(3, 3),
		makePosts(6, 1),
	))

	require.NoError(t, p.FetchNext())
	assert.Equal(t, StateReady, p.State())
	require.NoError(t, p.FetchNext())
	assert.Equal(t, StateReady, p.State())

	items := p.Items()
	require.Len(t, items, 6)
	for i, post := range items {
		assert.Equal(t, fmt.Sprintf("%d", i), post.ID, "pages must stay in request order")
	}
}

func TestShortPageExhausts(t *testing.T) {
	p := New(cache.NewStore(), cache.FeedKey(), 3, fixedPages(
		makePosts(0, 3),
		makePosts(3, 1),
	))

	require.NoError(t, p.FetchNext())
	require.NoError(t, p.FetchNext())
	assert.Equal(t, StateExhausted, p.State())
	assert.Len(t, p.Items(), 4)

	// Further fetches are no-ops.
	require.NoError(t, p.FetchNext())
	assert.Len(t, p.Items(), 4)
}

func TestEmptyFirstPageExhaustsImmediately(t *testing.T) {
	p := New(cache.NewStore(), cache.FeedKey(), 3, fixedPages())

	require.NoError(t, p.FetchNext())
	assert.Equal(t, StateExhausted, p.State())
	assert.Empty(t, p.Items())
}

func TestExactFinalPageNeedsOneMoreFetch(t *testing.T) {
	// A full page gives no exhaustion signal; the empty page after it does.
	p := New(cache.NewStore(), cache.FeedKey(), 3, fixedPages(makePosts(0, 3)))

	require.NoError(t, p.FetchNext())
	assert.Equal(t, StateReady, p.State())

	require.NoError(t, p.FetchNext())
	assert.Equal(t, StateExhausted, p.State())
	assert.Len(t, p.Items(), 3)
}

func TestFetchNextWhileLoadingIsNoOp(t *testing.T) {
	var calls int32
	block := make(chan struct{})
	fetch := func(page, pageSize int) ([]api.Post, error) {
		atomic.AddInt32(&calls, 1)
		<-block
		return makePosts(0, 3), nil
	}

	p := New(cache.NewStore(), cache.FeedKey(), 3, fetch)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = p.FetchNext()
	}()

	// Wait until the fetch is in flight.
	for atomic.LoadInt32(&calls) == 0 {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, StateLoading, p.State())

	// Level-triggered callers hammer FetchNext; only one request goes out.
	require.NoError(t, p.FetchNext())
	require.NoError(t, p.FetchNext())

	close(block)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Len(t, p.Items(), 3)
}

func TestSecondPageUsesLoadingMore(t *testing.T) {
	var states []State
	p := New(cache.NewStore(), cache.FeedKey(), 3, nil)
	p.fetch = func(page, pageSize int) ([]api.Post, error) {
		states = append(states, p.State())
		return makePosts(page*3, 3), nil
	}

	require.NoError(t, p.FetchNext())
	require.NoError(t, p.FetchNext())

	require.Len(t, states, 2)
	assert.Equal(t, StateLoading, states[0])
	assert.Equal(t, StateLoadingMore, states[1])
}

func TestFailureKeepsFetchedItemsAndRetries(t *testing.T) {
	boom := errors.New("network down")
	var fail atomic.Bool
	fetch := func(page, pageSize int) ([]api.Post, error) {
		if fail.Load() {
			return nil, boom
		}
		return makePosts(page*3, 3), nil
	}

	p := New(cache.NewStore(), cache.FeedKey(), 3, fetch)
	require.NoError(t, p.FetchNext())

	fail.Store(true)
	err := p.FetchNext()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateFailed, p.State())
	assert.ErrorIs(t, p.Err(), boom)
	assert.Len(t, p.Items(), 3, "already-fetched pages survive a failure")

	fail.Store(false)
	require.NoError(t, p.Retry())
	assert.Equal(t, StateReady, p.State())
	assert.Len(t, p.Items(), 6)
	assert.NoError(t, p.Err())
}

func TestRetryIsNoOpUnlessFailed(t *testing.T) {
	var calls int32
	p := New(cache.NewStore(), cache.FeedKey(), 3, func(page, pageSize int) ([]api.Post, error) {
		atomic.AddInt32(&calls, 1)
		return makePosts(0, 3), nil
	})

	require.NoError(t, p.Retry())
	assert.Zero(t, atomic.LoadInt32(&calls))

	require.NoError(t, p.FetchNext())
	require.NoError(t, p.Retry())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFailedPageIsNotAppended(t *testing.T) {
	boom := errors.New("boom")
	p := New(cache.NewStore(), cache.FeedKey(), 3, func(page, pageSize int) ([]api.Post, error) {
		return nil, boom
	})

	require.Error(t, p.FetchNext())
	assert.Empty(t, p.Items())

	// Retry fetches the same page index, not the one after.
	p.fetch = fixedPages(makePosts(0, 2))
	require.NoError(t, p.Retry())
	assert.Equal(t, StateExhausted, p.State())
	assert.Len(t, p.Items(), 2)
}

func TestResetReturnsToIdleAndInvalidates(t *testing.T) {
	store := cache.NewStore()
	p := New(store, cache.FeedKey(), 3, fixedPages(makePosts(0, 2)))

	require.NoError(t, p.FetchNext())
	assert.Equal(t, StateExhausted, p.State())

	p.Reset()
	assert.Equal(t, StateIdle, p.State())
	assert.Empty(t, p.Items())
	_, ok := store.Read(cache.FeedKey())
	assert.False(t, ok)
}

func TestOptimisticPatchReachesPagedItems(t *testing.T) {
	store := cache.NewStore()
	p := New(store, cache.FeedKey(), 2, fixedPages(makePosts(0, 2), makePosts(2, 2)))

	require.NoError(t, p.FetchNext())
	require.NoError(t, p.FetchNext())

	store.Patch(cache.FeedKey(), cache.PostUpdater("3", func(post api.Post) api.Post {
		post.Likes = 99
		return post
	}))

	items := p.Items()
	require.Len(t, items, 4)
	assert.Equal(t, 99, items[3].Likes)
}

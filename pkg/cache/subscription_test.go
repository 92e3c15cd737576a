package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeRefreshesImmediately(t *testing.T) {
	s := NewStore()
	key := NotificationsKey()

	sub := s.Subscribe(context.Background(), key,
		func(ctx context.Context) (interface{}, error) { return "fresh", nil },
		RefreshPolicy{Interval: time.Hour})
	defer sub.Stop()

	select {
	case value := <-sub.Updates():
		assert.Equal(t, "fresh", value)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial refresh")
	}

	got, ok := s.Read(key)
	require.True(t, ok)
	assert.Equal(t, "fresh", got)
}

func TestSubscribeKeepsPollingOnInterval(t *testing.T) {
	s := NewStore()
	var calls int32

	sub := s.Subscribe(context.Background(), NotificationsKey(),
		func(ctx context.Context) (interface{}, error) {
			return atomic.AddInt32(&calls, 1), nil
		},
		RefreshPolicy{Interval: 5 * time.Millisecond})
	defer sub.Stop()

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) < 3 {
		select {
		case <-deadline:
			t.Fatal("subscription stopped polling")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSubscribeRetriesAfterFailure(t *testing.T) {
	s := NewStore()
	key := NotificationsKey()
	var calls int32

	sub := s.Subscribe(context.Background(), key,
		func(ctx context.Context) (interface{}, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return nil, errors.New("network down")
			}
			return "recovered", nil
		},
		RefreshPolicy{Interval: 5 * time.Millisecond})
	defer sub.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if value, ok := s.Read(key); ok {
			assert.Equal(t, "recovered", value)
			return
		}
		select {
		case <-deadline:
			t.Fatal("subscription never recovered")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSubscriptionStopClosesUpdates(t *testing.T) {
	s := NewStore()

	sub := s.Subscribe(context.Background(), NotificationsKey(),
		func(ctx context.Context) (interface{}, error) { return 1, nil },
		RefreshPolicy{Interval: time.Hour})

	sub.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-sub.Updates():
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("updates channel never closed")
		}
	}
}

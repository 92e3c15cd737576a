package stories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/cli/pkg/api"
)

// ticksPerStory is how many ticks one item takes at the default step.
const ticksPerStory = maxProgress / progressStep

type viewRecorder struct {
	mu      sync.Mutex
	entered []int
}

func (r *viewRecorder) record(_ api.Story, index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entered = append(r.entered, index)
}

func (r *viewRecorder) views() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.entered...)
}

func makeStories(n int) []api.Story {
	stories := make([]api.Story, n)
	for i := range stories {
		stories[i] = api.Story{ID: string(rune('a' + i))}
	}
	return stories
}

func tick(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

func TestOpenStartsAtFirstStoryAndRecordsView(t *testing.T) {
	rec := &viewRecorder{}
	c := NewController(makeStories(3), DefaultConfig(), rec.record)

	c.Open()
	assert.True(t, c.IsOpen())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Progress())
	assert.Equal(t, []int{0}, rec.views())
}

func TestOpenEmptyListIsNoOp(t *testing.T) {
	rec := &viewRecorder{}
	c := NewController(nil, DefaultConfig(), rec.record)

	c.Open()
	assert.False(t, c.IsOpen())
	assert.Empty(t, rec.views())
}

func TestAutoAdvanceThroughAllStoriesThenClose(t *testing.T) {
	rec := &viewRecorder{}
	c := NewController(makeStories(3), DefaultConfig(), rec.record)
	c.Open()

	tick(c, ticksPerStory)
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, 0, c.Progress(), "progress resets on advance")

	tick(c, ticksPerStory)
	assert.Equal(t, 2, c.Index())

	tick(c, ticksPerStory)
	assert.False(t, c.IsOpen(), "viewer closes after the last story")

	assert.Equal(t, []int{0, 1, 2}, rec.views(), "each story viewed exactly once")
}

func TestTickAccumulatesProgress(t *testing.T) {
	c := NewController(makeStories(2), DefaultConfig(), nil)
	c.Open()

	tick(c, 10)
	assert.Equal(t, 10*progressStep, c.Progress())
	assert.Equal(t, 0, c.Index())
}

func TestForwardAdvancesAndResetsProgress(t *testing.T) {
	rec := &viewRecorder{}
	c := NewController(makeStories(3), DefaultConfig(), rec.record)
	c.Open()

	tick(c, 10)
	c.Forward()

	assert.Equal(t, 1, c.Index())
	assert.Equal(t, 0, c.Progress())
	assert.Equal(t, []int{0, 1}, rec.views())
}

func TestForwardOnLastStoryCloses(t *testing.T) {
	c := NewController(makeStories(2), DefaultConfig(), nil)
	c.Open()

	c.Forward()
	require.True(t, c.IsOpen())
	c.Forward()
	assert.False(t, c.IsOpen())
}

func TestBackMovesToPreviousAndRefiresView(t *testing.T) {
	rec := &viewRecorder{}
	c := NewController(makeStories(3), DefaultConfig(), rec.record)
	c.Open()
	c.Forward()

	tick(c, 10)
	c.Back()

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Progress())
	// Revisits re-fire by default.
	assert.Equal(t, []int{0, 1, 0}, rec.views())
}

func TestBackOnFirstStoryOnlyResetsProgress(t *testing.T) {
	rec := &viewRecorder{}
	c := NewController(makeStories(2), DefaultConfig(), rec.record)
	c.Open()

	tick(c, 10)
	c.Back()

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Progress())
	assert.Equal(t, []int{0}, rec.views(), "staying put must not re-record")
}

func TestDedupeViewsSuppressesRevisits(t *testing.T) {
	rec := &viewRecorder{}
	cfg := DefaultConfig()
	cfg.DedupeViews = true
	c := NewController(makeStories(3), cfg, rec.record)
	c.Open()

	c.Forward()
	c.Back()
	c.Forward()

	assert.Equal(t, []int{0, 1}, rec.views())
}

func TestCloseResetsPosition(t *testing.T) {
	rec := &viewRecorder{}
	c := NewController(makeStories(3), DefaultConfig(), rec.record)
	c.Open()
	c.Forward()
	tick(c, 10)

	c.Close()
	assert.False(t, c.IsOpen())

	// Reopening starts over from the first story.
	c.Open()
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Progress())
	assert.Equal(t, []int{0, 1, 0}, rec.views())
}

func TestTickAfterCloseIsNoOp(t *testing.T) {
	c := NewController(makeStories(1), DefaultConfig(), nil)
	c.Open()
	c.Close()

	tick(c, 5)
	assert.Equal(t, 0, c.Progress())
	assert.False(t, c.IsOpen())
}

func TestCurrentReturnsStoryAtIndex(t *testing.T) {
	stories := makeStories(2)
	c := NewController(stories, DefaultConfig(), nil)

	_, ok := c.Current()
	assert.False(t, ok, "closed viewer has no current story")

	c.Open()
	got, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, stories[0].ID, got.ID)

	c.Forward()
	got, _ = c.Current()
	assert.Equal(t, stories[1].ID, got.ID)
}

func TestRunDrivesTimerUntilEnd(t *testing.T) {
	rec := &viewRecorder{}
	cfg := Config{Tick: time.Millisecond}
	c := NewController(makeStories(2), cfg, rec.record)

	done := make(chan struct{})
	go func() {
		c.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("slideshow never finished")
	}

	assert.False(t, c.IsOpen())
	assert.Equal(t, []int{0, 1}, rec.views())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := Config{Tick: time.Millisecond}
	c := NewController(makeStories(100), cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
	assert.False(t, c.IsOpen())
}

// Package stories drives a timed slideshow over one author's ordered story
// items: automatic progress on a fixed tick, manual back/forward taps, and
// a view-recorded side effect on every index entry.
package stories

import (
	"context"
	"sync"
	"time"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/logger"
)

// progressStep is the progress gained per tick. With the default 50ms tick
// that is ~2.5s per story item.
const progressStep = 2

// maxProgress is the full progress bar.
const maxProgress = 100

// Config tunes one controller.
type Config struct {
	// Tick is the timer interval for automatic progress.
	Tick time.Duration

	// DedupeViews suppresses re-recording a view when the user navigates
	// back to an index already entered in this session. Off by default:
	// revisits re-fire view events.
	DedupeViews bool
}

// DefaultConfig matches the product behavior: 50ms tick, revisits re-fire.
func DefaultConfig() Config {
	return Config{Tick: 50 * time.Millisecond}
}

// ViewFunc is called when an index is entered, with the story shown there.
type ViewFunc func(story api.Story, index int)

// Controller runs the slideshow state: currentIndex and linear progress
// 0–100. All methods are safe for use from the timer goroutine and the
// input goroutine.
type Controller struct {
	cfg     Config
	stories []api.Story
	onView  ViewFunc

	mu       sync.Mutex
	index    int
	progress int
	open     bool
	viewed   map[int]bool
	closed   chan struct{}
}

// NewController creates a controller over one author-group's stories.
func NewController(stories []api.Story, cfg Config, onView ViewFunc) *Controller {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultConfig().Tick
	}
	return &Controller{
		cfg:     cfg,
		stories: stories,
		onView:  onView,
	}
}

// Open starts the slideshow at the first item and records its view.
// Opening an empty story list is a no-op.
func (c *Controller) Open() {
	c.mu.Lock()
	if c.open || len(c.stories) == 0 {
		c.mu.Unlock()
		return
	}
	c.open = true
	c.index = 0
	c.progress = 0
	c.viewed = make(map[int]bool)
	c.closed = make(chan struct{})
	c.mu.Unlock()

	c.recordView(0)
}

// Close stops the slideshow and resets position so reopening starts from
// the first item. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller) closeLocked() {
	if !c.open {
		return
	}
	c.open = false
	c.index = 0
	c.progress = 0
	close(c.closed)
}

// Closed is closed when the slideshow ends, whether by running out of
// items, an explicit Close, or context cancellation in Run.
func (c *Controller) Closed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// IsOpen reports whether the slideshow is running.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Index returns the current 0-based story index.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Progress returns the current progress, 0–100.
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Current returns the story at the current index.
func (c *Controller) Current() (api.Story, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open || c.index >= len(c.stories) {
		return api.Story{}, false
	}
	return c.stories[c.index], true
}

// Tick advances automatic progress by one step. Reaching full progress
// moves to the next item, or closes the viewer at the end of the list.
// Exposed so the timer loop and tests share one code path.
func (c *Controller) Tick() {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return
	}

	c.progress += progressStep
	if c.progress < maxProgress {
		c.mu.Unlock()
		return
	}

	if c.index >= len(c.stories)-1 {
		c.closeLocked()
		c.mu.Unlock()
		return
	}

	c.index++
	c.progress = 0
	entered := c.index
	c.mu.Unlock()

	c.recordView(entered)
}

// Back moves to the previous item (tap on the left half). Floor at the
// first item; progress resets either way. The automatic timer keeps
// running against the new index.
func (c *Controller) Back() {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return
	}
	c.progress = 0
	if c.index == 0 {
		c.mu.Unlock()
		return
	}
	c.index--
	entered := c.index
	c.mu.Unlock()

	c.recordView(entered)
}

// Forward moves to the next item (tap on the right half), or closes the
// viewer when already at the last item.
func (c *Controller) Forward() {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return
	}
	if c.index >= len(c.stories)-1 {
		c.closeLocked()
		c.mu.Unlock()
		return
	}
	c.index++
	c.progress = 0
	entered := c.index
	c.mu.Unlock()

	c.recordView(entered)
}

// Run opens the slideshow and drives the automatic timer until the viewer
// closes or ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	c.Open()
	if !c.IsOpen() {
		return
	}

	ticker := time.NewTicker(c.cfg.Tick)
	defer ticker.Stop()

	closed := c.Closed()
	for {
		select {
		case <-ctx.Done():
			c.Close()
			return
		case <-closed:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// recordView fires the view side effect for entering an index. Every
// entry fires, including re-entry on manual navigation, unless
// DedupeViews is set.
func (c *Controller) recordView(index int) {
	if c.onView == nil {
		return
	}

	c.mu.Lock()
	if index >= len(c.stories) {
		c.mu.Unlock()
		return
	}
	if c.cfg.DedupeViews && c.viewed[index] {
		c.mu.Unlock()
		return
	}
	c.viewed[index] = true
	story := c.stories[index]
	c.mu.Unlock()

	logger.Debug("Story view recorded", "story_id", story.ID, "index", index)
	c.onView(story, index)
}

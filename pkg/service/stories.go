package service

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/config"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/optimistic"
	"github.com/campuslink/cli/pkg/output"
	"github.com/campuslink/cli/pkg/stories"
)

// StoryService provides the stories feed and the slideshow viewer.
type StoryService struct {
	store     *cache.Store
	mutations *optimistic.Coordinator
}

// NewStoryService creates a new story service.
func NewStoryService(store *cache.Store, mutations *optimistic.Coordinator) *StoryService {
	return &StoryService{store: store, mutations: mutations}
}

// ListStories displays the stories feed without opening the viewer.
func (ss *StoryService) ListStories() error {
	if err := EnsureSession(); err != nil {
		return err
	}

	feed, err := ss.loadStories()
	if err != nil {
		return fmt.Errorf("failed to fetch stories: %w", err)
	}

	if len(feed) == 0 {
		fmt.Println("No stories right now.")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Stories", feed)
	}

	fmt.Printf("\n✨ Stories\n\n")
	for i, story := range feed {
		boldText.Printf("%d. @%s", i+1, story.Author.Username)
		dimText.Printf(" · %s · 👁 %d · ♥ %d\n", story.Timestamp, story.Views, story.Likes)
	}
	fmt.Printf("\nWatch with 'campuslink story watch'\n")
	return nil
}

// Watch opens the slideshow viewer over the stories feed, optionally
// filtered to one author. Stories auto-advance; 'n' and 'p' navigate,
// 'q' quits. Each story entered records a view.
func (ss *StoryService) Watch(username string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	feed, err := ss.loadStories()
	if err != nil {
		return fmt.Errorf("failed to fetch stories: %w", err)
	}
	if username != "" {
		filtered := feed[:0:0]
		for _, s := range feed {
			if s.Author.Username == username {
				filtered = append(filtered, s)
			}
		}
		feed = filtered
	}
	if len(feed) == 0 {
		fmt.Println("No stories to watch.")
		return nil
	}

	cfg := stories.Config{
		Tick:        time.Duration(config.GetInt("stories.tick_ms")) * time.Millisecond,
		DedupeViews: config.GetBool("stories.dedupe_views"),
	}

	controller := stories.NewController(feed, cfg, func(story api.Story, index int) {
		ss.renderStory(story, index, len(feed))
		go ss.recordView(story.ID)
	})

	fmt.Printf("\n✨ Watching stories. [n]ext, [p]revious, [q]uit\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ss.readNavigation(ctx, controller)
	controller.Run(ctx)

	fmt.Println("\nDone watching stories.")
	return nil
}

// CreateStory publishes a new story.
func (ss *StoryService) CreateStory(content, imagePath string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	if content == "" && imagePath == "" {
		return errors.ValidationError("content", "story needs text or an image")
	}
	if imagePath != "" {
		if _, err := os.Stat(imagePath); err != nil {
			return errors.FileNotFoundError(imagePath)
		}
	}

	output.PrintInfo("Publishing story...")
	story, err := api.CreateStory(content, imagePath)
	if err != nil {
		output.PrintError("Failed to create story: %v", err)
		return err
	}

	ss.store.Invalidate(cache.StoriesFeedKey())

	output.PrintSuccess("✓ Story published (story %s)", story.ID)
	return nil
}

// ToggleLike likes or unlikes a story, independent of the viewer's
// timer and navigation.
func (ss *StoryService) ToggleLike(storyID string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	feed, err := ss.loadStories()
	if err != nil {
		return fmt.Errorf("failed to fetch stories: %w", err)
	}

	var story *api.Story
	for i := range feed {
		if feed[i].ID == storyID {
			story = &feed[i]
			break
		}
	}
	if story == nil {
		return errors.NotFoundError("story", storyID)
	}

	verb := "Liked"
	if story.IsLiked {
		verb = "Unliked"
	}

	err = ss.mutations.Run(context.Background(), optimistic.ToggleLikeStory(*story))
	if err == optimistic.ErrPending {
		output.PrintWarning("A like for this story is already in flight")
		return nil
	}
	if err != nil {
		output.PrintError("Failed to update like: %v", err)
		return err
	}

	output.PrintSuccess("✓ %s story %s", verb, storyID)
	return nil
}

func (ss *StoryService) loadStories() ([]api.Story, error) {
	key := cache.StoriesFeedKey()
	if value, ok := ss.store.Read(key); ok {
		if feed, ok := value.([]api.Story); ok {
			return feed, nil
		}
	}

	feed, err := api.GetStoriesFeed()
	if err != nil {
		return nil, err
	}
	ss.store.Write(key, feed)
	return feed, nil
}

func (ss *StoryService) renderStory(story api.Story, index, total int) {
	fmt.Printf("\n")
	boldText.Printf("[%d/%d] @%s", index+1, total, story.Author.Username)
	dimText.Printf(" · %s\n", story.Timestamp)
	if story.Content != "" {
		fmt.Printf("%s\n", story.Content)
	}
	if story.ImageURL != "" {
		dimText.Printf("[image] %s\n", story.ImageURL)
	}
}

// recordView reports the view to the server and bumps the cached count.
// View failures are logged, never surfaced into the slideshow.
func (ss *StoryService) recordView(storyID string) {
	if err := api.ViewStory(storyID); err != nil {
		logger.Warn("Failed to record story view", "story_id", storyID, "error", err)
		return
	}
	ss.store.Patch(cache.StoriesFeedKey(), func(value interface{}) interface{} {
		return cache.UpdateStoryValue(value, storyID, func(s api.Story) api.Story {
			s.Views++
			return s
		})
	})
}

func (ss *StoryService) readNavigation(ctx context.Context, controller *stories.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "n", "":
			controller.Forward()
		case "p":
			controller.Back()
		case "q":
			controller.Close()
			return
		}
	}
}

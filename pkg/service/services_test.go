package service

import (
	"testing"

	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/optimistic"
)

func TestServiceConstructors(t *testing.T) {
	store := cache.NewStore()
	mutations := optimistic.NewCoordinator(store)

	if NewAuthService() == nil {
		t.Error("NewAuthService returned nil")
	}
	if NewFeedService(store) == nil {
		t.Error("NewFeedService returned nil")
	}
	if NewPostService(store, mutations) == nil {
		t.Error("NewPostService returned nil")
	}
	if NewCommentService(store, mutations) == nil {
		t.Error("NewCommentService returned nil")
	}
	if NewProfileService(store, mutations) == nil {
		t.Error("NewProfileService returned nil")
	}
	if NewGroupService(store, mutations) == nil {
		t.Error("NewGroupService returned nil")
	}
	if NewStoryService(store, mutations) == nil {
		t.Error("NewStoryService returned nil")
	}
	if NewMessageService(store, mutations) == nil {
		t.Error("NewMessageService returned nil")
	}
	if NewNotificationService(store) == nil {
		t.Error("NewNotificationService returned nil")
	}
	if NewSearchService() == nil {
		t.Error("NewSearchService returned nil")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		max    int
		expect string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this caption is too long", 10, "this capt…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.expect {
			t.Errorf("truncate(%q, %d): got %q, want %q", tt.in, tt.max, got, tt.expect)
		}
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/config"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/output"
)

// NotificationService provides the notification list and a live watch
// mode that polls on an interval.
type NotificationService struct {
	store *cache.Store
}

// NewNotificationService creates a new notification service.
func NewNotificationService(store *cache.Store) *NotificationService {
	return &NotificationService{store: store}
}

// List displays the viewer's notifications.
func (ns *NotificationService) List() error {
	if err := EnsureSession(); err != nil {
		return err
	}
	logger.Debug("Listing notifications")

	key := cache.NotificationsKey()
	var notifications []api.Notification
	if value, ok := ns.store.Read(key); ok {
		notifications, _ = value.([]api.Notification)
	}
	if notifications == nil {
		fetched, err := api.GetNotifications()
		if err != nil {
			return fmt.Errorf("failed to fetch notifications: %w", err)
		}
		ns.store.Write(key, fetched)
		notifications = fetched
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Notifications", notifications)
	}

	unread := api.UnreadCount(notifications)
	fmt.Printf("\n🔔 Notifications")
	if unread > 0 {
		fmt.Printf(" (%d unread)", unread)
	}
	fmt.Printf("\n\n")
	displayNotifications(notifications)
	return nil
}

// Watch polls for notifications until interrupted, printing new ones as
// they arrive.
func (ns *NotificationService) Watch(ctx context.Context) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	interval := time.Duration(config.GetInt("cache.notification_poll")) * time.Second
	output.PrintInfo("Watching notifications every %s. Ctrl+C to stop.", interval)

	seen := make(map[string]bool)
	first := true

	sub := ns.store.Subscribe(ctx, cache.NotificationsKey(),
		func(ctx context.Context) (interface{}, error) {
			return api.GetNotifications()
		},
		cache.RefreshPolicy{Interval: interval})
	defer sub.Stop()

	for value := range sub.Updates() {
		notifications, ok := value.([]api.Notification)
		if !ok {
			continue
		}
		for _, n := range notifications {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			// The first refresh is backlog, not news.
			if !first {
				fmt.Printf("🔔 %s ", n.Message)
				dimText.Printf("%s\n", n.Timestamp)
			}
		}
		if first {
			first = false
			unread := api.UnreadCount(notifications)
			if unread > 0 {
				output.PrintInfo("%d unread notification(s)", unread)
			}
		}
	}
	return nil
}

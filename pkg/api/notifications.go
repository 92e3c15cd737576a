package api

import (
	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/logger"
)

// GetNotifications retrieves the viewer's notifications, newest first
func GetNotifications() ([]Notification, error) {
	logger.Debug("Fetching notifications")

	var raw []rawNotification

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get("/notifications/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	notifications := make([]Notification, 0, len(raw))
	for _, n := range raw {
		notifications = append(notifications, normalizeNotification(n))
	}
	return notifications, nil
}

// UnreadCount counts the unread notifications in a list
func UnreadCount(notifications []Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

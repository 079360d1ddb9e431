package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v57/github"
)

const notificationsPerPage = 50

// ListNotificationPage fetches one page of the notification feed,
// including already-read notifications. A zero since value means no
// lower bound. An empty result signals the end of the feed; callers
// stop paging on it.
func (c *Client) ListNotificationPage(ctx context.Context, page int, since time.Time) ([]*github.Notification, error) {
	opts := &github.NotificationListOptions{
		All: true,
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: notificationsPerPage,
		},
	}
	if !since.IsZero() {
		opts.Since = since.UTC()
	}

	notifications, _, err := c.client.Activity.ListNotifications(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications page %d: %v", page, err)
	}
	return notifications, nil
}

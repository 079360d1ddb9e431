package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
)

// HasExplicitSubscription reports whether the user deliberately opted
// in to a thread. The API answers 404 when no per-thread subscription
// record exists, which is the normal implicit-subscription signal, not
// an error. A record without a URL is treated the same way.
func (c *Client) HasExplicitSubscription(ctx context.Context, threadID string) (bool, error) {
	sub, resp, err := c.client.Activity.GetThreadSubscription(ctx, threadID)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to get subscription for thread %s: %v", threadID, err)
	}
	return sub.GetURL() != "", nil
}

// Unsubscribe turns off further notifications for a thread and ignores
// it. The boolean result reports whether the API acknowledged the
// write with a subscribed field; a missing acknowledgment is a warning
// condition for the caller, not a failure.
func (c *Client) Unsubscribe(ctx context.Context, threadID string) (bool, error) {
	sub, _, err := c.client.Activity.SetThreadSubscription(ctx, threadID, &github.Subscription{
		Subscribed: github.Bool(false),
		Ignored:    github.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("failed to unsubscribe from thread %s: %v", threadID, err)
	}
	return sub != nil && sub.Subscribed != nil, nil
}

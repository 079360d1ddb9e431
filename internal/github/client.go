package github

import (
	"context"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client is a thin wrapper around the GitHub API client, exposing just
// the notification and thread-subscription calls the unsubscribe loop
// needs.
type Client struct {
	client *github.Client
}

func NewClient(token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	return &Client{
		client: client,
	}
}

// newTestClient wires the wrapper to an arbitrary API client; tests
// point it at an httptest server.
func newTestClient(gh *github.Client) *Client {
	return &Client{client: gh}
}

package filter

import (
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notification(subjectType, reason, owner, repo string) *github.Notification {
	fullName := owner + "/" + repo
	return &github.Notification{
		ID:     github.String("1234"),
		Reason: github.String(reason),
		Subject: &github.NotificationSubject{
			Type:  github.String(subjectType),
			Title: github.String("some thread"),
		},
		Repository: &github.Repository{
			Name:     github.String(repo),
			FullName: github.String(fullName),
		},
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		notif  *github.Notification
		want   bool
	}{
		{
			name:  "implicitly subscribed pull request passes",
			notif: notification("PullRequest", "subscribed", "octo", "widgets"),
			want:  true,
		},
		{
			name:  "release is always rejected",
			notif: notification("Release", "subscribed", "octo", "widgets"),
			want:  false,
		},
		{
			name:  "mentioned reason is never touched",
			notif: notification("Issue", "mentioned", "octo", "widgets"),
			want:  false,
		},
		{
			name:  "author reason is never touched",
			notif: notification("PullRequest", "author", "octo", "widgets"),
			want:  false,
		},
		{
			name:   "include list matches full name",
			filter: Filter{Include: []string{"octo/*"}},
			notif:  notification("Issue", "subscribed", "octo", "widgets"),
			want:   true,
		},
		{
			name:   "include list rejects other owner",
			filter: Filter{Include: []string{"octo/*"}},
			notif:  notification("Issue", "subscribed", "other", "widgets"),
			want:   false,
		},
		{
			name:   "short pattern matches short name only",
			filter: Filter{Include: []string{"widgets"}},
			notif:  notification("Issue", "subscribed", "anyone", "widgets"),
			want:   true,
		},
		{
			name:   "exclude wins over include",
			filter: Filter{Include: []string{"noisy-repo"}, Exclude: []string{"noisy-repo"}},
			notif:  notification("Issue", "subscribed", "octo", "noisy-repo"),
			want:   false,
		},
		{
			name:   "exclude by short name",
			filter: Filter{Exclude: []string{"noisy-repo"}},
			notif:  notification("Issue", "subscribed", "octo", "noisy-repo"),
			want:   false,
		},
		{
			name:   "question mark and class globs",
			filter: Filter{Include: []string{"widget?"}, Exclude: []string{"[a-c]*"}},
			notif:  notification("Issue", "subscribed", "octo", "widgets"),
			want:   true,
		},
		{
			name:   "matching is case sensitive",
			filter: Filter{Include: []string{"Widgets"}},
			notif:  notification("Issue", "subscribed", "octo", "widgets"),
			want:   false,
		},
		{
			name:   "any include pattern is enough",
			filter: Filter{Include: []string{"nothing", "wid*"}},
			notif:  notification("Issue", "subscribed", "octo", "widgets"),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter.Eligible(tt.notif)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePatterns(t *testing.T) {
	assert.NoError(t, ValidatePatterns(nil))
	assert.NoError(t, ValidatePatterns([]string{"octo/*", "widget?", "[a-c]*"}))

	err := ValidatePatterns([]string{"octo/*", "noisy-["})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"noisy-["`)
}

func TestEligibleMalformedNotification(t *testing.T) {
	var f Filter

	_, err := f.Eligible(&github.Notification{ID: github.String("77")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "77")

	_, err = f.Eligible(&github.Notification{
		ID:      github.String("78"),
		Subject: &github.NotificationSubject{Type: github.String("Issue")},
	})
	assert.Error(t, err)
}

package models

import (
	"fmt"
	"strings"
)

// Notice describes a single unsubscribe action, in the shape the
// outbound channels (mail, Telegram) and the history store consume.
type Notice struct {
	ThreadID    string
	Repository  string
	SubjectType string
	Title       string
	SubjectURL  string
}

// HumanURL converts the API subject URL into the address a browser can
// open, e.g. https://api.github.com/repos/o/r/pulls/5 becomes
// https://github.com/o/r/pull/5. Subject types without a web page
// mapping are an error; callers skip the notice and nothing else.
func (n Notice) HumanURL() (string, error) {
	url := strings.Replace(n.SubjectURL, "api.", "", 1)
	url = strings.Replace(url, "/repos/", "/", 1)
	switch n.SubjectType {
	case "PullRequest":
		url = strings.Replace(url, "/pulls/", "/pull/", 1)
	case "Issue":
	case "Commit":
		url = strings.Replace(url, "/commits/", "/commit/", 1)
	default:
		return "", fmt.Errorf("unknown notification type for emailing: %s", n.SubjectType)
	}
	return url, nil
}

// Package filter decides which notifications are eligible for
// unsubscribe processing.
package filter

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/go-github/v57/github"
)

// ReasonSubscribed marks notifications the user receives only through
// an implicit subscription such as watching the repository. Any other
// reason (mentioned, author, team_mention, ...) means the user has a
// deliberate tie to the thread and must be left alone.
const ReasonSubscribed = "subscribed"

// Filter holds the repository include/exclude pattern lists. Patterns
// use shell glob syntax (`*`, `?`, `[...]`), matched case-sensitively.
// A pattern containing "/" matches the full "owner/name"; otherwise it
// matches the short repository name.
type Filter struct {
	Include []string
	Exclude []string
}

// Eligible reports whether a notification should go on to subscription
// resolution. The stages run in order: release exclusion, include
// list, exclude list, reason check. A structurally broken notification
// (missing subject or repository) is an error; the caller logs the raw
// record and aborts the iteration.
func (f *Filter) Eligible(n *github.Notification) (bool, error) {
	if n == nil || n.Subject == nil || n.Repository == nil {
		return false, fmt.Errorf("notification %s has no subject or repository", n.GetID())
	}

	// Releases have no subscribe/unsubscribe affordance, so leave them be.
	if n.GetSubject().GetType() == "Release" {
		return false, nil
	}
	if len(f.Include) > 0 && !matchAny(n, f.Include) {
		return false, nil
	}
	if matchAny(n, f.Exclude) {
		return false, nil
	}
	if n.GetReason() != ReasonSubscribed {
		return false, nil
	}
	return true, nil
}

// ValidatePatterns rejects glob patterns that cannot be parsed, such
// as an unterminated character class. A broken pattern would otherwise
// match nothing at all, which for an exclude list means unsubscribing
// from repositories the user meant to protect.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return fmt.Errorf("invalid repository pattern %q: %v", p, err)
		}
	}
	return nil
}

func matchAny(n *github.Notification, patterns []string) bool {
	for _, p := range patterns {
		if matchRepo(n, p) {
			return true
		}
	}
	return false
}

func matchRepo(n *github.Notification, pattern string) bool {
	name := n.GetRepository().GetName()
	if strings.Contains(pattern, "/") {
		name = n.GetRepository().GetFullName()
	}
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}

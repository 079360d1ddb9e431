// Package runner drives the unsubscribe loop: page through the
// notification feed, filter, resolve subscription state, unsubscribe,
// notify, checkpoint.
package runner

import (
	"context"
	"log"
	"time"

	"github.com/google/go-github/v57/github"

	"ghunsub/internal/checkpoint"
	"ghunsub/internal/filter"
	"ghunsub/internal/models"
	"ghunsub/internal/store"
)

// API is the slice of the GitHub client the loop depends on.
type API interface {
	ListNotificationPage(ctx context.Context, page int, since time.Time) ([]*github.Notification, error)
	HasExplicitSubscription(ctx context.Context, threadID string) (bool, error)
	Unsubscribe(ctx context.Context, threadID string) (bool, error)
}

// Notifier delivers an unsubscribe notice to the user (email,
// Telegram). Delivery failures never fail the pass.
type Notifier interface {
	SendNotice(notice models.Notice) error
}

// Runner holds the collaborators and settings for the loop. History
// may be nil when no database is configured.
type Runner struct {
	API        API
	Filter     *filter.Filter
	Checkpoint *checkpoint.File
	Notifiers  []Notifier
	History    store.Store
	Log        *log.Logger

	DryRun   bool
	Debug    bool
	Interval int       // seconds between passes, 0 = single shot
	Since    time.Time // explicit start override; bypasses the checkpoint

	// sleep is replaceable in tests; nil means time.Sleep.
	sleep func(d time.Duration)
}

// Run executes unsubscribe passes until it exits: after one pass in
// single-shot mode, never in continuous mode. A pass that fails is
// fatal in single-shot mode; in continuous mode it is logged and the
// next pass runs on schedule with the previous checkpoint, since a
// failed pass never writes its own.
func (r *Runner) Run(ctx context.Context) error {
	since := r.Since
	if since.IsZero() {
		stored, ok, err := r.Checkpoint.Read()
		if err != nil {
			return err
		}
		if ok {
			since = stored
			r.Log.Printf("Processing notifications since %s", since.UTC().Format(time.RFC3339))
		}
	}

	for {
		start := time.Now()
		if err := r.RunOnce(ctx, since); err != nil {
			if r.Interval == 0 {
				return err
			}
			r.Log.Printf("Error in unsubscribe pass: %v", err)
		} else {
			// The checkpoint gets the pass's start time, not its end
			// time, so anything created while the pass ran is examined
			// again next pass.
			if !r.DryRun {
				if err := r.Checkpoint.Write(start); err != nil {
					r.Log.Printf("Error writing state file: %v", err)
				}
			}
			since = start
		}

		if r.Interval == 0 {
			return nil
		}
		if r.Debug {
			r.Log.Printf("Sleeping for %d seconds.", r.Interval)
		}
		r.sleepFor(time.Duration(r.Interval) * time.Second)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (r *Runner) sleepFor(d time.Duration) {
	if r.sleep != nil {
		r.sleep(d)
		return
	}
	time.Sleep(d)
}

// RunOnce performs a single pass over the feed. It stops paging at the
// first empty page and returns the first fatal error it hits.
func (r *Runner) RunOnce(ctx context.Context, since time.Time) error {
	if since.IsZero() {
		r.Log.Printf("Scanning all notifications (this could take a while)...")
	}

	count := 0
	page := 1
	for ; ; page++ {
		if r.Debug {
			r.Log.Printf("Fetching notifications page %d", page)
		}
		notifications, err := r.API.ListNotificationPage(ctx, page, since)
		if err != nil {
			return err
		}
		if len(notifications) == 0 {
			break
		}
		for _, n := range notifications {
			handled, err := r.process(ctx, n)
			if err != nil {
				return err
			}
			if handled {
				count++
			}
		}
	}

	r.Log.Printf("Done; had to go through %d page(s) of notifications, and unsubscribed from %d thread(s).",
		page, count)
	return nil
}

// process runs one notification through the filter chain and, when it
// turns out to be implicit-only, unsubscribes and notifies. It reports
// whether the notification was handled as an unsubscribe.
func (r *Runner) process(ctx context.Context, n *github.Notification) (bool, error) {
	eligible, err := r.Filter.Eligible(n)
	if err != nil {
		// Keep the raw record around; this shape has historically been
		// impossible to debug after the fact without it.
		r.Log.Printf("Unexpected notification contents: %+v", n)
		return false, err
	}
	if !eligible {
		return false, nil
	}

	if r.Debug {
		r.Log.Printf("Checking subscription state for thread %s", n.GetID())
	}
	explicit, err := r.API.HasExplicitSubscription(ctx, n.GetID())
	if err != nil {
		return false, err
	}
	if explicit {
		// The user opted in to this thread on purpose.
		return false, nil
	}

	subjectURL := n.GetSubject().GetURL()
	r.Log.Printf("Unsubscribing from %s...", subjectURL)
	if !r.DryRun {
		acked, err := r.API.Unsubscribe(ctx, n.GetID())
		if err != nil {
			return false, err
		}
		if !acked {
			r.Log.Printf("Warning: unsubscribe from %s was not acknowledged with a subscribed field", subjectURL)
		}
	}

	notice := models.Notice{
		ThreadID:    n.GetID(),
		Repository:  n.GetRepository().GetFullName(),
		SubjectType: n.GetSubject().GetType(),
		Title:       n.GetSubject().GetTitle(),
		SubjectURL:  subjectURL,
	}
	for _, notifier := range r.Notifiers {
		if err := notifier.SendNotice(notice); err != nil {
			r.Log.Printf("Error sending unsubscribe notice for %s: %v", subjectURL, err)
		}
	}

	if r.History != nil && !r.DryRun {
		record := models.UnsubscribeRecord{
			ThreadID:    notice.ThreadID,
			Repository:  notice.Repository,
			SubjectType: notice.SubjectType,
			Title:       notice.Title,
			SubjectURL:  notice.SubjectURL,
		}
		if err := r.History.RecordUnsubscribe(record); err != nil {
			r.Log.Printf("Error recording unsubscribe for %s: %v", subjectURL, err)
		}
	}

	return true, nil
}

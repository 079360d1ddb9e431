package models

import "time"

// UnsubscribeRecord is one row of the persisted unsubscribe history.
type UnsubscribeRecord struct {
	ID          int64
	ThreadID    string
	Repository  string
	SubjectType string
	Title       string
	SubjectURL  string
	CreatedAt   time.Time
}

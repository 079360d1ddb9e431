package store

import "ghunsub/internal/models"

// Store keeps the persistent history of unsubscribe actions.
type Store interface {
	Close() error
	RecordUnsubscribe(record models.UnsubscribeRecord) error
	RecentUnsubscribes(limit int) ([]models.UnsubscribeRecord, error)
}

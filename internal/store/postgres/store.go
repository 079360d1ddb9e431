package postgres

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"

	"ghunsub/internal/models"
)

type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

func New(dbURL string) (*Store, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	if err := initDatabase(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	return &Store{
		db: db,
	}, nil
}

func initDatabase(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS unsubscribes (
			id SERIAL PRIMARY KEY,
			thread_id TEXT NOT NULL,
			repository TEXT NOT NULL,
			subject_type TEXT NOT NULL,
			title TEXT NOT NULL,
			subject_url TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_unsubscribes_thread
			ON unsubscribes(thread_id, created_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %q: %v", query, err)
		}
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RecordUnsubscribe(record models.UnsubscribeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO unsubscribes (thread_id, repository, subject_type, title, subject_url, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
	`

	_, err := s.db.Exec(query, record.ThreadID, record.Repository, record.SubjectType, record.Title, record.SubjectURL)
	if err != nil {
		return fmt.Errorf("error recording unsubscribe: %v", err)
	}

	return nil
}

func (s *Store) RecentUnsubscribes(limit int) ([]models.UnsubscribeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, thread_id, repository, subject_type, title, subject_url, created_at
		FROM unsubscribes
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsubscribes: %v", err)
	}
	defer rows.Close()

	var records []models.UnsubscribeRecord
	for rows.Next() {
		var record models.UnsubscribeRecord
		if err := rows.Scan(&record.ID, &record.ThreadID, &record.Repository, &record.SubjectType,
			&record.Title, &record.SubjectURL, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unsubscribe row: %v", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

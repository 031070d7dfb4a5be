package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// FetchRecord represents one page request.
type FetchRecord struct {
	FetchID    int64
	URL        string
	FetchedAt  time.Time
	StatusCode int
	ErrorType  string
	Success    bool
}

// RecordFetch records a fetch attempt in fetches.
func (db *DB) RecordFetch(rawURL string, statusCode int, errorType string, success bool) error {
	_, err := db.Exec(`
		INSERT INTO fetches (url, status_code, error_type, success)
		VALUES (?, ?, ?, ?)
	`, rawURL, statusCode, NewNullString(errorType), success)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// GetLastFetch returns the most recent fetch of a URL, or nil if it was
// never fetched.
func (db *DB) GetLastFetch(rawURL string) (*FetchRecord, error) {
	var record FetchRecord
	var errorType sql.NullString
	err := db.QueryRow(`
		SELECT fetch_id, url, fetched_at, status_code, error_type, success
		FROM fetches
		WHERE url = ?
		ORDER BY fetch_id DESC
		LIMIT 1
	`, rawURL).Scan(&record.FetchID, &record.URL, &record.FetchedAt, &record.StatusCode, &errorType, &record.Success)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last fetch: %w", err)
	}
	record.ErrorType = errorType.String
	return &record, nil
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/software-meta-parser/models"
)

// StoredRecord is a record as persisted, with its bookkeeping columns.
type StoredRecord struct {
	ID         int64         `json:"id" yaml:"id"`
	RequestURL string        `json:"request_url" yaml:"request_url"`
	CreatedAt  time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" yaml:"updated_at"`
	Record     models.Record `json:"record" yaml:"record"`
}

// Meta is one namespaced key/value attached to a record.
type Meta struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Key       string `json:"key" yaml:"key"`
	Value     string `json:"value" yaml:"value"`
}

const recordColumns = `
	record_id, request_url, url, item_type, title, abstract_note,
	library_catalog, company, date, version, created_at, updated_at`

// SaveRecord inserts or replaces the record extracted from requestURL and
// returns its record_id. Creators are rewritten in order. Metadata left by
// an earlier save is dropped and replaced by meta in the same transaction.
func (db *DB) SaveRecord(requestURL string, rec models.Record, meta ...Meta) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	var recordID int64
	err = tx.QueryRow(`
		INSERT INTO records (request_url, url, item_type, title, abstract_note,
		                     library_catalog, company, date, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(request_url) DO UPDATE SET
			url = excluded.url,
			item_type = excluded.item_type,
			title = excluded.title,
			abstract_note = excluded.abstract_note,
			library_catalog = excluded.library_catalog,
			company = excluded.company,
			date = excluded.date,
			version = excluded.version,
			updated_at = CURRENT_TIMESTAMP
		RETURNING record_id
	`, requestURL, rec.URL, string(rec.ItemType), rec.Title, NewNullString(rec.AbstractNote),
		rec.LibraryCatalog, NewNullString(rec.Company), NewNullString(rec.Date), NewNullString(rec.Version),
	).Scan(&recordID)
	if err != nil {
		return 0, fmt.Errorf("failed to save record: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM record_creators WHERE record_id = ?", recordID); err != nil {
		return 0, fmt.Errorf("failed to clear creators: %w", err)
	}
	for i, c := range rec.Creators {
		_, err := tx.Exec(`
			INSERT INTO record_creators (record_id, position, first_name, last_name, creator_type, field_mode)
			VALUES (?, ?, ?, ?, ?, ?)
		`, recordID, i, NewNullString(c.FirstName), c.LastName, string(c.CreatorType), c.FieldMode)
		if err != nil {
			return 0, fmt.Errorf("failed to insert creator: %w", err)
		}
	}

	if _, err := tx.Exec("DELETE FROM record_meta WHERE record_id = ?", recordID); err != nil {
		return 0, fmt.Errorf("failed to clear record metadata: %w", err)
	}
	for _, m := range meta {
		_, err := tx.Exec(`
			INSERT INTO record_meta (record_id, namespace, key, value)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(record_id, namespace, key) DO UPDATE SET value = excluded.value
		`, recordID, m.Namespace, m.Key, m.Value)
		if err != nil {
			return 0, fmt.Errorf("failed to store %s.%s: %w", m.Namespace, m.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit record: %w", err)
	}
	return recordID, nil
}

// GetRecordByID returns the record with the given id or ErrNotFound.
func (db *DB) GetRecordByID(recordID int64) (*StoredRecord, error) {
	row := db.QueryRow("SELECT "+recordColumns+" FROM records WHERE record_id = ?", recordID)
	return db.loadRecord(row)
}

// GetRecordByURL looks a record up by the URL it was requested from or by
// its canonical URL. It returns ErrNotFound when neither matches.
func (db *DB) GetRecordByURL(rawURL string) (*StoredRecord, error) {
	row := db.QueryRow(`SELECT `+recordColumns+` FROM records
		WHERE request_url = ? OR url = ?
		ORDER BY request_url = ? DESC, record_id
		LIMIT 1`, rawURL, rawURL, rawURL)
	return db.loadRecord(row)
}

// ListRecords returns records, most recently updated first. A limit of
// zero or less means no limit.
func (db *DB) ListRecords(limit int) ([]StoredRecord, error) {
	query := "SELECT " + recordColumns + " FROM records ORDER BY updated_at DESC, record_id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	var records []StoredRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	// Release the only connection before loading creators.
	rows.Close()

	for i := range records {
		creators, err := db.getCreators(records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Record.Creators = creators
	}
	return records, nil
}

// DeleteRecord removes a record together with its creators and metadata.
func (db *DB) DeleteRecord(recordID int64) error {
	result, err := db.Exec("DELETE FROM records WHERE record_id = ?", recordID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %d: %w", recordID, ErrNotFound)
	}
	return nil
}

// SetRecordMeta sets a metadata key-value pair for a record (upsert).
func (db *DB) SetRecordMeta(recordID int64, namespace, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO record_meta (record_id, namespace, key, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(record_id, namespace, key) DO UPDATE SET value = excluded.value
	`, recordID, namespace, key, value)
	if err != nil {
		return fmt.Errorf("failed to set record metadata: %w", err)
	}
	return nil
}

// GetRecordMeta returns all metadata of a record ordered by namespace and key.
func (db *DB) GetRecordMeta(recordID int64) ([]Meta, error) {
	rows, err := db.Query(`
		SELECT namespace, key, value
		FROM record_meta
		WHERE record_id = ?
		ORDER BY namespace, key
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get record metadata: %w", err)
	}
	defer rows.Close()

	var meta []Meta
	for rows.Next() {
		var m Meta
		if err := rows.Scan(&m.Namespace, &m.Key, &m.Value); err != nil {
			return nil, fmt.Errorf("failed to scan record metadata: %w", err)
		}
		meta = append(meta, m)
	}
	return meta, rows.Err()
}

func (db *DB) loadRecord(row *sql.Row) (*StoredRecord, error) {
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r.Record.Creators, err = db.getCreators(r.ID)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (db *DB) getCreators(recordID int64) ([]models.Creator, error) {
	rows, err := db.Query(`
		SELECT first_name, last_name, creator_type, field_mode
		FROM record_creators
		WHERE record_id = ?
		ORDER BY position
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creators: %w", err)
	}
	defer rows.Close()

	var creators []models.Creator
	for rows.Next() {
		var c models.Creator
		var firstName sql.NullString
		var creatorType string
		if err := rows.Scan(&firstName, &c.LastName, &creatorType, &c.FieldMode); err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		c.FirstName = firstName.String
		c.CreatorType = models.CreatorType(creatorType)
		creators = append(creators, c)
	}
	return creators, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*StoredRecord, error) {
	var r StoredRecord
	var itemType string
	var abstractNote, company, date, version sql.NullString

	err := s.Scan(&r.ID, &r.RequestURL, &r.Record.URL, &itemType, &r.Record.Title, &abstractNote,
		&r.Record.LibraryCatalog, &company, &date, &version, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	r.Record.ItemType = models.ItemType(itemType)
	r.Record.AbstractNote = abstractNote.String
	r.Record.Company = company.String
	r.Record.Date = date.String
	r.Record.Version = version.String
	return &r, nil
}

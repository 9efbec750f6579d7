// ABOUTME: Journal entry storage operations for SQLite
// ABOUTME: Encrypts entry text on write, decrypts row-by-row on read
package sqlite

import (
	"fmt"
	"time"

	"mindvault/internal/crypto"
	"mindvault/internal/models"
)

// EntryStore handles journal entry persistence.
type EntryStore struct {
	db    *DB
	codec *crypto.Codec
}

// NewEntryStore creates a new EntryStore.
func NewEntryStore(db *DB, codec *crypto.Codec) *EntryStore {
	return &EntryStore{db: db, codec: codec}
}

// Add inserts a journal entry and returns its store-assigned id.
func (s *EntryStore) Add(text string, ts time.Time) (int64, error) {
	token, err := s.codec.Encrypt(text)
	if err != nil {
		return 0, fmt.Errorf("encrypting entry: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO journal_entries (date, entry, is_condensed)
		VALUES (?, ?, 0)
	`, encodeTime(ts), token)
	if err != nil {
		return 0, fmt.Errorf("inserting entry: %w", err)
	}
	return res.LastInsertId()
}

// List returns entries in [start, end] (nil bounds are open), newest
// first. The first row that fails authentication aborts the whole call
// with crypto.ErrDecrypt; that failure is the wrong-password signal.
func (s *EntryStore) List(start, end *time.Time) ([]models.JournalEntry, error) {
	clause, args := rangeClause(start, end)

	rows, err := s.db.Query(`
		SELECT id, date, entry, is_condensed FROM journal_entries
	`+clause+" ORDER BY date DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.JournalEntry
	for rows.Next() {
		var (
			entry     models.JournalEntry
			date      string
			token     string
			condensed int
		)
		if err := rows.Scan(&entry.ID, &date, &token, &condensed); err != nil {
			return nil, err
		}

		if entry.Timestamp, err = decodeTime(date); err != nil {
			return nil, err
		}
		if entry.Text, err = s.codec.Decrypt(token); err != nil {
			return nil, err
		}
		entry.Condensed = condensed != 0

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// ReplaceWithSummary atomically inserts one condensed summary entry and
// deletes the original entries it folds in. Either the summary exists
// and every original is gone, or nothing changed.
func (s *EntryStore) ReplaceWithSummary(text string, ts time.Time, ids []int64) error {
	token, err := s.codec.Encrypt(text)
	if err != nil {
		return fmt.Errorf("encrypting summary: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning condensation: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO journal_entries (date, entry, is_condensed)
		VALUES (?, ?, 1)
	`, encodeTime(ts), token); err != nil {
		return fmt.Errorf("inserting summary: %w", err)
	}

	for _, id := range ids {
		if _, err := tx.Exec("DELETE FROM journal_entries WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting entry %d: %w", id, err)
		}
	}

	return tx.Commit()
}

// ABOUTME: Therapist note storage operations for SQLite
// ABOUTME: Note text is encrypted on write, decrypted row-by-row on read
package sqlite

import (
	"fmt"
	"time"

	"mindvault/internal/crypto"
	"mindvault/internal/models"
)

// NoteStore handles therapist note persistence.
type NoteStore struct {
	db    *DB
	codec *crypto.Codec
}

// NewNoteStore creates a new NoteStore.
func NewNoteStore(db *DB, codec *crypto.Codec) *NoteStore {
	return &NoteStore{db: db, codec: codec}
}

// Add inserts a therapist note and returns its store-assigned id.
func (s *NoteStore) Add(text string, ts time.Time) (int64, error) {
	token, err := s.codec.Encrypt(text)
	if err != nil {
		return 0, fmt.Errorf("encrypting note: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO therapist_notes (date, notes)
		VALUES (?, ?)
	`, encodeTime(ts), token)
	if err != nil {
		return 0, fmt.Errorf("inserting note: %w", err)
	}
	return res.LastInsertId()
}

// List returns notes in [start, end] (nil bounds are open), newest
// first. A row that fails authentication aborts the call with
// crypto.ErrDecrypt.
func (s *NoteStore) List(start, end *time.Time) ([]models.Note, error) {
	clause, args := rangeClause(start, end)

	rows, err := s.db.Query(`
		SELECT id, date, notes FROM therapist_notes
	`+clause+" ORDER BY date DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notes []models.Note
	for rows.Next() {
		var (
			note  models.Note
			date  string
			token string
		)
		if err := rows.Scan(&note.ID, &date, &token); err != nil {
			return nil, err
		}

		if note.Timestamp, err = decodeTime(date); err != nil {
			return nil, err
		}
		if note.Text, err = s.codec.Decrypt(token); err != nil {
			return nil, err
		}

		notes = append(notes, note)
	}

	return notes, rows.Err()
}

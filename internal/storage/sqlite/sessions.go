// ABOUTME: Therapy session storage operations for SQLite
// ABOUTME: Session payloads are JSON-serialized, then encrypted as one token
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"mindvault/internal/crypto"
	"mindvault/internal/models"
)

// SessionStore handles therapy session persistence.
type SessionStore struct {
	db    *DB
	codec *crypto.Codec
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *DB, codec *crypto.Codec) *SessionStore {
	return &SessionStore{db: db, codec: codec}
}

// Add inserts a completed session and returns its store-assigned id.
// The approach name is stored in the clear; the payload is not.
func (s *SessionStore) Add(approach models.Approach, data models.SessionData, ts time.Time) (int64, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("serializing session: %w", err)
	}
	token, err := s.codec.Encrypt(string(payload))
	if err != nil {
		return 0, fmt.Errorf("encrypting session: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO therapy_sessions (date, approach, session_data)
		VALUES (?, ?, ?)
	`, encodeTime(ts), approach.String(), token)
	if err != nil {
		return 0, fmt.Errorf("inserting session: %w", err)
	}
	return res.LastInsertId()
}

// List returns sessions in [start, end] (nil bounds are open), newest
// first. A row that fails authentication aborts the call with
// crypto.ErrDecrypt.
func (s *SessionStore) List(start, end *time.Time) ([]models.Session, error) {
	clause, args := rangeClause(start, end)

	rows, err := s.db.Query(`
		SELECT id, date, approach, session_data FROM therapy_sessions
	`+clause+" ORDER BY date DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.Session
	for rows.Next() {
		var (
			session      models.Session
			date         string
			approachName string
			token        string
		)
		if err := rows.Scan(&session.ID, &date, &approachName, &token); err != nil {
			return nil, err
		}

		if session.Timestamp, err = decodeTime(date); err != nil {
			return nil, err
		}
		if session.Approach, err = models.ParseApproach(approachName); err != nil {
			return nil, err
		}

		payload, err := s.codec.Decrypt(token)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &session.Data); err != nil {
			return nil, fmt.Errorf("deserializing session %d: %w", session.ID, err)
		}

		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

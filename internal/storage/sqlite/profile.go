// ABOUTME: User profile storage operations for SQLite
// ABOUTME: Singleton row; the whole field map is serialized and encrypted as one blob
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mindvault/internal/crypto"
	"mindvault/internal/models"
)

// ProfileStore handles user profile persistence.
type ProfileStore struct {
	db    *DB
	codec *crypto.Codec
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(db *DB, codec *crypto.Codec) *ProfileStore {
	return &ProfileStore{db: db, codec: codec}
}

// Get retrieves the profile, returning an empty map when none exists.
// If a profile exists but was written under a different key, Get fails
// with crypto.ErrDecrypt.
func (s *ProfileStore) Get() (models.Profile, error) {
	if s.db.closed {
		return nil, ErrClosed
	}

	var token string
	err := s.db.conn.QueryRow(`
		SELECT profile_data FROM user_profile WHERE id = 1
	`).Scan(&token)
	if err == sql.ErrNoRows {
		return models.Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	payload, err := s.codec.Decrypt(token)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, fmt.Errorf("deserializing profile: %w", err)
	}
	return profile, nil
}

// Save replaces the profile with the given field map (upsert on the
// singleton row).
func (s *ProfileStore) Save(profile models.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("serializing profile: %w", err)
	}
	token, err := s.codec.Encrypt(string(payload))
	if err != nil {
		return fmt.Errorf("encrypting profile: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO user_profile (id, profile_data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			profile_data = excluded.profile_data,
			updated_at = excluded.updated_at
	`, token, encodeTime(time.Now()))
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

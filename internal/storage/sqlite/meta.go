// ABOUTME: Vault metadata singleton: installation id and schema version
// ABOUTME: The only table holding plaintext; written once at first open
package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Meta describes one vault installation.
type Meta struct {
	InstallID     string
	SchemaVersion int
	CreatedAt     time.Time
}

// ensureMeta inserts the metadata row on first open. Subsequent opens
// leave the existing row untouched.
func (db *DB) ensureMeta() error {
	_, err := db.conn.Exec(`
		INSERT INTO vault_meta (id, install_id, schema_version, created_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, uuid.NewString(), SchemaVersion, encodeTime(time.Now()))
	return err
}

// Meta returns the vault metadata row.
func (db *DB) Meta() (*Meta, error) {
	if db.closed {
		return nil, ErrClosed
	}

	var (
		installID string
		version   int
		createdAt string
	)
	err := db.conn.QueryRow(`
		SELECT install_id, schema_version, created_at FROM vault_meta WHERE id = 1
	`).Scan(&installID, &version, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	created, err := decodeTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &Meta{InstallID: installID, SchemaVersion: version, CreatedAt: created}, nil
}

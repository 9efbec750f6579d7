// ABOUTME: SQLite schema for the encrypted vault
// ABOUTME: Four record tables plus one plaintext metadata singleton
package sqlite

// Schema contains all SQL statements for database initialization.
// Every *_data/entry/notes column holds ciphertext tokens only;
// vault_meta is the single table with plaintext content.
const Schema = `
-- Singleton profile table; the whole field map is one encrypted blob
CREATE TABLE IF NOT EXISTS user_profile (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    profile_data TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Journal entries
CREATE TABLE IF NOT EXISTS journal_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    entry TEXT NOT NULL,
    is_condensed INTEGER NOT NULL DEFAULT 0
);

-- Therapy sessions; session_data is encrypted JSON (transcript + notes)
CREATE TABLE IF NOT EXISTS therapy_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    approach TEXT NOT NULL,
    session_data TEXT NOT NULL
);

-- Therapist notes
CREATE TABLE IF NOT EXISTS therapist_notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    notes TEXT NOT NULL
);

-- Vault metadata singleton (plaintext): installation id, schema version
CREATE TABLE IF NOT EXISTS vault_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    install_id TEXT NOT NULL,
    schema_version INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

-- Indexes for date-range queries
CREATE INDEX IF NOT EXISTS idx_entries_date ON journal_entries(date);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON therapy_sessions(date);
CREATE INDEX IF NOT EXISTS idx_notes_date ON therapist_notes(date);
`

// SchemaVersion is the current schema version for migrations.
const SchemaVersion = 1

// ABOUTME: Persistence facade owning the store handle and the cipher
// ABOUTME: The only entry point other code uses for vault CRUD and condensation
package vault

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"mindvault/internal/crypto"
	"mindvault/internal/models"
	"mindvault/internal/storage/sqlite"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = sqlite.ErrClosed

// Vault is the password-scoped journaling store. It exclusively owns
// the database handle and the codec; callers never see ciphertext, and
// no component outside the vault holds decrypted data beyond one call.
//
// A vault is single-writer, single-reader: one open handle per session,
// not safe for concurrent use.
type Vault struct {
	db       *sqlite.DB
	entries  *sqlite.EntryStore
	sessions *sqlite.SessionStore
	notes    *sqlite.NoteStore
	profile  *sqlite.ProfileStore
	logger   *zap.Logger
}

// Option configures a Vault.
type Option func(*Vault)

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Vault) { v.logger = logger }
}

// Open derives the encryption key from password and opens or creates
// the vault database at path. Open succeeds for ANY password; a wrong
// one only surfaces as crypto.ErrDecrypt when an encrypted record is
// first read. That is the original format's deliberate property: there
// is no separate password-verification record.
func Open(path, password string, opts ...Option) (*Vault, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	return newVault(db, password, opts...)
}

// OpenInMemory opens an in-memory vault (for testing).
func OpenInMemory(password string, opts ...Option) (*Vault, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return newVault(db, password, opts...)
}

func newVault(db *sqlite.DB, password string, opts ...Option) (*Vault, error) {
	codec, err := crypto.NewCodec(crypto.DeriveKey(password))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("building cipher: %w", err)
	}

	v := &Vault{
		db:       db,
		entries:  sqlite.NewEntryStore(db, codec),
		sessions: sqlite.NewSessionStore(db, codec),
		notes:    sqlite.NewNoteStore(db, codec),
		profile:  sqlite.NewProfileStore(db, codec),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Close releases the store handle. Further operations fail with
// ErrClosed. Close is idempotent.
func (v *Vault) Close() error {
	return v.db.Close()
}

// Path returns the vault file path.
func (v *Vault) Path() string {
	return v.db.Path()
}

// Meta returns the vault installation metadata.
func (v *Vault) Meta() (*sqlite.Meta, error) {
	return v.db.Meta()
}

// AddEntry stores one journal entry. A zero timestamp means now.
func (v *Vault) AddEntry(text string, ts time.Time) (int64, error) {
	if ts.IsZero() {
		ts = time.Now()
	}
	id, err := v.entries.Add(text, ts)
	if err != nil {
		return 0, err
	}
	v.logger.Debug("journal entry added", zap.Int64("id", id))
	return id, nil
}

// Entries lists journal entries in [start, end], newest first. Nil
// bounds are open.
func (v *Vault) Entries(start, end *time.Time) ([]models.JournalEntry, error) {
	return v.entries.List(start, end)
}

// Profile returns the profile field map, empty when none exists.
func (v *Vault) Profile() (models.Profile, error) {
	return v.profile.Get()
}

// SaveProfile replaces the stored profile with the given field map.
func (v *Vault) SaveProfile(profile models.Profile) error {
	if err := v.profile.Save(profile); err != nil {
		return err
	}
	v.logger.Debug("profile saved", zap.Int("fields", len(profile)))
	return nil
}

// AddSession stores one completed therapy session. A zero timestamp
// means now.
func (v *Vault) AddSession(approach models.Approach, data models.SessionData, ts time.Time) (int64, error) {
	if !approach.Valid() {
		return 0, fmt.Errorf("invalid approach %d", int(approach))
	}
	if ts.IsZero() {
		ts = time.Now()
	}
	id, err := v.sessions.Add(approach, data, ts)
	if err != nil {
		return 0, err
	}
	v.logger.Debug("therapy session recorded",
		zap.Int64("id", id),
		zap.Stringer("approach", approach))
	return id, nil
}

// Sessions lists therapy sessions in [start, end], newest first.
func (v *Vault) Sessions(start, end *time.Time) ([]models.Session, error) {
	return v.sessions.List(start, end)
}

// AddNote stores one therapist note. A zero timestamp means now.
func (v *Vault) AddNote(text string, ts time.Time) (int64, error) {
	if ts.IsZero() {
		ts = time.Now()
	}
	return v.notes.Add(text, ts)
}

// Notes lists therapist notes in [start, end], newest first.
func (v *Vault) Notes(start, end *time.Time) ([]models.Note, error) {
	return v.notes.List(start, end)
}

// ABOUTME: Tests for database lifecycle and vault metadata
// ABOUTME: Verifies open/close semantics and the store-closed guard
package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"mindvault/internal/crypto"
)

// testCodec builds a codec for store tests. Key derivation is
// deliberately slow, so share one codec per test file where possible.
func testCodec(t *testing.T, password string) *crypto.Codec {
	t.Helper()
	codec, err := crypto.NewCodec(crypto.DeriveKey(password))
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	return codec
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vault.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")

	db1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}

	meta1, err := db1.Meta()
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if meta1 == nil || meta1.InstallID == "" {
		t.Fatal("Meta() should return an installation id after first open")
	}
	if err := db1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening must reuse the schema and keep the metadata row
	db2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer func() { _ = db2.Close() }()

	meta2, err := db2.Meta()
	if err != nil {
		t.Fatalf("Meta() after reopen error = %v", err)
	}
	if meta2.InstallID != meta1.InstallID {
		t.Errorf("install id changed across reopen: %q != %q", meta2.InstallID, meta1.InstallID)
	}
	if meta2.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", meta2.SchemaVersion, SchemaVersion)
	}
}

func TestClosedStoreFails(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Close is idempotent
	if err := db.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if _, err := db.Exec("SELECT 1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Exec after close: error = %v, want ErrClosed", err)
	}
	if _, err := db.Query("SELECT 1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Query after close: error = %v, want ErrClosed", err)
	}
	if _, err := db.Begin(); !errors.Is(err, ErrClosed) {
		t.Errorf("Begin after close: error = %v, want ErrClosed", err)
	}
	if _, err := db.Meta(); !errors.Is(err, ErrClosed) {
		t.Errorf("Meta after close: error = %v, want ErrClosed", err)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	tests := []string{
		"2023-05-01T00:00:00.000000Z",
		"2023-05-31T23:59:59.999999Z",
	}
	for _, s := range tests {
		parsed, err := decodeTime(s)
		if err != nil {
			t.Fatalf("decodeTime(%q) error = %v", s, err)
		}
		if got := encodeTime(parsed); got != s {
			t.Errorf("encodeTime(decodeTime(%q)) = %q", s, got)
		}
	}
}

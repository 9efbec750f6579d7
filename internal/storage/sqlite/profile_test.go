// ABOUTME: Tests for encrypted profile storage
// ABOUTME: Verifies the singleton upsert and wrong-key behavior
package sqlite

import (
	"errors"
	"testing"

	"mindvault/internal/crypto"
	"mindvault/internal/models"
)

func TestProfileEmptyWhenMissing(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewProfileStore(db, testCodec(t, "profile-password"))

	profile, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if profile == nil {
		t.Fatal("Get() should return an empty map, not nil")
	}
	if len(profile) != 0 {
		t.Errorf("Get() on empty store = %v, want empty map", profile)
	}
}

func TestProfileUpsertIdempotent(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewProfileStore(db, testCodec(t, "profile-password"))

	profile := models.Profile{
		"name":         "Ada",
		"occupation":   "engineer",
		"therapy_goal": "manage work stress",
	}

	// Saving twice must still leave exactly one row
	for i := 0; i < 2; i++ {
		if err := store.Save(profile); err != nil {
			t.Fatalf("Save() #%d error = %v", i+1, err)
		}
	}

	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM user_profile").Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("user_profile rows = %d, want 1", count)
	}

	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != len(profile) {
		t.Fatalf("Get() returned %d fields, want %d", len(got), len(profile))
	}
	for k, v := range profile {
		if got[k] != v {
			t.Errorf("profile[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestProfileFullReplace(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewProfileStore(db, testCodec(t, "profile-password"))

	if err := store.Save(models.Profile{"name": "Ada", "age": "36"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// A later save replaces the whole map, it does not merge
	if err := store.Save(models.Profile{"name": "Ada"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, ok := got["age"]; ok {
		t.Error("replaced profile should not retain dropped fields")
	}
}

func TestProfileWrongKey(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	writer := NewProfileStore(db, testCodec(t, "right-password"))
	if err := writer.Save(models.Profile{"name": "Ada"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reader := NewProfileStore(db, testCodec(t, "wrong-password"))
	if _, err := reader.Get(); !errors.Is(err, crypto.ErrDecrypt) {
		t.Errorf("Get under wrong key: error = %v, want ErrDecrypt", err)
	}
}

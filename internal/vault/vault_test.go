// ABOUTME: Tests for the persistence facade
// ABOUTME: Covers CRUD round-trips, wrong-password surfacing, and close semantics
package vault

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"mindvault/internal/crypto"
	"mindvault/internal/models"
)

func TestVaultEntryRoundTrip(t *testing.T) {
	v, err := OpenInMemory("test-password")
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = v.Close() }()

	id, err := v.AddEntry("today was a good day", time.Time{})
	if err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if id == 0 {
		t.Error("AddEntry() should assign a non-zero id")
	}

	entries, err := v.Entries(nil, nil)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Entries() returned %d, want 1", len(entries))
	}
	if entries[0].Text != "today was a good day" {
		t.Errorf("Text = %q", entries[0].Text)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("zero input timestamp should default to now")
	}
}

func TestVaultProfileRoundTrip(t *testing.T) {
	v, err := OpenInMemory("test-password")
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = v.Close() }()

	profile, err := v.Profile()
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if len(profile) != 0 {
		t.Errorf("fresh vault profile = %v, want empty", profile)
	}

	want := models.Profile{"name": "Sam", "therapy_goal": "sleep better"}
	if err := v.SaveProfile(want); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	got, err := v.Profile()
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if got["name"] != "Sam" || got["therapy_goal"] != "sleep better" {
		t.Errorf("Profile() = %v, want %v", got, want)
	}
}

func TestVaultSessionAndNotes(t *testing.T) {
	v, err := OpenInMemory("test-password")
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = v.Close() }()

	data := models.SessionData{
		Transcript: []string{"User: hello", "Therapist: welcome"},
		Notes:      "First contact.",
	}
	if _, err := v.AddSession(models.ApproachExistential, data, time.Time{}); err != nil {
		t.Fatalf("AddSession() error = %v", err)
	}
	if _, err := v.AddSession(models.Approach(99), data, time.Time{}); err == nil {
		t.Error("AddSession with invalid approach should fail")
	}

	sessions, err := v.Sessions(nil, nil)
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 1 || sessions[0].Approach != models.ApproachExistential {
		t.Errorf("Sessions() = %+v", sessions)
	}

	if _, err := v.AddNote("client engaged well", time.Time{}); err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	notes, err := v.Notes(nil, nil)
	if err != nil {
		t.Fatalf("Notes() error = %v", err)
	}
	if len(notes) != 1 || notes[0].Text != "client engaged well" {
		t.Errorf("Notes() = %+v", notes)
	}
}

func TestVaultWrongPasswordSurfacesOnRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")

	v1, err := Open(path, "right-password")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := v1.AddEntry("secret", time.Time{}); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if err := v1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Open always succeeds; the wrong key shows up on first read
	v2, err := Open(path, "wrong-password")
	if err != nil {
		t.Fatalf("Open() with wrong password should succeed, got %v", err)
	}
	defer func() { _ = v2.Close() }()

	if _, err := v2.Entries(nil, nil); !errors.Is(err, crypto.ErrDecrypt) {
		t.Errorf("Entries() under wrong password: error = %v, want ErrDecrypt", err)
	}
}

func TestVaultClosed(t *testing.T) {
	v, err := OpenInMemory("test-password")
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if _, err := v.AddEntry("text", time.Time{}); !errors.Is(err, ErrClosed) {
		t.Errorf("AddEntry after close: error = %v, want ErrClosed", err)
	}
	if _, err := v.Entries(nil, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Entries after close: error = %v, want ErrClosed", err)
	}
	if err := v.SaveProfile(models.Profile{"a": "b"}); !errors.Is(err, ErrClosed) {
		t.Errorf("SaveProfile after close: error = %v, want ErrClosed", err)
	}
	if _, err := v.Profile(); !errors.Is(err, ErrClosed) {
		t.Errorf("Profile after close: error = %v, want ErrClosed", err)
	}
}

func TestVaultMeta(t *testing.T) {
	v, err := OpenInMemory("test-password")
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = v.Close() }()

	meta, err := v.Meta()
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if meta == nil || meta.InstallID == "" {
		t.Error("Meta() should return an installation id")
	}
}

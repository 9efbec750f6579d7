// ABOUTME: Tests for therapist note storage
// ABOUTME: Verifies round-trip, ordering, and range filters
package sqlite

import (
	"testing"
	"time"
)

func TestNoteAddAndList(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewNoteStore(db, testCodec(t, "notes-password"))

	base := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	for i, text := range []string{"intake note", "week two", "week three"} {
		if _, err := store.Add(text, base.AddDate(0, 0, i*7)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	notes, err := store.List(nil, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("List() returned %d notes, want 3", len(notes))
	}
	if notes[0].Text != "week three" {
		t.Errorf("notes[0].Text = %q, want newest first", notes[0].Text)
	}

	// Range covering only the middle note
	start := base.AddDate(0, 0, 3)
	end := base.AddDate(0, 0, 10)
	notes, err = store.List(&start, &end)
	if err != nil {
		t.Fatalf("List(range) error = %v", err)
	}
	if len(notes) != 1 || notes[0].Text != "week two" {
		t.Errorf("List(range) = %v, want just the middle note", notes)
	}
}

// ABOUTME: Note holds clinical notes written during or after a session
// ABOUTME: Immutable once stored
package models

import "time"

// Note is one therapist note record.
type Note struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// ABOUTME: Session records one completed therapy conversation
// ABOUTME: SessionData is JSON-serialized before encryption at the storage layer
package models

import "time"

// SessionData is the structured payload persisted with each session.
type SessionData struct {
	Transcript []string `json:"transcript"`
	Notes      string   `json:"notes"`
}

// Session is one completed therapy session. Immutable once stored.
type Session struct {
	ID        int64       `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Approach  Approach    `json:"approach"`
	Data      SessionData `json:"session_data"`
}

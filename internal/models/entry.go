// ABOUTME: JournalEntry represents a single dated journal record
// ABOUTME: Condensed entries are month-level summaries synthesized by the condenser
package models

import "time"

// JournalEntry is one journal record. IDs are assigned by the store and
// increase monotonically per vault.
type JournalEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Condensed bool      `json:"is_condensed"`
}

// ABOUTME: Tests for MCP tool handlers over an in-memory vault
// ABOUTME: Calls handlers directly with constructed tool requests
package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"mindvault/internal/vault"
)

func testHandlers(t *testing.T) *Handlers {
	t.Helper()
	v, err := vault.OpenInMemory("correct horse")
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { _ = v.Close() })
	return &Handlers{vault: v, logger: zap.NewNop()}
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("tool result content is %T, want text", result.Content[0])
	}
	return text.Text
}

func TestAddJournalEntry(t *testing.T) {
	h := testHandlers(t)

	result, err := h.AddJournalEntry(context.Background(), toolRequest("add_journal_entry", map[string]any{
		"text": "slept badly, anxious about the review",
		"date": "2024-06-01T09:30:00Z",
	}))
	if err != nil {
		t.Fatalf("AddJournalEntry: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error: %s", resultText(t, result))
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID == 0 {
		t.Error("expected a non-zero entry id")
	}

	entries, err := h.vault.Entries(nil, nil)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "slept badly, anxious about the review" {
		t.Errorf("stored entry mismatch: %+v", entries)
	}
	want := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	if !entries[0].Timestamp.Equal(want) {
		t.Errorf("entry timestamp = %v, want %v", entries[0].Timestamp, want)
	}
}

func TestAddJournalEntryValidation(t *testing.T) {
	h := testHandlers(t)

	result, err := h.AddJournalEntry(context.Background(), toolRequest("add_journal_entry", map[string]any{}))
	if err != nil {
		t.Fatalf("AddJournalEntry: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing text")
	}

	result, err = h.AddJournalEntry(context.Background(), toolRequest("add_journal_entry", map[string]any{
		"text": "x",
		"date": "June 1st",
	}))
	if err != nil {
		t.Fatalf("AddJournalEntry: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for malformed date")
	}
}

func TestListJournalEntries(t *testing.T) {
	h := testHandlers(t)

	for i, text := range []string{"first", "second", "third"} {
		ts := time.Date(2024, 6, 1+i, 12, 0, 0, 0, time.UTC)
		if _, err := h.vault.AddEntry(text, ts); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	result, err := h.ListJournalEntries(context.Background(), toolRequest("list_journal_entries", map[string]any{
		"limit": float64(2),
	}))
	if err != nil {
		t.Fatalf("ListJournalEntries: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error: %s", resultText(t, result))
	}

	var resp struct {
		Entries []struct {
			Text string `json:"text"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 (limit)", len(resp.Entries))
	}
	if resp.Entries[0].Text != "third" || resp.Entries[1].Text != "second" {
		t.Errorf("entries not newest first: %+v", resp.Entries)
	}
}

func TestListJournalEntriesRejectsBadBound(t *testing.T) {
	h := testHandlers(t)

	result, err := h.ListJournalEntries(context.Background(), toolRequest("list_journal_entries", map[string]any{
		"start": "yesterday",
	}))
	if err != nil {
		t.Fatalf("ListJournalEntries: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for malformed start bound")
	}
}

func TestGetProfile(t *testing.T) {
	h := testHandlers(t)

	result, err := h.GetProfile(context.Background(), toolRequest("get_profile", nil))
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), `"profile":{}`) {
		t.Errorf("empty vault should yield empty profile, got %s", resultText(t, result))
	}

	if err := h.vault.SaveProfile(map[string]string{"name": "Sam", "age": "34"}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	result, err = h.GetProfile(context.Background(), toolRequest("get_profile", nil))
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, `"name":"Sam"`) || !strings.Contains(text, `"age":"34"`) {
		t.Errorf("profile fields missing from %s", text)
	}
}

func TestListTherapistNotes(t *testing.T) {
	h := testHandlers(t)

	for i := 0; i < 4; i++ {
		ts := time.Date(2024, 6, 1+i, 12, 0, 0, 0, time.UTC)
		if _, err := h.vault.AddNote("note", ts); err != nil {
			t.Fatalf("AddNote: %v", err)
		}
	}

	result, err := h.ListTherapistNotes(context.Background(), toolRequest("list_therapist_notes", map[string]any{
		"limit": float64(3),
	}))
	if err != nil {
		t.Fatalf("ListTherapistNotes: %v", err)
	}

	var resp struct {
		Notes []struct {
			Date string `json:"date"`
		} `json:"notes"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Notes) != 3 {
		t.Errorf("got %d notes, want 3 (limit)", len(resp.Notes))
	}
}

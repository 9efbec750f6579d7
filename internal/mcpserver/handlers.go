// ABOUTME: MCP tool handler implementations over the vault facade
// ABOUTME: Decrypt errors come back as tool errors, never as panics
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"mindvault/internal/crypto"
	"mindvault/internal/models"
	"mindvault/internal/vault"
)

// Handlers contains the handler functions for all vault tools.
type Handlers struct {
	vault  *vault.Vault
	logger *zap.Logger
}

// AddJournalEntry handles the add_journal_entry tool.
func (h *Handlers) AddJournalEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	var ts time.Time
	if dateStr := request.GetString("date", ""); dateStr != "" {
		ts, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date %q: must be RFC 3339", dateStr)), nil
		}
	}

	id, err := h.vault.AddEntry(text, ts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add entry: %v", err)), nil
	}
	h.logger.Debug("mcp tool added journal entry", zap.Int64("id", id))

	return jsonResult(map[string]interface{}{
		"id": id,
	})
}

// ListJournalEntries handles the list_journal_entries tool.
func (h *Handlers) ListJournalEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, errResult := parseBound(request, "start")
	if errResult != nil {
		return errResult, nil
	}
	end, errResult := parseBound(request, "end")
	if errResult != nil {
		return errResult, nil
	}
	limit := request.GetInt("limit", 20)

	entries, err := h.vault.Entries(start, end)
	if err != nil {
		return decryptAwareError("failed to list entries", err), nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		items = append(items, map[string]interface{}{
			"id":        e.ID,
			"date":      e.Timestamp.Format(time.RFC3339),
			"text":      e.Text,
			"condensed": e.Condensed,
		})
	}

	return jsonResult(map[string]interface{}{
		"entries": items,
	})
}

// GetProfile handles the get_profile tool.
func (h *Handlers) GetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := h.vault.Profile()
	if err != nil {
		return decryptAwareError("failed to load profile", err), nil
	}

	fields := make(map[string]interface{}, len(profile))
	for _, field := range models.ProfileFields {
		if v := profile[field.Key]; v != "" {
			fields[field.Key] = v
		}
	}

	return jsonResult(map[string]interface{}{
		"profile": fields,
	})
}

// ListTherapistNotes handles the list_therapist_notes tool.
func (h *Handlers) ListTherapistNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 10)

	notes, err := h.vault.Notes(nil, nil)
	if err != nil {
		return decryptAwareError("failed to list notes", err), nil
	}
	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}

	items := make([]map[string]interface{}, 0, len(notes))
	for _, n := range notes {
		items = append(items, map[string]interface{}{
			"id":   n.ID,
			"date": n.Timestamp.Format(time.RFC3339),
			"text": n.Text,
		})
	}

	return jsonResult(map[string]interface{}{
		"notes": items,
	})
}

// parseBound extracts an optional RFC 3339 time argument. The error
// result is non-nil only when the argument is present and malformed.
func parseBound(request mcp.CallToolRequest, key string) (*time.Time, *mcp.CallToolResult) {
	s := request.GetString(key, "")
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid %s %q: must be RFC 3339", key, s))
	}
	return &t, nil
}

// decryptAwareError maps a wrong-password decrypt failure to a clear
// message instead of leaking cipher internals.
func decryptAwareError(prefix string, err error) *mcp.CallToolResult {
	if errors.Is(err, crypto.ErrDecrypt) {
		return mcp.NewToolResultError("vault password is incorrect: records cannot be decrypted")
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", prefix, err))
}

func jsonResult(v map[string]interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

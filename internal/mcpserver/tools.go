// ABOUTME: MCP tool definitions and registration for the vault server
// ABOUTME: Exposes journal, profile, and note access over an open vault
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"mindvault/internal/vault"
)

// RegisterTools registers all vault tools with the MCP server. The
// vault is already open; the MCP surface never handles the password.
func RegisterTools(srv *server.MCPServer, v *vault.Vault, logger *zap.Logger) *Handlers {
	handlers := &Handlers{
		vault:  v,
		logger: logger,
	}

	srv.AddTool(mcp.Tool{
		Name:        "add_journal_entry",
		Description: "Add a journal entry to the vault. The entry is encrypted before it is stored.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Journal entry text",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Optional RFC 3339 timestamp; defaults to now",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.AddJournalEntry)

	srv.AddTool(mcp.Tool{
		Name:        "list_journal_entries",
		Description: "List journal entries, newest first. Optional start and end dates bound the range.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start": map[string]interface{}{
					"type":        "string",
					"description": "Optional RFC 3339 lower bound (inclusive)",
				},
				"end": map[string]interface{}{
					"type":        "string",
					"description": "Optional RFC 3339 upper bound (inclusive)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum entries to return (default: 20)",
					"default":     20,
				},
			},
		},
	}, handlers.ListJournalEntries)

	srv.AddTool(mcp.Tool{
		Name:        "get_profile",
		Description: "Get the vault owner's profile fields.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetProfile)

	srv.AddTool(mcp.Tool{
		Name:        "list_therapist_notes",
		Description: "List therapist notes from past sessions, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum notes to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.ListTherapistNotes)

	return handlers
}

// ABOUTME: MCP command exposing the vault over stdio to MCP clients
// ABOUTME: Opens the vault once, then serves until stdin closes
package commands

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"mindvault/internal/mcpserver"
)

// NewMCPCmd creates the mcp command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the vault over the Model Context Protocol",
		Long: `Start an MCP server on stdio exposing journal, profile, and
note tools to a connected client. The password is prompted once at
startup; the MCP surface itself never sees it.

Set MINDVAULT_PASSWORD when launching from an MCP client configuration,
since clients do not forward interactive prompts.`,
		RunE: runMCP,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	v, err := openVault(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	srv := server.NewMCPServer(
		"MindVault",
		versionInfo.Version,
	)
	mcpserver.RegisterTools(srv, v, logger)

	fmt.Fprintln(os.Stderr, hintStyle.Render("MindVault MCP server listening on stdio..."))
	if err := server.ServeStdio(srv); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

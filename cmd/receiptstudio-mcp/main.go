// Command receiptstudio-mcp is an MCP (Model Context Protocol) server that
// exposes a receipt editing session to AI assistants.
//
// # Installation
//
//	go install github.com/lvillar/receiptstudio/cmd/receiptstudio-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "receiptstudio": {
//	      "command": "receiptstudio-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - select_template: Switch between the built-in layouts
//   - edit_field: Edit company, customer, and header fields
//   - edit_item_field: Edit line-item cells
//   - add_item / delete_item: Manage line items
//   - set_tax_rate: Change the tax rate
//   - undo / redo: Walk the snapshot history
//   - new_document / reset_company: Start over
//   - export_pdf: Export the paginated A4 PDF
//
// # Available Resources
//
//   - receipt://document : The canonical document as JSON
//   - receipt://totals : Current derived amounts
//   - receipt://templates : Built-in layouts and the active one
//   - receipt://tree : The serialized visual tree
//
// The company profile persists across runs in $HOME/.receiptstudio/company.json
// (override with -profile).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lvillar/receiptstudio/editor"
	"github.com/lvillar/receiptstudio/mcp"
	"github.com/lvillar/receiptstudio/notify"
	"github.com/lvillar/receiptstudio/profile"
)

func main() {
	profilePath := flag.String("profile", defaultProfilePath(), "company profile JSON file")
	flag.Parse()

	// Logs go to stderr; stdout carries the JSON-RPC stream.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	session, err := editor.New(
		editor.WithProfileStore(profile.NewFileStore(*profilePath)),
		editor.WithNotifier(notify.LogNotifier{Logger: logger}),
		editor.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "receiptstudio-mcp: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	server := mcp.NewServer()
	mcp.RegisterSessionTools(server, session)
	mcp.RegisterSessionResources(server, session)

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "receiptstudio-mcp: %v\n", err)
		os.Exit(1)
	}
}

func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "company.json"
	}
	return filepath.Join(home, ".receiptstudio", "company.json")
}

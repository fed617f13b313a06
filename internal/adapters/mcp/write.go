package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"craftmanager/internal/application"
	"craftmanager/internal/application/commands"
)

// RegisterWriteTools adds the tools that change tags or reload the catalog.
// Craft files themselves are never modified.
func RegisterWriteTools(s *server.MCPServer, session *Session) {
	s.AddTool(tagCraftTool(), tagCraftHandler(session))
	s.AddTool(rescanTool(), rescanHandler(session))
}

// --- tag_craft ---

func tagCraftTool() mcp.Tool {
	return mcp.NewTool("tag_craft",
		mcp.WithDescription("Add tags to a craft, or remove them when remove is true."),
		mcp.WithString("craft",
			mcp.Description("Craft file path, file name or ship name"),
			mcp.Required(),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
			mcp.Required(),
		),
		mcp.WithBoolean("remove",
			mcp.Description("Remove the tags instead of adding them"),
		),
	)
}

func tagCraftHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref := req.GetString("craft", "")
		tags := splitList(req.GetString("tags", ""))
		remove := req.GetBool("remove", false)

		return session.with(ctx, func(catalog *application.Catalog) (*mcp.CallToolResult, error) {
			result, err := commands.NewTagCommand(catalog, ref, tags, remove).Execute(ctx)
			if err != nil {
				return toolError(err)
			}

			msg := result.Message
			if len(result.Tags) > 0 {
				msg += fmt.Sprintf(" (tags: %s)", strings.Join(result.Tags, ", "))
			}
			return mcp.NewToolResultText(msg), nil
		})
	}
}

// --- rescan ---

func rescanTool() mcp.Tool {
	return mcp.NewTool("rescan",
		mcp.WithDescription("Reload every craft and the part catalog from disk and report the scan."),
	)
}

func rescanHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.locked(func(catalog *application.Catalog) (*mcp.CallToolResult, error) {
			report, err := commands.NewRescanCommand(catalog).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(formatReport(catalog.Root(), report)), nil
		})
	}
}

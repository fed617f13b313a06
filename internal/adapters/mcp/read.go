package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"craftmanager/internal/application"
	"craftmanager/internal/application/commands"
	"craftmanager/internal/domain"
)

// Session serializes tool calls against one loaded catalog
type Session struct {
	mu      sync.Mutex
	catalog *application.Catalog
}

// NewSession wraps a catalog. The catalog is loaded lazily on the first
// tool call if it has not been loaded yet.
func NewSession(catalog *application.Catalog) *Session {
	return &Session{catalog: catalog}
}

type catalogFunc func(*application.Catalog) (*mcp.CallToolResult, error)

// with runs fn holding the session lock, loading the catalog first if needed
func (s *Session) with(ctx context.Context, fn catalogFunc) (*mcp.CallToolResult, error) {
	return s.locked(func(catalog *application.Catalog) (*mcp.CallToolResult, error) {
		if catalog.Report() == nil {
			if _, err := catalog.Load(ctx); err != nil {
				return toolError(err)
			}
		}
		return fn(catalog)
	})
}

// locked runs fn holding the session lock. The catalog may not be loaded.
func (s *Session) locked(fn catalogFunc) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.catalog)
}

// RegisterReadTools adds all read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, session *Session) {
	s.AddTool(listCraftTool(), listCraftHandler(session))
	s.AddTool(showCraftTool(), showCraftHandler(session))
	s.AddTool(listTagsTool(), listTagsHandler(session))
	s.AddTool(scanReportTool(), scanReportHandler(session))
}

// --- list_craft ---

func listCraftTool() mcp.Tool {
	return mcp.NewTool("list_craft",
		mcp.WithDescription("List craft in the save, optionally filtered by name, construction type and tags, and sorted."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring of the craft file name"),
		),
		mcp.WithString("types",
			mcp.Description("Comma-separated construction types: VAB, SPH, Subassemblies"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags to filter by"),
		),
		mcp.WithString("tag_mode",
			mcp.Description("any (default) keeps craft with at least one tag; all keeps craft with every tag"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort key: name, part_count, mass, created, updated, stage_count"),
		),
		mcp.WithBoolean("reverse",
			mcp.Description("Reverse the sort order"),
		),
	)
}

func listCraftHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := application.CriteriaInput{
			Search:  req.GetString("search", ""),
			Types:   splitList(req.GetString("types", "")),
			Tags:    splitList(req.GetString("tags", "")),
			TagMode: req.GetString("tag_mode", ""),
			Sort:    req.GetString("sort", ""),
			Reverse: req.GetBool("reverse", false),
		}

		return session.with(ctx, func(catalog *application.Catalog) (*mcp.CallToolResult, error) {
			crafts, err := commands.NewListCommand(catalog, input).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return formatEntities(crafts, formatCraft)
		})
	}
}

// --- show_craft ---

func showCraftTool() mcp.Tool {
	return mcp.NewTool("show_craft",
		mcp.WithDescription("Show the metrics, flags and tags of one craft."),
		mcp.WithString("craft",
			mcp.Description("Craft file path, file name or ship name"),
			mcp.Required(),
		),
	)
}

func showCraftHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref := req.GetString("craft", "")
		if ref == "" {
			return toolError(fmt.Errorf("craft is required"))
		}

		return session.with(ctx, func(catalog *application.Catalog) (*mcp.CallToolResult, error) {
			detail, err := commands.NewShowCommand(catalog, ref).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(formatDetail(detail)), nil
		})
	}
}

// --- list_tags ---

func listTagsTool() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag in use."),
	)
}

func listTagsHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.with(ctx, func(catalog *application.Catalog) (*mcp.CallToolResult, error) {
			store := catalog.TagStore()
			if store == nil {
				return toolError(fmt.Errorf("tagging is disabled"))
			}
			tags, err := store.AllTags(ctx)
			if err != nil {
				return toolError(err)
			}
			if len(tags) == 0 {
				return mcp.NewToolResultText("No tags."), nil
			}
			return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
		})
	}
}

// --- scan_report ---

func scanReportTool() mcp.Tool {
	return mcp.NewTool("scan_report",
		mcp.WithDescription("Show statistics of the last catalog scan, including files that failed to parse."),
	)
}

func scanReportHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.with(ctx, func(catalog *application.Catalog) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(formatReport(catalog.Root(), catalog.Report())), nil
		})
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatCraft(c *domain.Craft) string {
	return fmt.Sprintf("%s  [%s]  parts=%d stages=%d mass=%.2ft cost=%.0f%s",
		c.Name, c.Type, c.PartCount, c.StageCount, c.Mass.Total, c.Cost.Total, formatFlags(c))
}

func formatFlags(c *domain.Craft) string {
	var flags []string
	if c.MissingParts {
		flags = append(flags, "missing-parts")
	}
	if c.LockedParts {
		flags = append(flags, "locked-parts")
	}
	if len(flags) == 0 {
		return ""
	}
	return "  (" + strings.Join(flags, ", ") + ")"
}

func formatDetail(d *commands.CraftDetail) string {
	c := d.Craft
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:        %s\n", c.Name)
	if c.AltName != "" && c.AltName != c.Name {
		fmt.Fprintf(&sb, "Ship:        %s\n", c.AltName)
	}
	fmt.Fprintf(&sb, "Type:        %s\n", c.Type)
	fmt.Fprintf(&sb, "Path:        %s\n", c.Path)
	if c.Version != "" {
		fmt.Fprintf(&sb, "Version:     %s\n", c.Version)
	}
	fmt.Fprintf(&sb, "Parts:       %d\n", c.PartCount)
	fmt.Fprintf(&sb, "Stages:      %d\n", c.StageCount)
	fmt.Fprintf(&sb, "Mass:        %.3ft (dry %.3f, fuel %.3f)\n", c.Mass.Total, c.Mass.Dry, c.Mass.Fuel)
	fmt.Fprintf(&sb, "Cost:        %.0f (dry %.0f, fuel %.0f)\n", c.Cost.Total, c.Cost.Dry, c.Cost.Fuel)
	fmt.Fprintf(&sb, "Missing:     %t\n", c.MissingParts)
	fmt.Fprintf(&sb, "Locked:      %t\n", c.LockedParts)
	fmt.Fprintf(&sb, "Created:     %s\n", c.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Updated:     %s\n", c.UpdatedAt.Format("2006-01-02 15:04"))
	if len(d.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags:        %s\n", strings.Join(d.Tags, ", "))
	}
	if c.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", c.Description)
	}
	return sb.String()
}

func formatReport(root string, r *domain.ScanReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scanned %s: %d files, %d craft loaded, %d failed in %s\n",
		root, r.FilesScanned, r.CraftLoaded, r.Failed(), r.Duration.Round(1e6))
	for _, f := range r.Failures {
		fmt.Fprintf(&sb, "  %s: %v\n", f.Path, f.Err)
	}
	return sb.String()
}

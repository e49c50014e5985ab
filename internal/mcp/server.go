package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"boardview/internal/boards"
	"boardview/internal/viewer"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with read-only tools over published boards
func NewServer(loader *viewer.Loader) *server.MCPServer {
	s := server.NewMCPServer(
		"Boards",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Tool: list_boards - List published boards
	s.AddTool(
		mcp.NewTool("list_boards",
			mcp.WithDescription("List published boards, most recently updated first. Use this to discover board slugs."),
			mcp.WithString("query",
				mcp.Description("Optional: only boards whose title or slug contains this text (case-insensitive)"),
			),
		),
		handleListBoards(loader),
	)

	// Tool: get_board - Get one board with its categories and cards
	s.AddTool(
		mcp.NewTool("get_board",
			mcp.WithDescription("Get a published board by slug with its categories and cards in display order."),
			mcp.WithString("slug",
				mcp.Required(),
				mcp.Description("Board slug, as used in #/b/<slug> links"),
			),
			mcp.WithString("category",
				mcp.Description("Optional: category id to filter cards by, or 'all' (default)"),
			),
		),
		handleGetBoard(loader),
	)

	return s
}

// BoardResult represents a board in the list
type BoardResult struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BoardDetail represents a board with its contents
type BoardDetail struct {
	Slug          string            `json:"slug"`
	Title         string            `json:"title"`
	BackgroundURL string            `json:"backgroundUrl,omitempty"`
	Filter        string            `json:"filter"`
	Categories    []boards.Category `json:"categories"`
	Cards         []boards.Card     `json:"cards"`
}

func handleListBoards(loader *viewer.Loader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st := loader.Load(ctx, viewer.HomeRoute()).State()
		st.Query = req.GetString("query", "")

		list := st.FilteredBoards()
		results := make([]BoardResult, len(list))
		for i, b := range list {
			results[i] = BoardResult{
				Slug:      b.Slug,
				Title:     b.Title,
				UpdatedAt: b.UpdatedAt,
			}
		}

		data, _ := json.MarshalIndent(results, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleGetBoard(loader *viewer.Loader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug, err := req.RequireString("slug")
		if err != nil {
			return mcp.NewToolResultError("slug is required"), nil
		}

		st := loader.Load(ctx, viewer.BoardRoute(slug)).State()
		if st.NotFound {
			return mcp.NewToolResultError(fmt.Sprintf("board %q not found (or not published)", slug)), nil
		}
		if cat := req.GetString("category", ""); cat != "" {
			st.Filter = cat
		}

		result := BoardDetail{
			Slug:          st.Board.Slug,
			Title:         st.Board.Title,
			BackgroundURL: st.Board.BackgroundURL,
			Filter:        st.Filter,
			Categories:    nonNil(st.Categories),
			Cards:         nonNil(st.FilteredCards()),
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

// Helper functions

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the journal tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/brackets/internal/bitacora"
	"github.com/starford/brackets/internal/index"
	"github.com/starford/brackets/internal/period"
	"github.com/starford/brackets/internal/storage"
)

// Server wraps the MCP server with journal tools.
type Server struct {
	mcp   *server.MCPServer
	store storage.Provider
	db    *index.DB
}

// New creates a new MCP server with all journal tools registered.
func New(store storage.Provider, db *index.DB) *Server {
	s := &Server{store: store, db: db}

	s.mcp = server.NewMCPServer(
		"Brackets",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_journal",
		mcp.WithDescription("Full-text search through journal content and titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchJournal)

	s.mcp.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Read the full content of a journal file."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Filename of the file (e.g. [2026][01]Week05.md)")),
	), s.readFile)

	s.mcp.AddTool(mcp.NewTool("list_periods",
		mcp.WithDescription("List indexed period files, newest first, optionally filtered by kind "+
			"(weekly, monthly-topics, year-topics, month-consolidated, year-consolidated)."),
		mcp.WithString("kind", mcp.Description("Optional kind filter (empty for all)")),
	), s.listPeriods)

	s.mcp.AddTool(mcp.NewTool("pending_tasks",
		mcp.WithDescription("Extract the open checklist items from a weekly journal file, "+
			"with subtask hierarchy preserved."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Filename of the weekly file")),
	), s.pendingTasks)

	s.mcp.AddTool(mcp.NewTool("get_journal_contract",
		mcp.WithDescription("Returns the canonical journal file format contract. "+
			"Call this before interpreting or producing journal content."),
	), s.getJournalContract)

	// Resource: journal format contract.
	s.mcp.AddResource(
		mcp.NewResource("brackets://journal-format", "Journal Format Contract",
			mcp.WithResourceDescription("Canonical file naming and weekly content format of the journal."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readJournalFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listPeriods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := ""
	if k, err := req.RequireString("kind"); err == nil {
		kind = k
	}

	rows, _, err := s.db.ListPeriods(kind, 100, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s\t%s", r.Kind, r.Path))
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText("no period files indexed"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) pendingTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, ok := period.ParseKind(filepath.Base(path), period.Weekly); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not a weekly file: %s", path)), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}

	doc := bitacora.ParseDocument(string(data))
	tasks := bitacora.PendingTasks(doc)
	if len(tasks) == 0 {
		return mcp.NewToolResultText("no pending tasks"), nil
	}
	return mcp.NewToolResultText(strings.Join(tasks, "\n")), nil
}

func (s *Server) getJournalContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(JournalFormatContract), nil
}

func (s *Server) readJournalFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "brackets://journal-format",
			MIMEType: "text/markdown",
			Text:     JournalFormatContract,
		},
	}, nil
}

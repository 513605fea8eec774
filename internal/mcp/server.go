package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clipvault/clipvault/internal/clip"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/sidefile"
	"github.com/clipvault/clipvault/internal/usecase"
)

// Server wraps the MCP server with clipboard-store functionality
type Server struct {
	server *mcp.Server
	dbCtx  *database.Context
	store  *sidefile.Store
}

// NewServer creates a new MCP server instance
func NewServer(version string) (*Server, error) {
	dbCtx, err := database.CreateDatabase("")
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "clipvault",
		Version: version,
	}, nil)

	s := &Server{
		server: mcpServer,
		dbCtx:  dbCtx,
		store:  sidefile.New(config.GetObjectsDir()),
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server with stdio transport
func (s *Server) Run(ctx context.Context) error {
	defer database.CloseDatabase(s.dbCtx)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clipboard_add",
		Description: "Add a text snippet to the clipboard history",
	}, s.handleAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clipboard_get",
		Description: "Retrieve a clipboard entry by id or id prefix",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clipboard_list",
		Description: "List clipboard entries, pinned first then newest first",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clipboard_pin",
		Description: "Pin or unpin a clipboard entry",
	}, s.handlePin)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clipboard_delete",
		Description: "Delete a clipboard entry permanently",
	}, s.handleDelete)
}

// Input/Output types for each tool

type AddInput struct {
	Content string   `json:"content" jsonschema:"required,description=The text to store"`
	Tags    []string `json:"tags,omitempty" jsonschema:"description=Tags to attach to the new entry"`
}

type AddOutput struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

type GetInput struct {
	ID string `json:"id" jsonschema:"required,description=Entry id or unique id prefix"`
}

type GetOutput struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Content   string   `json:"content"`
	Label     string   `json:"label"`
	Tags      []string `json:"tags,omitempty"`
	Pinned    bool     `json:"pinned"`
	CreatedAt string   `json:"createdAt"`
}

type ListInput struct {
	Tag            *string `json:"tag,omitempty" jsonschema:"description=Only entries carrying this tag"`
	Kind           *string `json:"kind,omitempty" jsonschema:"enum=text;url;image;file,description=Only entries of this kind"`
	IncludeTrashed *bool   `json:"includeTrashed,omitempty" jsonschema:"description=Include trashed entries"`
}

type ListOutput struct {
	Entries []ListEntry `json:"entries"`
}

type ListEntry struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Label     string   `json:"label"`
	Tags      []string `json:"tags,omitempty"`
	Pinned    bool     `json:"pinned,omitempty"`
	Trashed   bool     `json:"trashed,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

type PinInput struct {
	ID     string `json:"id" jsonschema:"required,description=Entry id or unique id prefix"`
	Pinned *bool  `json:"pinned,omitempty" jsonschema:"description=Pin state to set (true if omitted)"`
}

type PinOutput struct {
	Message string `json:"message"`
}

type DeleteInput struct {
	ID string `json:"id" jsonschema:"required,description=Entry id or unique id prefix"`
}

type DeleteOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAdd(ctx context.Context, req *mcp.CallToolRequest, input AddInput) (*mcp.CallToolResult, AddOutput, error) {
	uc := usecase.NewEntry(s.dbCtx, s.store, 0)

	result, err := uc.Add(ctx, input.Content, input.Tags)
	if err != nil {
		return nil, AddOutput{}, fmt.Errorf("failed to add entry: %w", err)
	}

	return nil, AddOutput{
		ID:        result.Entry.ID,
		Kind:      string(result.Entry.Kind),
		Duplicate: result.Duplicate,
	}, nil
}

func (s *Server) handleGet(ctx context.Context, req *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetOutput, error) {
	uc := usecase.NewEntry(s.dbCtx, s.store, 0)

	item, err := uc.Get(ctx, input.ID)
	if err != nil {
		return nil, GetOutput{}, fmt.Errorf("failed to get entry: %w", err)
	}

	entry := clip.Entry{Content: item.Content}
	if item.DisplayLabel != nil {
		entry.DisplayLabel = *item.DisplayLabel
	}

	return nil, GetOutput{
		ID:        item.ID,
		Kind:      string(item.Kind),
		Content:   item.Content,
		Label:     entry.Label(),
		Tags:      item.Tags,
		Pinned:    item.Pinned,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	uc := usecase.NewEntry(s.dbCtx, s.store, 0)

	filter := database.ListFilter{}
	if input.Tag != nil {
		filter.Tag = *input.Tag
	}
	if input.Kind != nil {
		kind, err := clip.ParseKind(*input.Kind)
		if err != nil {
			return nil, ListOutput{}, err
		}
		filter.Kind = kind
	}
	if input.IncludeTrashed != nil {
		filter.IncludeTrashed = *input.IncludeTrashed
	}

	items, err := uc.List(ctx, filter)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("failed to list entries: %w", err)
	}

	entries := make([]ListEntry, 0, len(items))
	for _, item := range items {
		entry := clip.Entry{Content: item.Content}
		if item.DisplayLabel != nil {
			entry.DisplayLabel = *item.DisplayLabel
		}
		entries = append(entries, ListEntry{
			ID:        item.ID,
			Kind:      string(item.Kind),
			Label:     entry.Label(),
			Tags:      item.Tags,
			Pinned:    item.Pinned,
			Trashed:   item.Trashed,
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
	}

	return nil, ListOutput{
		Entries: entries,
	}, nil
}

func (s *Server) handlePin(ctx context.Context, req *mcp.CallToolRequest, input PinInput) (*mcp.CallToolResult, PinOutput, error) {
	uc := usecase.NewEntry(s.dbCtx, s.store, 0)

	pinned := true
	if input.Pinned != nil {
		pinned = *input.Pinned
	}

	rec, err := uc.SetPinned(ctx, input.ID, pinned)
	if err != nil {
		return nil, PinOutput{}, fmt.Errorf("failed to update pin state: %w", err)
	}

	verb := "Pinned"
	if !pinned {
		verb = "Unpinned"
	}
	return nil, PinOutput{
		Message: fmt.Sprintf("%s entry %s", verb, rec.ID),
	}, nil
}

func (s *Server) handleDelete(ctx context.Context, req *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	uc := usecase.NewEntry(s.dbCtx, s.store, 0)

	rec, err := uc.Delete(ctx, input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted entry %s", rec.ID),
	}, nil
}

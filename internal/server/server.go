// Package server exposes the tracker operations as MCP tools over a
// stdio transport.
package server

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/JAlbertCode/event-tracker/internal/tracker"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "event-tracker"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Deps holds the collaborators the tool handlers close over.
type Deps struct {
	Tracker *tracker.Tracker
	Log     zerolog.Logger
}

// New creates a configured MCP server with the tracker tools registered.
func New(deps Deps) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(s, deps)
	return s
}

// Run serves the MCP server on stdio until the context ends.
func Run(ctx context.Context, deps Deps) error {
	s := New(deps)
	err := s.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

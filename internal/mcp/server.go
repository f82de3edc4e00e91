// Package mcp exposes the running window manager to MCP clients over stdio.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/framewm/internal/ipc"
)

const (
	ServerName    = "framewm"
	ServerVersion = "0.1.0"
)

// Backend is the manager control surface the tools call into. *ipc.Client
// implements it.
type Backend interface {
	GetStatus() (*ipc.StatusData, error)
	ListClients() (*ipc.ClientsData, error)
	GetScreens() (*ipc.ScreensData, error)
	Quit() error
}

// Server is the MCP server for inspecting and stopping framewm.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   Backend
}

// NewServer creates a new MCP server backed by the manager's IPC socket.
func NewServer(backend Backend) *Server {
	s := &Server{backend: backend}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "manager_status",
		Description: "Report whether framewm is running, its uptime, the number of managed windows and the focused window id.",
	}, s.handleManagerStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_clients",
		Description: "List the windows framewm manages with their frame geometry, title, focus and current drag/resize state. Most recently framed first. Optionally filter by a case-insensitive title substring.",
	}, s.handleListClients)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_screens",
		Description: "List the physical outputs reported by the X server.",
	}, s.handleListScreens)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "quit_manager",
		Description: "Stop framewm. Managed windows are reparented back to the root window by the X server. Requires confirm=true.",
	}, s.handleQuitManager)
}

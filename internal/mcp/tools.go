package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/framewm/internal/ipc"
)

var errNotConfirmed = errors.New("quit_manager requires confirm=true")

func (s *Server) handleManagerStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ ManagerStatusInput) (*mcpsdk.CallToolResult, ManagerStatusOutput, error) {
	st, err := s.backend.GetStatus()
	if err != nil {
		return nil, ManagerStatusOutput{}, fmt.Errorf("manager_status: %w", err)
	}
	return nil, ManagerStatusOutput{
		Running:       st.Running,
		PID:           st.PID,
		UptimeSeconds: st.UptimeSeconds,
		ClientCount:   st.ClientCount,
		Focused:       st.Focused,
	}, nil
}

func (s *Server) handleListClients(_ context.Context, _ *mcpsdk.CallToolRequest, args ListClientsInput) (*mcpsdk.CallToolResult, ListClientsOutput, error) {
	data, err := s.backend.ListClients()
	if err != nil {
		return nil, ListClientsOutput{}, fmt.Errorf("list_clients: %w", err)
	}
	return nil, ListClientsOutput{Clients: filterByTitle(data.Clients, args.Title)}, nil
}

// filterByTitle keeps clients whose title contains substr, ignoring case.
// An empty substr keeps everything.
func filterByTitle(clients []ipc.ClientInfo, substr string) []ipc.ClientInfo {
	out := make([]ipc.ClientInfo, 0, len(clients))
	needle := strings.ToLower(strings.TrimSpace(substr))
	for _, c := range clients {
		if needle == "" || strings.Contains(strings.ToLower(c.Title), needle) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) handleListScreens(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListScreensInput) (*mcpsdk.CallToolResult, ListScreensOutput, error) {
	data, err := s.backend.GetScreens()
	if err != nil {
		return nil, ListScreensOutput{}, fmt.Errorf("list_screens: %w", err)
	}
	screens := data.Screens
	if screens == nil {
		screens = []ipc.ScreenInfo{}
	}
	return nil, ListScreensOutput{Screens: screens}, nil
}

func (s *Server) handleQuitManager(_ context.Context, _ *mcpsdk.CallToolRequest, args QuitManagerInput) (*mcpsdk.CallToolResult, QuitManagerOutput, error) {
	if !args.Confirm {
		return nil, QuitManagerOutput{}, errNotConfirmed
	}
	if err := s.backend.Quit(); err != nil {
		return nil, QuitManagerOutput{}, fmt.Errorf("quit_manager: %w", err)
	}
	return nil, QuitManagerOutput{Requested: true}, nil
}

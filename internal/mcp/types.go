package mcp

import "github.com/1broseidon/framewm/internal/ipc"

// ManagerStatusInput is the input for the manager_status tool.
type ManagerStatusInput struct{}

// ManagerStatusOutput is the output for the manager_status tool.
type ManagerStatusOutput struct {
	Running       bool   `json:"running"`
	PID           int    `json:"pid"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	ClientCount   int    `json:"client_count"`
	Focused       uint32 `json:"focused,omitempty"`
}

// ListClientsInput is the input for the list_clients tool.
type ListClientsInput struct {
	Title string `json:"title,omitempty" jsonschema:"Case-insensitive substring the window title must contain"`
}

// ListClientsOutput is the output for the list_clients tool.
type ListClientsOutput struct {
	Clients []ipc.ClientInfo `json:"clients"`
}

// ListScreensInput is the input for the list_screens tool.
type ListScreensInput struct{}

// ListScreensOutput is the output for the list_screens tool.
type ListScreensOutput struct {
	Screens []ipc.ScreenInfo `json:"screens"`
}

// QuitManagerInput is the input for the quit_manager tool.
type QuitManagerInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true to stop the window manager"`
}

// QuitManagerOutput is the output for the quit_manager tool.
type QuitManagerOutput struct {
	Requested bool `json:"requested"`
}

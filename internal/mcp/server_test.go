package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/framewm/internal/ipc"
)

type fakeBackend struct {
	status  *ipc.StatusData
	clients *ipc.ClientsData
	screens *ipc.ScreensData
	err     error
	quits   int
}

func (f *fakeBackend) GetStatus() (*ipc.StatusData, error)   { return f.status, f.err }
func (f *fakeBackend) ListClients() (*ipc.ClientsData, error) { return f.clients, f.err }
func (f *fakeBackend) GetScreens() (*ipc.ScreensData, error)  { return f.screens, f.err }

func (f *fakeBackend) Quit() error {
	if f.err != nil {
		return f.err
	}
	f.quits++
	return nil
}

var _ Backend = (*ipc.Client)(nil)

func TestNewServerRegistersTools(t *testing.T) {
	if s := NewServer(&fakeBackend{}); s.mcpServer == nil {
		t.Fatal("NewServer() did not build an MCP server")
	}
}

func TestHandleManagerStatus(t *testing.T) {
	b := &fakeBackend{status: &ipc.StatusData{Running: true, PID: 42, UptimeSeconds: 7, ClientCount: 3, Focused: 100}}
	s := NewServer(b)

	_, out, err := s.handleManagerStatus(context.Background(), nil, ManagerStatusInput{})
	if err != nil {
		t.Fatalf("handleManagerStatus() error: %v", err)
	}
	want := ManagerStatusOutput{Running: true, PID: 42, UptimeSeconds: 7, ClientCount: 3, Focused: 100}
	if out != want {
		t.Fatalf("handleManagerStatus() = %+v, want %+v", out, want)
	}
}

func TestHandleListClientsFiltersByTitle(t *testing.T) {
	b := &fakeBackend{clients: &ipc.ClientsData{Clients: []ipc.ClientInfo{
		{Window: 1, Title: "XTerm"},
		{Window: 2, Title: "Firefox"},
		{Window: 3, Title: "uxterm session"},
	}}}
	s := NewServer(b)

	tests := []struct {
		filter string
		want   []uint32
	}{
		{"", []uint32{1, 2, 3}},
		{"xterm", []uint32{1, 3}},
		{"  FIRE ", []uint32{2}},
		{"emacs", nil},
	}
	for _, tt := range tests {
		_, out, err := s.handleListClients(context.Background(), nil, ListClientsInput{Title: tt.filter})
		if err != nil {
			t.Fatalf("handleListClients(%q) error: %v", tt.filter, err)
		}
		if len(out.Clients) != len(tt.want) {
			t.Fatalf("handleListClients(%q) returned %d clients, want %d", tt.filter, len(out.Clients), len(tt.want))
		}
		for i, c := range out.Clients {
			if c.Window != tt.want[i] {
				t.Fatalf("handleListClients(%q)[%d] = %d, want %d", tt.filter, i, c.Window, tt.want[i])
			}
		}
	}
}

func TestHandleListScreensNeverNil(t *testing.T) {
	s := NewServer(&fakeBackend{screens: &ipc.ScreensData{}})
	_, out, err := s.handleListScreens(context.Background(), nil, ListScreensInput{})
	if err != nil {
		t.Fatalf("handleListScreens() error: %v", err)
	}
	if out.Screens == nil {
		t.Fatal("Screens is nil, want empty slice")
	}
}

func TestHandleQuitManager(t *testing.T) {
	b := &fakeBackend{}
	s := NewServer(b)

	if _, _, err := s.handleQuitManager(context.Background(), nil, QuitManagerInput{}); !errors.Is(err, errNotConfirmed) {
		t.Fatalf("unconfirmed quit error = %v, want %v", err, errNotConfirmed)
	}
	if b.quits != 0 {
		t.Fatalf("Quit called %d times without confirmation", b.quits)
	}

	_, out, err := s.handleQuitManager(context.Background(), nil, QuitManagerInput{Confirm: true})
	if err != nil {
		t.Fatalf("confirmed quit error: %v", err)
	}
	if !out.Requested || b.quits != 1 {
		t.Fatalf("out = %+v, quits = %d", out, b.quits)
	}
}

func TestHandlersWrapBackendErrors(t *testing.T) {
	boom := errors.New("socket gone")
	s := NewServer(&fakeBackend{err: boom})

	if _, _, err := s.handleManagerStatus(context.Background(), nil, ManagerStatusInput{}); !errors.Is(err, boom) {
		t.Fatalf("manager_status error = %v", err)
	}
	if _, _, err := s.handleListClients(context.Background(), nil, ListClientsInput{}); !errors.Is(err, boom) {
		t.Fatalf("list_clients error = %v", err)
	}
	if _, _, err := s.handleListScreens(context.Background(), nil, ListScreensInput{}); !errors.Is(err, boom) {
		t.Fatalf("list_screens error = %v", err)
	}
	if _, _, err := s.handleQuitManager(context.Background(), nil, QuitManagerInput{Confirm: true}); !errors.Is(err, boom) {
		t.Fatalf("quit_manager error = %v", err)
	}
}

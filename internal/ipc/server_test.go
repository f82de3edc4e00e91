package ipc

import (
	"errors"
	"net"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/1broseidon/framewm/internal/logging"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/wm"
)

type fakeManager struct {
	status wm.Status
	exits  atomic.Int32
}

func (f *fakeManager) Status() wm.Status { return f.status }
func (f *fakeManager) RequestExit()      { f.exits.Add(1) }

type fakeScreens struct {
	screens []platform.Screen
	err     error
}

func (f fakeScreens) Screens() ([]platform.Screen, error) { return f.screens, f.err }

func startServer(t *testing.T, m Manager, screens ScreenSource) *Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "framewm.sock")
	srv := NewServer(path, m, screens, logging.Discard())
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientAt(path)
}

func testStatus() wm.Status {
	return wm.Status{
		Started: time.Now().Add(-90 * time.Second),
		Focused: 200,
		Clients: []wm.ClientInfo{
			{
				Window:   200,
				Frame:    1002,
				Title:    "editor",
				Geometry: platform.Rect{X: 10, Y: 20, Width: 400, Height: 310},
				Focused:  true,
				Phase:    "dragging",
			},
			{
				Window:   100,
				Frame:    1001,
				Title:    "xterm",
				Geometry: platform.Rect{X: 0, Y: 0, Width: 300, Height: 210},
				Phase:    "idle",
			},
		},
	}
}

func TestServer_GetStatus(t *testing.T) {
	c := startServer(t, &fakeManager{status: testStatus()}, nil)

	st, err := c.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus() error: %v", err)
	}
	if !st.Running || st.ClientCount != 2 || st.Focused != 200 {
		t.Fatalf("GetStatus() = %+v, want running with 2 clients and focus 200", st)
	}
	if st.UptimeSeconds < 89 {
		t.Fatalf("UptimeSeconds = %d, want >= 89", st.UptimeSeconds)
	}
	if st.PID == 0 {
		t.Fatal("PID not reported")
	}
}

func TestServer_ListClients(t *testing.T) {
	c := startServer(t, &fakeManager{status: testStatus()}, nil)

	data, err := c.ListClients()
	if err != nil {
		t.Fatalf("ListClients() error: %v", err)
	}
	if len(data.Clients) != 2 {
		t.Fatalf("got %d clients, want 2", len(data.Clients))
	}
	first := data.Clients[0]
	want := ClientInfo{
		Window: 200, Frame: 1002, Title: "editor",
		X: 10, Y: 20, Width: 400, Height: 310,
		Focused: true, Interaction: "dragging",
	}
	if first != want {
		t.Fatalf("Clients[0] = %+v, want %+v", first, want)
	}
	if data.Clients[1].Window != 100 || data.Clients[1].Focused {
		t.Fatalf("Clients[1] = %+v", data.Clients[1])
	}
}

func TestServer_GetScreens(t *testing.T) {
	screens := fakeScreens{screens: []platform.Screen{
		{ID: 0, Name: "HDMI-1", Bounds: platform.Rect{Width: 1920, Height: 1080}},
		{ID: 1, Name: "DP-2", Bounds: platform.Rect{X: 1920, Width: 2560, Height: 1440}},
	}}
	c := startServer(t, &fakeManager{}, screens)

	data, err := c.GetScreens()
	if err != nil {
		t.Fatalf("GetScreens() error: %v", err)
	}
	if len(data.Screens) != 2 {
		t.Fatalf("got %d screens, want 2", len(data.Screens))
	}
	if got := data.Screens[1]; got.Name != "DP-2" || got.X != 1920 || got.Width != 2560 {
		t.Fatalf("Screens[1] = %+v", got)
	}
}

func TestServer_GetScreensErrors(t *testing.T) {
	tests := []struct {
		name    string
		screens ScreenSource
		want    string
	}{
		{name: "no source", screens: nil, want: "unavailable"},
		{name: "source fails", screens: fakeScreens{err: errors.New("randr gone")}, want: "randr gone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := startServer(t, &fakeManager{}, tt.screens)
			_, err := c.GetScreens()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("GetScreens() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestServer_Quit(t *testing.T) {
	m := &fakeManager{}
	c := startServer(t, m, nil)

	if err := c.Quit(); err != nil {
		t.Fatalf("Quit() error: %v", err)
	}
	if got := m.exits.Load(); got != 1 {
		t.Fatalf("RequestExit called %d times, want 1", got)
	}
}

func TestServer_UnknownAndMalformedRequests(t *testing.T) {
	c := startServer(t, &fakeManager{}, nil)

	_, err := c.sendRequest(&Request{Command: "RELOAD"})
	if err == nil || !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("unknown command error = %v", err)
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("{not json\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf := make([]byte, 512)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(buf[:n]), `"status":"ERROR"`) {
		t.Fatalf("response = %s, want ERROR status", buf[:n])
	}
}

func TestClient_NoServer(t *testing.T) {
	c := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	if err := c.Ping(); err == nil {
		t.Fatal("Ping() succeeded without a server")
	}
}

package wm

import (
	"time"

	"github.com/1broseidon/framewm/internal/platform"
)

// ClientInfo describes one managed client in a Status.
type ClientInfo struct {
	Window   platform.WindowID
	Frame    platform.WindowID
	Title    string
	Geometry platform.Rect
	Focused  bool
	Phase    string
}

// Status is an immutable view of the manager, rebuilt after every event.
type Status struct {
	Started time.Time
	Focused platform.WindowID
	// Clients are in registry order, most recently framed first.
	Clients []ClientInfo
}

// Status returns the most recently published view. It is safe to call from
// any goroutine.
func (m *Manager) Status() Status {
	if s := m.status.Load(); s != nil {
		return *s
	}
	return Status{Started: m.started}
}

// publish rebuilds the status view and, when the client list changed,
// advertises it on the root window.
func (m *Manager) publish() {
	handles := m.reg.Handles()
	s := &Status{
		Started: m.started,
		Focused: m.focused,
		Clients: make([]ClientInfo, 0, len(handles)),
	}
	ids := make([]platform.WindowID, 0, len(handles))
	for _, h := range handles {
		c, ok := m.reg.Get(h)
		if !ok {
			continue
		}
		s.Clients = append(s.Clients, ClientInfo{
			Window:   c.App(),
			Frame:    c.Frame(),
			Title:    c.Title,
			Geometry: c.Geometry,
			Focused:  c.App() == m.focused,
			Phase:    c.Interaction.Phase.String(),
		})
		ids = append(ids, c.App())
	}
	m.status.Store(s)

	if !m.listChanged {
		return
	}
	m.listChanged = false
	// _NET_CLIENT_LIST is ordered oldest first.
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	m.logRequest("publish client list", m.display.PublishClients(ids), m.root)
}

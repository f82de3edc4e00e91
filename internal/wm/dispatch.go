package wm

import (
	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/registry"
)

// handle routes one event. It never fails: every problem is logged and the
// event dropped.
func (m *Manager) handle(ev Event) {
	m.log.Debug("event", "event", ev.Name())

	switch e := ev.(type) {
	case MapRequest:
		m.onMapRequest(e)
	case UnmapNotify:
		m.onUnmapNotify(e)
	case ConfigureRequest:
		m.logRequest("configure", m.display.Configure(e), e.Window)
	case ButtonPress:
		m.onButtonPress(e)
	case ButtonRelease:
		m.onButtonRelease(e)
	case MotionNotify:
		m.onMotion(e)
	case KeyPress:
		m.onKeyPress(e)
	case EnterNotify:
		m.onEnter(e)
	case LeaveNotify:
		if _, _, role, ok := m.lookup(e.Window, e.Name()); ok {
			m.log.Debug("pointer left", "window", e.Window, "role", role)
		}
	case MappingNotify:
		m.onMappingNotify()
	case Wakeup:
	default:
		m.log.Debug("event ignored", "event", ev.Name())
	}
}

// lookup resolves id to its client, logging a miss.
func (m *Manager) lookup(id platform.WindowID, event string) (registry.Handle, *registry.Client, decor.Role, bool) {
	h, role, ok := m.reg.Lookup(id)
	if !ok {
		m.log.Info("no client for window", "window", id, "event", event)
		return registry.Handle{}, nil, 0, false
	}
	c, ok := m.reg.Get(h)
	if !ok {
		m.log.Warn("stale client handle", "window", id, "client", h)
		return registry.Handle{}, nil, 0, false
	}
	return h, c, role, true
}

func (m *Manager) onMapRequest(e MapRequest) {
	if err := m.frame(e.Window, false); err != nil {
		m.log.Info("window not framed", "window", e.Window, "error", err)
	}
	m.logRequest("map", m.display.Map(e.Window), e.Window)
}

func (m *Manager) onUnmapNotify(e UnmapNotify) {
	// Reparenting a mapped window away from the root unmaps it there.
	if e.Event == m.root {
		return
	}
	h, _, role, ok := m.lookup(e.Window, e.Name())
	if !ok {
		return
	}
	if role != decor.RoleApplication {
		m.log.Debug("decoration unmapped", "window", e.Window, "role", role)
		return
	}
	m.unframe(h)
}

func (m *Manager) onEnter(e EnterNotify) {
XX, m.display.SetCursor(e.Window, role), e.Window)
}

func (m *Manager) onMappingNotify() {
	ignored, err := m.display.RefreshKeyboard()
	if err != nil {
		m.log.Warn("failed to reload keyboard mapping", "error", err)
		return
	}
	m.opts.Keys.SetIgnored(ignored)
	m.grabRootKeys()
	m.grabClientKeys()
	m.log.Info("keyboard mapping reloaded")
}

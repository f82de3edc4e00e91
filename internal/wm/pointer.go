package wm

import (
	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/interaction"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/registry"
)

// onButtonPress raises and focuses the pressed client and, on the title or
// an edge, starts a drag or resize with the pointer grabbed on the title.
func (m *Manager) onButtonPress(e ButtonPress) {
	_, c, role, ok := m.lookup(e.Window, e.Name())
	if !ok {
		return
	}

	phase, starts := interaction.PhaseFor(role)
	if starts && c.Interaction.Begin(phase, e.Root, c.Geometry, m.pieceRect(c, role)) {
		if err := m.display.GrabPointer(c.Window(decor.RoleTitle)); err != nil {
			m.log.Warn("failed to grab pointer", "window", c.App(), "error", err)
			c.Interaction.End()
			return
		}
		m.log.Debug("interaction started", "window", c.App(), "phase", phase)
	}
	m.raiseAndFocus(c)
}

func (m *Manager) onButtonRelease(e ButtonRelease) {
	_, c, _, ok := m.lookup(e.Window, e.Name())
	if !ok {
		return
	}
	phase := c.Interaction.Phase
	if !c.Interaction.End() {
		return
	}
	m.logRequest("ungrab pointer", m.display.UngrabPointer(), c.App())
	m.log.Debug("interaction finished", "window", c.App(), "phase", phase, "geometry", c.Geometry)
}

func (m *Manager) onMotion(e MotionNotify) {
	_, c, role, ok := m.lookup(e.Window, e.Name())
	if !ok {
		return
	}
	if !c.Interaction.Active() {
		m.log.Debug("motion without interaction", "window", e.Window, "role", role)
		return
	}
	r, _ := c.Interaction.Step(e.Root, m.opts.Limits)
	if r == c.Geometry {
		return
	}
	m.applyGeometry(c, r)
}

// pieceRect returns the frame-relative geometry of the decoration playing
// role for the client's current size.
func (m *Manager) pieceRect(c *registry.Client, role decor.Role) platform.Rect {
	for _, p := range m.opts.Metrics.Layout(c.Geometry.Width, c.Geometry.Height) {
		if p.Role == role {
			return p.Rect
		}
	}
	return platform.Rect{}
}

func (m *Manager) raiseAndFocus(c *registry.Client) {
	m.logRequest("raise", m.display.Raise(c.Frame()), c.App())
	m.logRequest("focus", m.display.Focus(c.App()), c.App())
	m.focused = c.App()
}

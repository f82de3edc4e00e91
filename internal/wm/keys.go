package wm

import (
	"slices"

	"github.com/1broseidon/framewm/internal/hotkeys"
)

const deleteWindowProtocol = "WM_DELETE_WINDOW"

func (m *Manager) onKeyPress(e KeyPress) {
	action := m.opts.Keys.Match(e.State, e.Key)
	m.log.Debug("key press", "window", e.Window, "key", e.Key, "state", e.State, "action", action)

	switch action {
	case hotkeys.ActionSpawnTerminal:
		m.spawnTerminal()
	case hotkeys.ActionClose:
		m.closeWindow(e)
	case hotkeys.ActionCycleFocus:
		m.cycleFocus(e)
	}
}

func (m *Manager) spawnTerminal() {
	if err := m.opts.Spawn(m.opts.Terminal); err != nil {
		m.log.Error("failed to start terminal", "command", m.opts.Terminal, "error", err)
		return
	}
	m.log.Info("terminal started", "command", m.opts.Terminal)
}

// closeWindow asks the client politely when it supports WM_DELETE_WINDOW
// and kills its connection otherwise.
func (m *Manager) closeWindow(e KeyPress) {
	_, c, _, ok := m.lookup(e.Window, e.Name())
	if !ok {
		return
	}
	app := c.App()

	protocols, err := m.display.Protocols(app)
	if err == nil && slices.Contains(protocols, deleteWindowProtocol) {
		m.logRequest("send delete", m.display.SendDelete(app), app)
		m.log.Info("asked window to close", "window", app)
		return
	}
	m.logRequest("kill client", m.display.Kill(app), app)
	m.log.Info("killed window client", "window", app)
}

// cycleFocus focuses the client after the pressed one in registry order,
// wrapping around.
func (m *Manager) cycleFocus(e KeyPress) {
	h, _, _, ok := m.lookup(e.Window, e.Name())
	if !ok {
		return
	}
	next, ok := m.reg.Next(h)
	if !ok {
		return
	}
	c, ok := m.reg.Get(next)
	if !ok {
		return
	}
	m.raiseAndFocus(c)
}

func (m *Manager) grabRootKeys() {
	for _, b := range m.opts.Keys.Scoped(hotkeys.ScopeRoot) {
		if err := m.display.GrabKey(m.root, b); err != nil {
			m.log.Warn("failed to grab key", "keys", b.Sequence, "error", err)
		}
	}
}

func (m *Manager) grabClientKeys() {
	for _, h := range m.reg.Handles() {
		c, ok := m.reg.Get(h)
		if !ok {
			continue
		}
		for _, b := range m.opts.Keys.Scoped(hotkeys.ScopeClient) {
			m.logRequest("grab key "+b.Sequence, m.display.GrabKey(c.App(), b), c.App())
		}
	}
}

package wm

import (
	"errors"
	"fmt"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/hotkeys"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/registry"
)

// errNotManageable marks pre-existing windows that are skipped on purpose.
var errNotManageable = errors.New("not a manageable top-level window")

// frame wraps w in a frame with decorations and registers the client.
// Any failure undoes the requests already issued for w, so a vanished
// window leaves no trace and other clients are untouched.
func (m *Manager) frame(w platform.WindowID, preExisting bool) error {
	if _, _, ok := m.reg.Lookup(w); ok {
		return nil
	}

	attrs, err := m.display.Attributes(w)
	if err != nil {
		return fmt.Errorf("failed to read attributes of window %d: %w", w, err)
	}
	if preExisting && (attrs.OverrideRedirect || !attrs.Viewable) {
		return errNotManageable
	}

	metrics := m.opts.Metrics
	geom := metrics.Clamp(attrs.Geometry)
	// Frames start below the top margin so the title bar stays reachable.
	geom.Y = max(geom.Y, m.opts.Limits.TopMargin)
	c := &registry.Client{
		Geometry: geom,
		Title:    m.display.Title(w),
	}
	c.Windows[decor.RoleApplication] = w

	var undo []func()
	fail := func(step string, err error) error {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		return fmt.Errorf("failed to frame window %d: %s: %w", w, step, err)
	}

	frameID, err := m.display.CreateWindow(m.root, geom, m.opts.Colors.Frame)
	if err != nil {
		return fail("create frame", err)
	}
	c.Windows[decor.RoleFrame] = frameID
	undo = append(undo, func() { _ = m.display.Destroy(frameID) })

	if err := m.display.SelectFrameInput(frameID); err != nil {
		return fail("select frame input", err)
	}
	if err := m.display.AddToSaveSet(w); err != nil {
		return fail("add to save-set", err)
	}
	undo = append(undo, func() { _ = m.display.RemoveFromSaveSet(w) })

	inner := metrics.Client(geom.Width, geom.Height)
	if err := m.display.MoveResize(w, inner); err != nil {
		return fail("resize application window", err)
	}
	if err := m.display.Reparent(w, frameID, inner.Origin()); err != nil {
		return fail("reparent application window", err)
	}
	undo = append(undo, func() { _ = m.display.Reparent(w, m.root, attrs.Geometry.Origin()) })

	if err := m.display.Map(frameID); err != nil {
		return fail("map frame", err)
	}

	for _, p := range metrics.Layout(geom.Width, geom.Height) {
		id, err := m.createDecoration(frameID, p)
		if err != nil {
			return fail("create "+p.Role.String(), err)
		}
		c.Windows[p.Role] = id
	}

	h, err := m.reg.Add(c)
	if err != nil {
		return fail("register client", err)
	}

	// Grabbed only once registered so a failed frame leaves no grabs behind.
	for _, b := range m.opts.Keys.Scoped(hotkeys.ScopeClient) {
		if err := m.display.GrabKey(w, b); err != nil {
			m.log.Warn("failed to grab key", "window", w, "keys", b.Sequence, "error", err)
		}
	}

	if err := m.display.MarkManaged(w, metrics); err != nil {
		m.log.Debug("failed to publish window state", "window", w, "error", err)
	}
	m.listChanged = true
	m.log.Info("framed window", "window", w, "frame", frameID, "client", h, "title", c.Title, "pre_existing", preExisting)
	return nil
}

// createDecoration creates one mapped decoration window inside frame.
func (m *Manager) createDecoration(frame platform.WindowID, p decor.Piece) (platform.WindowID, error) {
	id, err := m.display.CreateWindow(frame, p.Rect, m.opts.Colors.forRole(p.Role))
	if err != nil {
		return 0, err
	}
	if err := m.display.SelectDecorationInput(id); err != nil {
		return 0, err
	}
	if err := m.display.GrabButton(id); err != nil {
		return 0, err
	}
	if err := m.display.Map(id); err != nil {
		return 0, err
	}
	return id, nil
}

// unframe tears a client down in the reverse order of frame. Requests that
// fail because the application already went away are logged and skipped.
func (m *Manager) unframe(h registry.Handle) {
	c, ok := m.reg.Get(h)
	if !ok {
		return
	}
	app, frameID := c.App(), c.Frame()

	if c.Interaction.End() {
		m.logRequest("ungrab pointer", m.display.UngrabPointer(), app)
	}
	m.logRequest("unmap frame", m.display.Unmap(frameID), app)
	m.logRequest("reparent to root", m.display.Reparent(app, m.root, c.Geometry.Origin()), app)
	m.logRequest("remove from save-set", m.display.RemoveFromSaveSet(app), app)
	m.logRequest("destroy frame", m.display.Destroy(frameID), app)

	if _, err := m.reg.Remove(h); err != nil {
		m.log.Warn("failed to remove client", "client", h, "error", err)
	}
	if m.focused == app {
		m.focused = 0
	}
	m.listChanged = true
	m.log.Info("unframed window", "window", app, "frame", frameID)
}

// applyGeometry makes r the client's frame geometry and recomputes the
// application window and every decoration from it.
func (m *Manager) applyGeometry(c *registry.Client, r platform.Rect) {
	prev := c.Geometry
	c.Geometry = r
	m.logRequest("move frame", m.display.MoveResize(c.Frame(), r), c.App())
	if prev.SameSize(r) {
		return
	}

	m.logRequest("resize application", m.display.MoveResize(c.App(), m.opts.Metrics.Client(r.Width, r.Height)), c.App())
	for _, p := range m.opts.Metrics.Layout(r.Width, r.Height) {
		if id := c.Window(p.Role); id != 0 {
			m.logRequest("resize "+p.Role.String(), m.display.MoveResize(id, p.Rect), c.App())
		}
	}
}

func (m *Manager) logRequest(what string, err error, w platform.WindowID) {
	if err != nil {
		m.log.Debug("request failed", "request", what, "window", w, "error", err)
	}
}

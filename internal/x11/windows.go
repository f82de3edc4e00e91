package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/wm"
)

func xwin(w platform.WindowID) xproto.Window {
	return xproto.Window(w)
}

// Children lists the direct children of w, bottom-most first.
func (c *Connection) Children(w platform.WindowID) ([]platform.WindowID, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), xwin(w)).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree of %d: %w", w, err)
	}
	ids := make([]platform.WindowID, 0, len(tree.Children))
	for _, child := range tree.Children {
		ids = append(ids, platform.WindowID(child))
	}
	return ids, nil
}

// Attributes reads the window's geometry, override-redirect flag and map
// state in two round trips.
func (c *Connection) Attributes(w platform.WindowID) (wm.Attributes, error) {
	conn := c.XUtil.Conn()
	attrs, err := xproto.GetWindowAttributes(conn, xwin(w)).Reply()
	if err != nil {
		return wm.Attributes{}, fmt.Errorf("get attributes of %d: %w", w, err)
	}
	geom, err := xproto.GetGeometry(conn, xproto.Drawable(w)).Reply()
	if err != nil {
		return wm.Attributes{}, fmt.Errorf("get geometry of %d: %w", w, err)
	}
	return wm.Attributes{
		Geometry: platform.Rect{
			X:      int(geom.X),
			Y:      int(geom.Y),
			Width:  int(geom.Width),
			Height: int(geom.Height),
		},
		OverrideRedirect: attrs.OverrideRedirect,
		Viewable:         attrs.MapState == xproto.MapStateViewable,
	}, nil
}

// Title prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) Title(w platform.WindowID) string {
	if name, err := ewmh.WmNameGet(c.XUtil, xwin(w)); err == nil && name != "" {
		return name
	}
	name, err := icccm.WmNameGet(c.XUtil, xwin(w))
	if err != nil {
		return ""
	}
	return name
}

// Protocols implements wm.Display.
func (c *Connection) Protocols(w platform.WindowID) ([]string, error) {
	return icccm.WmProtocolsGet(c.XUtil, xwin(w))
}

// CreateWindow creates an unmapped input-output window with a solid
// background.
func (c *Connection) CreateWindow(parent platform.WindowID, r platform.Rect, color uint32) (platform.WindowID, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("allocate window id: %w", err)
	}
	err = win.CreateChecked(xwin(parent), r.X, r.Y, r.Width, r.Height,
		xproto.CwBackPixel, color)
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}
	return platform.WindowID(win.Id), nil
}

func (c *Connection) selectInput(w platform.WindowID, mask int) error {
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), xwin(w),
		xproto.CwEventMask, []uint32{uint32(mask)}).Check()
}

// SelectFrameInput implements wm.Display.
func (c *Connection) SelectFrameInput(w platform.WindowID) error {
	return c.selectInput(w, xproto.EventMaskSubstructureRedirect|
		xproto.EventMaskSubstructureNotify)
}

// SelectDecorationInput implements wm.Display.
func (c *Connection) SelectDecorationInput(w platform.WindowID) error {
	return c.selectInput(w, xproto.EventMaskButtonPress|
		xproto.EventMaskButtonRelease|
		xproto.EventMaskEnterWindow|
		xproto.EventMaskLeaveWindow)
}

// AddToSaveSet is checked so framing notices a window that vanished before
// it could be reparented.
func (c *Connection) AddToSaveSet(w platform.WindowID) error {
	return xproto.ChangeSaveSetChecked(c.XUtil.Conn(), xproto.SetModeInsert,
		xwin(w)).Check()
}

// RemoveFromSaveSet implements wm.Display.
func (c *Connection) RemoveFromSaveSet(w platform.WindowID) error {
	xproto.ChangeSaveSet(c.XUtil.Conn(), xproto.SetModeDelete, xwin(w))
	return nil
}

// Reparent implements wm.Display.
func (c *Connection) Reparent(w, parent platform.WindowID, at platform.Point) error {
	return xproto.ReparentWindowChecked(c.XUtil.Conn(), xwin(w), xwin(parent),
		int16(at.X), int16(at.Y)).Check()
}

// Map implements wm.Display.
func (c *Connection) Map(w platform.WindowID) error {
	xproto.MapWindow(c.XUtil.Conn(), xwin(w))
	return nil
}

// Unmap implements wm.Display.
func (c *Connection) Unmap(w platform.WindowID) error {
	xproto.UnmapWindow(c.XUtil.Conn(), xwin(w))
	return nil
}

// Destroy implements wm.Display.
func (c *Connection) Destroy(w platform.WindowID) error {
	xwindow.New(c.XUtil, xwin(w)).Destroy()
	return nil
}

// MoveResize implements wm.Display.
func (c *Connection) MoveResize(w platform.WindowID, r platform.Rect) error {
	xwindow.New(c.XUtil, xwin(w)).MoveResize(r.X, r.Y, r.Width, r.Height)
	return nil
}

// Configure forwards a ConfigureRequest. The value list carries one entry per
// set mask bit, in bit order.
func (c *Connection) Configure(req wm.ConfigureRequest) error {
	var values []uint32
	if req.Mask&wm.ConfigX != 0 {
		values = append(values, uint32(int32(req.X)))
	}
	if req.Mask&wm.ConfigY != 0 {
		values = append(values, uint32(int32(req.Y)))
	}
	if req.Mask&wm.ConfigWidth != 0 {
		values = append(values, uint32(req.Width))
	}
	if req.Mask&wm.ConfigHeight != 0 {
		values = append(values, uint32(req.Height))
	}
	if req.Mask&wm.ConfigBorderWidth != 0 {
		values = append(values, uint32(req.BorderWidth))
	}
	if req.Mask&wm.ConfigSibling != 0 {
		values = append(values, uint32(req.Sibling))
	}
	if req.Mask&wm.ConfigStackMode != 0 {
		values = append(values, uint32(req.StackMode))
	}
	xproto.ConfigureWindow(c.XUtil.Conn(), xwin(req.Window), req.Mask, values)
	return nil
}

// Raise implements wm.Display.
func (c *Connection) Raise(w platform.WindowID) error {
	xwindow.New(c.XUtil, xwin(w)).Stack(xproto.StackModeAbove)
	return nil
}

// Focus gives w the input focus and records it in _NET_ACTIVE_WINDOW.
func (c *Connection) Focus(w platform.WindowID) error {
	xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot,
		xwin(w), xproto.TimeCurrentTime)
	return ewmh.ActiveWindowSet(c.XUtil, xwin(w))
}

// SendDelete asks the client to close w through WM_DELETE_WINDOW.
func (c *Connection) SendDelete(w platform.WindowID) error {
	protocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return err
	}
	del, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	ev, err := xevent.NewClientMessage(32, xwin(w), protocols,
		int(del), int(xproto.TimeCurrentTime))
	if err != nil {
		return err
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, xwin(w),
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// Kill implements wm.Display.
func (c *Connection) Kill(w platform.WindowID) error {
	return xproto.KillClientChecked(c.XUtil.Conn(), uint32(w)).Check()
}

// MarkManaged sets WM_STATE to NormalState and publishes the frame extents.
func (c *Connection) MarkManaged(w platform.WindowID, m decor.Metrics) error {
	err := icccm.WmStateSet(c.XUtil, xwin(w), &icccm.WmState{
		State: icccm.StateNormal,
	})
	if err != nil {
		return fmt.Errorf("set WM_STATE: %w", err)
	}
	if err := c.placeOnDesktop(xwin(w)); err != nil {
		return err
	}
	left, right, top, bottom := m.Extents()
	return ewmh.FrameExtentsSet(c.XUtil, xwin(w), &ewmh.FrameExtents{
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: bottom,
	})
}

// PublishClients implements wm.Display.
func (c *Connection) PublishClients(ws []platform.WindowID) error {
	wins := make([]xproto.Window, len(ws))
	for i, w := range ws {
		wins[i] = xwin(w)
	}
	return ewmh.ClientListSet(c.XUtil, wins)
}

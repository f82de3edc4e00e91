package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/hotkeys"
	"github.com/1broseidon/framewm/internal/platform"
)

var errPointerGrabRefused = errors.New("pointer grab refused")

const buttonGrabMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion

// grabModifiers lists the modifier masks a button grab for mods must be
// issued with. AnyModifier already covers the lock combinations and the
// server rejects it combined with any other bit.
func grabModifiers(mods uint16, ignore []uint16) []uint16 {
	if mods&xproto.ModMaskAny != 0 {
		return []uint16{xproto.ModMaskAny}
	}
	out := make([]uint16, 0, len(ignore))
	for _, m := range ignore {
		out = append(out, mods|m)
	}
	return out
}

// GrabButton grabs every button, with any modifier combination, on a
// decoration window.
func (c *Connection) GrabButton(w platform.WindowID) error {
	for _, mods := range grabModifiers(xproto.ModMaskAny, xevent.IgnoreMods) {
		err := xproto.GrabButtonChecked(c.XUtil.Conn(), true, xwin(w), buttonGrabMask,
			xproto.GrabModeAsync, xproto.GrabModeAsync, xproto.WindowNone,
			xproto.CursorNone, xproto.ButtonIndexAny, mods).Check()
		if err != nil {
			return err
		}
	}
	return nil
}

// GrabPointer actively grabs the pointer for w. A grab the server declines
// without a protocol error is reported as errPointerGrabRefused.
func (c *Connection) GrabPointer(w platform.WindowID) error {
	ok, err := mousebind.GrabPointer(c.XUtil, xwin(w), xproto.WindowNone,
		xproto.CursorNone)
	if err != nil {
		return err
	}
	if !ok {
		return errPointerGrabRefused
	}
	return nil
}

// UngrabPointer implements wm.Display.
func (c *Connection) UngrabPointer() error {
	mousebind.UngrabPointer(c.XUtil)
	return nil
}

// GrabKey grabs every keycode that produces the binding's keysym.
func (c *Connection) GrabKey(w platform.WindowID, b hotkeys.Binding) error {
	mods, codes, err := keybind.ParseString(c.XUtil, b.Sequence)
	if err != nil {
		return fmt.Errorf("parse %q: %w", b.Sequence, err)
	}
	for _, code := range codes {
		if err := keybind.GrabChecked(c.XUtil, xwin(w), mods, code); err != nil {
			return fmt.Errorf("grab %q: %w", b.Sequence, err)
		}
	}
	return nil
}

// RefreshKeyboard reloads the cached keyboard and modifier maps and
// recomputes the lock modifiers grabs must tolerate.
func (c *Connection) RefreshKeyboard() (uint16, error) {
	keyMap, modMap := keybind.MapsGet(c.XUtil)
	keybind.KeyMapSet(c.XUtil, keyMap)
	keybind.ModMapSet(c.XUtil, modMap)
	return hotkeys.ConfigureIgnoreMods(c.XUtil), nil
}

var roleCursors = map[decor.Role]uint16{
	decor.RoleTitle:       xcursor.LeftPtr,
	decor.RoleLeft:        xcursor.SBHDoubleArrow,
	decor.RoleRight:       xcursor.SBHDoubleArrow,
	decor.RoleBottom:      xcursor.SBVDoubleArrow,
	decor.RoleCornerLeft:  xcursor.BottomLeftCorner,
	decor.RoleCornerRight: xcursor.BottomRightCorner,
}

// SetCursor sets the hover cursor of a decoration window. Cursors are
// created on first use and kept until Close.
func (c *Connection) SetCursor(w platform.WindowID, role decor.Role) error {
	cur, ok := c.cursors[role]
	if !ok {
		shape, known := roleCursors[role]
		if !known {
			return fmt.Errorf("no cursor for role %s", role)
		}
		var err error
		cur, err = xcursor.CreateCursor(c.XUtil, shape)
		if err != nil {
			return fmt.Errorf("create cursor: %w", err)
		}
		c.cursors[role] = cur
	}
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), xwin(w), xproto.CwCursor,
		[]uint32{uint32(cur)})
	return nil
}

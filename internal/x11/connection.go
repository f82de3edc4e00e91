// Package x11 implements the manager's display connection on top of xgb and
// xgbutil.
package x11

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/hotkeys"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/wm"
)

// WMName is advertised through _NET_WM_NAME on the supporting window.
const WMName = "framewm"

const wakeAtomName = "_FRAMEWM_WAKE"

// Hints advertised in _NET_SUPPORTED.
var supportedHints = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_FRAME_EXTENTS",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_NAMES",
	"_NET_WM_DESKTOP",
}

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil   *xgbutil.XUtil
	RootWin xproto.Window

	log      *slog.Logger
	support  *xwindow.Window
	wakeAtom xproto.Atom
	cursors  map[decor.Role]xproto.Cursor
}

var _ wm.Display = (*Connection)(nil)

// Open establishes a connection to the X11 server named by $DISPLAY and
// prepares the keyboard and pointer helpers.
func Open(log *slog.Logger) (*Connection, error) {
	if log == nil {
		log = slog.Default()
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	// Initialize keybind module (required for key grabs and keysym lookup)
	keybind.Initialize(xu)
	mousebind.Initialize(xu)
	hotkeys.ConfigureIgnoreMods(xu)

	wake, err := xprop.Atm(xu, wakeAtomName)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("intern %s: %w", wakeAtomName, err)
	}

	support, err := xwindow.Create(xu, xu.RootWin())
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("create supporting window: %w", err)
	}

	return &Connection{
		XUtil:    xu,
		RootWin:  xu.RootWin(),
		log:      log,
		support:  support,
		wakeAtom: wake,
		cursors:  make(map[decor.Role]xproto.Cursor),
	}, nil
}

// IgnoredMods returns the lock-modifier mask currently disregarded by grabs.
func (c *Connection) IgnoredMods() uint16 {
	var mask uint16
	for _, m := range xevent.IgnoreMods {
		mask |= m
	}
	return mask
}

// Root implements wm.Display.
func (c *Connection) Root() platform.WindowID {
	return platform.WindowID(c.RootWin)
}

// BecomeManager selects substructure redirection on the root window with a
// checked request. Only one client may hold it, so an access error means
// another window manager owns the display.
func (c *Connection) BecomeManager() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskStructureNotify)

	err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.RootWin,
		xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		var access xproto.AccessError
		if errors.As(err, &access) {
			return wm.ErrAnotherManager
		}
		return fmt.Errorf("select root events: %w", err)
	}

	return c.advertise()
}

// advertise publishes the EWMH supporting-window check so pagers and
// clients can identify the manager.
func (c *Connection) advertise() error {
	id := c.support.Id
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.RootWin, id); err != nil {
		return fmt.Errorf("set supporting wm check: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, id, id); err != nil {
		return fmt.Errorf("set supporting wm check: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, id, WMName); err != nil {
		return fmt.Errorf("set wm name: %w", err)
	}
	if err := ewmh.SupportedSet(c.XUtil, supportedHints); err != nil {
		return fmt.Errorf("set supported hints: %w", err)
	}
	return c.publishDesktop()
}

// GrabServer implements wm.Display.
func (c *Connection) GrabServer() error {
	c.XUtil.Grab()
	return nil
}

// UngrabServer implements wm.Display.
func (c *Connection) UngrabServer() error {
	c.XUtil.Ungrab()
	return nil
}

// Wake sends a client message to the supporting window. An empty event mask
// delivers the event to the window's creator, which is this connection.
func (c *Connection) Wake() error {
	ev, err := xevent.NewClientMessage(32, c.support.Id, c.wakeAtom)
	if err != nil {
		return err
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, c.support.Id,
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// Close releases the cursors and the supporting window and cleanly
// disconnects from the X11 server.
func (c *Connection) Close() {
	conn := c.XUtil.Conn()
	for _, cur := range c.cursors {
		xproto.FreeCursor(conn, cur)
	}
	c.support.Destroy()
	conn.Close()
}

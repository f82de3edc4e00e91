package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// The manager runs a single virtual desktop. Pagers and taskbars still expect
// the desktop hints, so they are published with fixed values.
const desktopName = "main"

// publishDesktop advertises one desktop and makes it current.
func (c *Connection) publishDesktop() error {
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, 1); err != nil {
		return fmt.Errorf("failed to set desktop count: %w", err)
	}
	if err := ewmh.CurrentDesktopSet(c.XUtil, 0); err != nil {
		return fmt.Errorf("failed to set current desktop: %w", err)
	}
	if err := ewmh.DesktopNamesSet(c.XUtil, []string{desktopName}); err != nil {
		return fmt.Errorf("failed to set desktop names: %w", err)
	}
	return nil
}

// placeOnDesktop records the single desktop in the window's _NET_WM_DESKTOP.
func (c *Connection) placeOnDesktop(win xproto.Window) error {
	if err := ewmh.WmDesktopSet(c.XUtil, win, 0); err != nil {
		return fmt.Errorf("failed to set window desktop: %w", err)
	}
	return nil
}

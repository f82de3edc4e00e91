package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/wm"
)

// NextEvent blocks until the server delivers an event or an error. A nil
// event with a nil error means the connection is gone.
func (c *Connection) NextEvent() (wm.Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if ev == nil && xerr == nil {
		return nil, wm.ErrConnectionClosed
	}
	if xerr != nil {
		return nil, xerr
	}
	return translate(ev, c.wakeAtom, c.lookupKey), nil
}

func (c *Connection) lookupKey(state uint16, code xproto.Keycode) string {
	return keybind.LookupString(c.XUtil, state, code)
}

// keyLookup resolves a keycode under a modifier state to a keysym name.
type keyLookup func(state uint16, code xproto.Keycode) string

func rootPoint(x, y int16) platform.Point {
	return platform.Point{X: int(x), Y: int(y)}
}

// translate converts a wire event into the manager's event model.
func translate(ev xgb.Event, wake xproto.Atom, lookup keyLookup) wm.Event {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return wm.MapRequest{Window: platform.WindowID(e.Window)}
	case xproto.UnmapNotifyEvent:
		return wm.UnmapNotify{
			Event:  platform.WindowID(e.Event),
			Window: platform.WindowID(e.Window),
		}
	case xproto.ConfigureRequestEvent:
		return wm.ConfigureRequest{
			Window:      platform.WindowID(e.Window),
			Mask:        e.ValueMask,
			X:           int(e.X),
			Y:           int(e.Y),
			Width:       int(e.Width),
			Height:      int(e.Height),
			BorderWidth: int(e.BorderWidth),
			Sibling:     platform.WindowID(e.Sibling),
			StackMode:   e.StackMode,
		}
	case xproto.ButtonPressEvent:
		return wm.ButtonPress{
			Window: platform.WindowID(e.Event),
			Root:   rootPoint(e.RootX, e.RootY),
			Button: byte(e.Detail),
			State:  e.State,
		}
	case xproto.ButtonReleaseEvent:
		return wm.ButtonRelease{
			Window: platform.WindowID(e.Event),
			Root:   rootPoint(e.RootX, e.RootY),
			Button: byte(e.Detail),
		}
	case xproto.MotionNotifyEvent:
		return wm.MotionNotify{
			Window: platform.WindowID(e.Event),
			Root:   rootPoint(e.RootX, e.RootY),
		}
	case xproto.KeyPressEvent:
		return wm.KeyPress{
			Window: platform.WindowID(e.Event),
			State:  e.State,
			Key:    lookup(e.State, e.Detail),
		}
	case xproto.EnterNotifyEvent:
		return wm.EnterNotify{Window: platform.WindowID(e.Event)}
	case xproto.LeaveNotifyEvent:
		return wm.LeaveNotify{Window: platform.WindowID(e.Event)}
	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingPointer {
			return wm.Other{Kind: "MappingNotify"}
		}
		return wm.MappingNotify{}
	case xproto.ClientMessageEvent:
		if e.Type == wake {
			return wm.Wakeup{}
		}
	}
	return wm.Other{Kind: eventName(ev)}
}

// eventName derives the protocol name from the Go type, for example
// "xproto.PropertyNotifyEvent" becomes "PropertyNotify".
func eventName(ev xgb.Event) string {
	name := fmt.Sprintf("%T", ev)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "Event")
}

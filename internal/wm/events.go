package wm

import "github.com/1broseidon/framewm/internal/platform"

// Event is a protocol event already translated out of the wire format.
type Event interface {
	// Name is the protocol name of the event, used for logging.
	Name() string
}

// MapRequest asks to map a top-level window.
type MapRequest struct {
	Window platform.WindowID
}

// UnmapNotify reports that Window was unmapped. Event is the window the
// notification was delivered on.
type UnmapNotify struct {
	Event  platform.WindowID
	Window platform.WindowID
}

// Configure request value-mask bits, in wire order.
const (
	ConfigX uint16 = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorderWidth
	ConfigSibling
	ConfigStackMode
)

// ConfigureRequest asks to change a window's geometry or stacking. Only the
// fields selected by Mask are meaningful.
type ConfigureRequest struct {
	Window      platform.WindowID
	Mask        uint16
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	Sibling     platform.WindowID
	StackMode   byte
}

// ButtonPress reports a pointer button press on Window.
type ButtonPress struct {
	Window platform.WindowID
	Root   platform.Point
	Button byte
	State  uint16
}

// ButtonRelease reports a pointer button release on Window.
type ButtonRelease struct {
	Window platform.WindowID
	Root   platform.Point
	Button byte
}

// MotionNotify reports pointer motion delivered to Window.
type MotionNotify struct {
	Window platform.WindowID
	Root   platform.Point
}

// KeyPress reports a grabbed key press. Key is the keysym name.
type KeyPress struct {
	Window platform.WindowID
	State  uint16
	Key    string
}

// EnterNotify reports the pointer entering Window.
type EnterNotify struct {
	Window platform.WindowID
}

// LeaveNotify reports the pointer leaving Window.
type LeaveNotify struct {
	Window platform.WindowID
}

// MappingNotify reports a keyboard or modifier mapping change.
type MappingNotify struct{}

// Wakeup is delivered after Display.Wake.
type Wakeup struct{}

// Other is any event the manager does not act on.
type Other struct {
	Kind string
}

func (MapRequest) Name() string       { return "MapRequest" }
func (UnmapNotify) Name() string      { return "UnmapNotify" }
func (ConfigureRequest) Name() string { return "ConfigureRequest" }
func (ButtonPress) Name() string      { return "ButtonPress" }
func (ButtonRelease) Name() string    { return "ButtonRelease" }
func (MotionNotify) Name() string     { return "MotionNotify" }
func (KeyPress) Name() string         { return "KeyPress" }
func (EnterNotify) Name() string      { return "EnterNotify" }
func (LeaveNotify) Name() string      { return "LeaveNotify" }
func (MappingNotify) Name() string    { return "MappingNotify" }
func (Wakeup) Name() string           { return "Wakeup" }
func (o Other) Name() string          { return o.Kind }

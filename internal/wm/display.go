package wm

import (
	"errors"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/hotkeys"
	"github.com/1broseidon/framewm/internal/platform"
)

var (
	// ErrAnotherManager is returned by Display.BecomeManager when another
	// client already holds substructure-redirect on the root window.
	ErrAnotherManager = errors.New("another window manager is already running")
	// ErrConnectionClosed is returned by Display.NextEvent once the server
	// connection is gone.
	ErrConnectionClosed = errors.New("display connection closed")
)

// Attributes is the subset of window state framing depends on.
type Attributes struct {
	Geometry         platform.Rect
	OverrideRedirect bool
	Viewable         bool
}

// Display is the connection to the windowing server as the manager sees it.
//
// Requests are fire-and-forget unless documented otherwise: a returned error
// means the request could not be issued, while asynchronous protocol errors
// surface later from NextEvent.
type Display interface {
	Root() platform.WindowID

	// BecomeManager selects substructure redirection on the root window and
	// waits for the server's verdict. It returns ErrAnotherManager when the
	// server refuses with an access error.
	BecomeManager() error
	GrabServer() error
	UngrabServer() error

	// Children lists the direct children of w in stacking order.
	Children(w platform.WindowID) ([]platform.WindowID, error)
	Attributes(w platform.WindowID) (Attributes, error)
	// Title returns the window's name or "" when it has none.
	Title(w platform.WindowID) string
	// Protocols returns the atom names listed in WM_PROTOCOLS.
	Protocols(w platform.WindowID) ([]string, error)

	CreateWindow(parent platform.WindowID, r platform.Rect, color uint32) (platform.WindowID, error)
	// SelectFrameInput asks for substructure redirect and notify events.
	SelectFrameInput(w platform.WindowID) error
	// SelectDecorationInput asks for enter, leave and button events.
	SelectDecorationInput(w platform.WindowID) error
	AddToSaveSet(w platform.WindowID) error
	RemoveFromSaveSet(w platform.WindowID) error
	Reparent(w, parent platform.WindowID, at platform.Point) error
	Map(w platform.WindowID) error
	Unmap(w platform.WindowID) error
	Destroy(w platform.WindowID) error
	MoveResize(w platform.WindowID, r platform.Rect) error
	// Configure forwards a client's configure request unchanged.
	Configure(req ConfigureRequest) error
	Raise(w platform.WindowID) error
	// Focus gives w the input focus and advertises it as the active window.
	Focus(w platform.WindowID) error

	// GrabButton makes presses of any button on w go to the manager.
	GrabButton(w platform.WindowID) error
	// GrabPointer routes all pointer motion, press and release events to w.
	GrabPointer(w platform.WindowID) error
	UngrabPointer() error
	GrabKey(w platform.WindowID, b hotkeys.Binding) error
	// RefreshKeyboard reloads the keyboard and modifier maps after a
	// mapping change and returns the lock-modifier mask to disregard.
	RefreshKeyboard() (uint16, error)
	SetCursor(w platform.WindowID, role decor.Role) error

	// SendDelete sends a WM_DELETE_WINDOW client message to w.
	SendDelete(w platform.WindowID) error
	// Kill terminates the client that owns w.
	Kill(w platform.WindowID) error

	// MarkManaged publishes the ICCCM and EWMH state of a newly framed window.
	MarkManaged(w platform.WindowID, m decor.Metrics) error
	// PublishClients advertises the managed application windows.
	PublishClients(ws []platform.WindowID) error

	// NextEvent blocks for the next event. Protocol errors are returned as
	// errors; ErrConnectionClosed is final.
	NextEvent() (Event, error)
	// Wake unblocks a pending NextEvent with a Wakeup event. It may be called
	// from any goroutine.
	Wake() error
}

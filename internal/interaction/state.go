// Package interaction implements the per-client drag and resize state
// machine. It is pure geometry: callers translate its results into window
// requests.
package interaction

import (
	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/platform"
)

// Phase represents the current interaction phase of a client
type Phase int

const (
	// PhaseIdle means no pointer interaction is in progress
	PhaseIdle Phase = iota
	// PhaseDragging means the frame follows the pointer
	PhaseDragging
	// PhaseResizingLeft means the left boundary follows the pointer
	PhaseResizingLeft
	// PhaseResizingRight means the right boundary follows the pointer
	PhaseResizingRight
	// PhaseResizingBottom means the bottom boundary follows the pointer
	PhaseResizingBottom
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizingLeft:
		return "resizing-left"
	case PhaseResizingRight:
		return "resizing-right"
	case PhaseResizingBottom:
		return "resizing-bottom"
	default:
		return "unknown"
	}
}

// IsResize reports whether the phase changes the frame size.
func (p Phase) IsResize() bool {
	return p == PhaseResizingLeft || p == PhaseResizingRight || p == PhaseResizingBottom
}

// PhaseFor maps the role of a pressed decoration to the phase it starts.
// Corners, the frame and the application window start nothing.
func PhaseFor(role decor.Role) (Phase, bool) {
	switch role {
	case decor.RoleTitle:
		return PhaseDragging, true
	case decor.RoleLeft:
		return PhaseResizingLeft, true
	case decor.RoleRight:
		return PhaseResizingRight, true
	case decor.RoleBottom:
		return PhaseResizingBottom, true
	default:
		return PhaseIdle, false
	}
}

// Limits bounds the geometry an interaction may produce.
type Limits struct {
	// TopMargin is the smallest y a dragged frame may take.
	TopMargin int
	// MinWidth and MinHeight are the smallest frame size a resize may produce.
	MinWidth  int
	MinHeight int
}

// State holds one client's interaction. A single Phase field makes the
// drag and resize modes mutually exclusive.
type State struct {
	Phase Phase
	// Start is the pointer position in root coordinates at button press.
	Start platform.Point
	// Frame is the frame geometry at button press.
	Frame platform.Rect
	// Edge is the pressed decoration's frame-relative geometry at button press.
	Edge platform.Rect
}

// Active reports whether a drag or resize is in progress.
func (s *State) Active() bool {
	return s.Phase != PhaseIdle
}

// Begin starts phase p from the given snapshot. It refuses to start while
// another interaction is in progress or when p is PhaseIdle.
func (s *State) Begin(p Phase, pointer platform.Point, frame, edge platform.Rect) bool {
	if p == PhaseIdle || s.Active() {
		return false
	}
	s.Phase = p
	s.Start = pointer
	s.Frame = frame
	s.Edge = edge
	return true
}

// End returns the state to idle and reports whether an interaction was in
// progress. Calling End while idle is a no-op.
func (s *State) End() bool {
	was := s.Active()
	s.Reset()
	return was
}

// Reset clears the state to idle
func (s *State) Reset() {
	s.Phase = PhaseIdle
	s.Start = platform.Point{}
	s.Frame = platform.Rect{}
	s.Edge = platform.Rect{}
}

// Step computes the frame geometry for the pointer at root position p.
// It returns false while idle. A pointer at the start position yields the
// snapshot geometry unchanged as long as the snapshot respects TopMargin.
func (s *State) Step(p platform.Point, lim Limits) (platform.Rect, bool) {
	if !s.Active() {
		return platform.Rect{}, false
	}

	d := p.Sub(s.Start)
	r := s.Frame
	switch s.Phase {
	case PhaseDragging:
		r.X += d.X
		r.Y = max(r.Y+d.Y, lim.TopMargin)
	case PhaseResizingRight:
		r.Width = max(r.Width+d.X, floor(lim.MinWidth, s.Frame.Width))
	case PhaseResizingLeft:
		// The right boundary stays anchored.
		dx := min(d.X, s.Frame.Width-floor(lim.MinWidth, s.Frame.Width))
		r.X += dx
		r.Width -= dx
	case PhaseResizingBottom:
		r.Height = max(r.Height+d.Y, floor(lim.MinHeight, s.Frame.Height))
	}
	return r, true
}

// floor is the smallest size a resize may produce. A frame that started
// below the minimum may not shrink further but is not forced to grow.
func floor(minimum, start int) int {
	return max(min(minimum, start), 1)
}

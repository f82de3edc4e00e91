// Package decor describes the windows that make up a framed client and
// derives every decoration's geometry from the frame size alone.
package decor

import (
	"fmt"

	"github.com/1broseidon/framewm/internal/platform"
)

// Role classifies which part of a client a window id refers to.
//
// The declaration order is the lookup priority order: when one id is
// offered for more than one role, the earlier role wins.
type Role int

const (
	RoleApplication Role = iota
	RoleFrame
	RoleTitle
	RoleLeft
	RoleRight
	RoleBottom
	RoleCornerLeft
	RoleCornerRight

	// NumRoles is the number of distinct roles.
	NumRoles
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case RoleApplication:
		return "application"
	case RoleFrame:
		return "frame"
	case RoleTitle:
		return "title"
	case RoleLeft:
		return "left"
	case RoleRight:
		return "right"
	case RoleBottom:
		return "bottom"
	case RoleCornerLeft:
		return "corner-left"
	case RoleCornerRight:
		return "corner-right"
	default:
		return "unknown"
	}
}

// IsDecoration reports whether the role names a manager-drawn sub-window.
func (r Role) IsDecoration() bool {
	return r >= RoleTitle && r < NumRoles
}

// IsCorner reports whether the role names one of the corner handles.
func (r Role) IsCorner() bool {
	return r == RoleCornerLeft || r == RoleCornerRight
}

// Metrics holds the fixed decoration sizes.
type Metrics struct {
	TitleHeight int
	EdgeWidth   int
	CornerWidth int
	Corners     bool
}

// Piece is one decoration window's geometry relative to its frame.
type Piece struct {
	Role Role
	Rect platform.Rect
}

// Validate rejects metrics that cannot produce a usable frame.
func (m Metrics) Validate() error {
	if m.TitleHeight <= 0 {
		return fmt.Errorf("title height must be positive, got %d", m.TitleHeight)
	}
	if m.EdgeWidth <= 0 {
		return fmt.Errorf("edge width must be positive, got %d", m.EdgeWidth)
	}
	if m.Corners && m.CornerWidth <= 0 {
		return fmt.Errorf("corner width must be positive when corners are enabled, got %d", m.CornerWidth)
	}
	return nil
}

// Roles lists the decoration roles these metrics produce, in priority order.
func (m Metrics) Roles() []Role {
	roles := []Role{RoleTitle, RoleLeft, RoleRight, RoleBottom}
	if m.Corners {
		roles = append(roles, RoleCornerLeft, RoleCornerRight)
	}
	return roles
}

// inset is the horizontal room reserved at each end of the bottom edge, and
// the vertical room reserved under the side edges.
func (m Metrics) inset() int {
	if m.Corners && m.CornerWidth > m.EdgeWidth {
		return m.CornerWidth
	}
	return m.EdgeWidth
}

func (m Metrics) cornerHeight() int {
	if !m.Corners {
		return 0
	}
	return m.inset()
}

// MinSize is the smallest frame every decoration still fits in with a
// non-empty extent.
func (m Metrics) MinSize() (width, height int) {
	return 2*m.inset() + 1, m.TitleHeight + m.inset() + 1
}

// Clamp grows r to at least the minimum frame size, keeping its origin.
func (m Metrics) Clamp(r platform.Rect) platform.Rect {
	minW, minH := m.MinSize()
	r.Width = max(r.Width, minW)
	r.Height = max(r.Height, minH)
	return r
}

// Client returns the application window's geometry inside a frame of the
// given size: everything below the title strip.
func (m Metrics) Client(width, height int) platform.Rect {
	return platform.Rect{X: 0, Y: m.TitleHeight, Width: width, Height: max(height-m.TitleHeight, 1)}
}

// Layout computes every decoration's geometry for a frame of the given size.
func (m Metrics) Layout(width, height int) []Piece {
	th, e := m.TitleHeight, m.EdgeWidth
	in, ch := m.inset(), m.cornerHeight()
	sideH := max(height-th-ch, 1)

	pieces := []Piece{
		{Role: RoleTitle, Rect: platform.Rect{X: 0, Y: 0, Width: width, Height: th}},
		{Role: RoleLeft, Rect: platform.Rect{X: 0, Y: th, Width: e, Height: sideH}},
		{Role: RoleRight, Rect: platform.Rect{X: width - e, Y: th, Width: e, Height: sideH}},
		{Role: RoleBottom, Rect: platform.Rect{X: in, Y: height - e, Width: max(width-2*in, 1), Height: e}},
	}
	if m.Corners {
		c := m.inset()
		pieces = append(pieces,
			Piece{Role: RoleCornerLeft, Rect: platform.Rect{X: 0, Y: height - c, Width: c, Height: c}},
			Piece{Role: RoleCornerRight, Rect: platform.Rect{X: width - c, Y: height - c, Width: c, Height: c}},
		)
	}
	return pieces
}

// Extents reports the decoration thickness on each side of the application
// window, as advertised through _NET_FRAME_EXTENTS.
func (m Metrics) Extents() (left, right, top, bottom int) {
	return 0, 0, m.TitleHeight, 0
}

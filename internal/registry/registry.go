// Package registry owns every managed client and resolves any window id the
// manager observes to the client that owns it and the role it plays there.
package registry

import (
	"errors"
	"fmt"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/interaction"
	"github.com/1broseidon/framewm/internal/platform"
)

var (
	// ErrWindowOwned is returned when a client claims an id another client owns.
	ErrWindowOwned = errors.New("window already owned by another client")
	// ErrUnknownHandle is returned for handles that were never issued or were removed.
	ErrUnknownHandle = errors.New("unknown client handle")
	// ErrInvalidClient is returned for clients missing their application or frame window.
	ErrInvalidClient = errors.New("invalid client")
)

// Handle is a stable reference to a registered client. The zero Handle is
// never issued.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("client#%d.%d", h.index, h.gen)
}

// Client is one managed application window together with its frame and
// decorations.
type Client struct {
	// Windows holds the id of each part, indexed by role. Zero means absent.
	Windows [decor.NumRoles]platform.WindowID
	// Geometry is the frame's last known position and size.
	Geometry platform.Rect
	// Title is the application's window name captured at framing.
	Title string
	// Interaction tracks an in-progress drag or resize.
	Interaction interaction.State
}

// App returns the application window id.
func (c *Client) App() platform.WindowID { return c.Windows[decor.RoleApplication] }

// Frame returns the frame window id.
func (c *Client) Frame() platform.WindowID { return c.Windows[decor.RoleFrame] }

// Window returns the id that plays role r, or zero.
func (c *Client) Window(r decor.Role) platform.WindowID {
	if r < 0 || r >= decor.NumRoles {
		return 0
	}
	return c.Windows[r]
}

type slot struct {
	client *Client
	gen    uint32
}

type owner struct {
	handle Handle
	role   decor.Role
}

// Registry is an arena of clients plus a reverse index from every owned
// window id to its (handle, role). It is not safe for concurrent use.
type Registry struct {
	slots []slot
	free  []uint32
	order []Handle // most recently added first
	index map[platform.WindowID]owner
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		index: make(map[platform.WindowID]owner),
	}
}

// Len returns the number of registered clients.
func (r *Registry) Len() int {
	return len(r.order)
}

// Add registers c at the head of the insertion order.
//
// Every non-zero id of c is indexed. When c offers the same id for two roles
// the higher-priority role is kept. Ids already owned by another client are
// rejected with ErrWindowOwned and nothing is registered.
func (r *Registry) Add(c *Client) (Handle, error) {
	if c == nil || c.App() == 0 || c.Frame() == 0 {
		return Handle{}, ErrInvalidClient
	}
	if c.App() == c.Frame() {
		return Handle{}, fmt.Errorf("%w: frame and application share id %d", ErrInvalidClient, c.App())
	}
	for role, id := range c.Windows {
		if id == 0 {
			continue
		}
		if o, ok := r.index[id]; ok {
			return Handle{}, fmt.Errorf("%w: id %d (%s of %s)", ErrWindowOwned, id, decor.Role(role), o.handle)
		}
	}

	var h Handle
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		h = Handle{index: idx, gen: r.slots[idx].gen}
		r.slots[idx].client = c
	} else {
		h = Handle{index: uint32(len(r.slots)), gen: 1}
		r.slots = append(r.slots, slot{client: c, gen: 1})
	}

	for role, id := range c.Windows {
		if id == 0 {
			continue
		}
		if _, taken := r.index[id]; taken {
			continue
		}
		r.index[id] = owner{handle: h, role: decor.Role(role)}
	}

	r.order = append([]Handle{h}, r.order...)
	return h, nil
}

// Remove unregisters the client behind h and returns it. Every id it owned
// stops resolving and h becomes stale.
func (r *Registry) Remove(h Handle) (*Client, error) {
	c, ok := r.Get(h)
	if !ok {
		return nil, ErrUnknownHandle
	}

	for _, id := range c.Windows {
		if o, ok := r.index[id]; ok && o.handle == h {
			delete(r.index, id)
		}
	}
	for i, oh := range r.order {
		if oh == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	s := &r.slots[h.index]
	s.client = nil
	s.gen++
	r.free = append(r.free, h.index)
	return c, nil
}

// Get returns the client behind h if h is still valid.
func (r *Registry) Get(h Handle) (*Client, bool) {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil, false
	}
	s := r.slots[h.index]
	if s.gen != h.gen || s.client == nil {
		return nil, false
	}
	return s.client, true
}

// Lookup resolves a window id to its owning client and role.
func (r *Registry) Lookup(id platform.WindowID) (Handle, decor.Role, bool) {
	if id == 0 {
		return Handle{}, 0, false
	}
	o, ok := r.index[id]
	if !ok {
		return Handle{}, 0, false
	}
	return o.handle, o.role, true
}

// Next returns the client after h in insertion order, wrapping from the last
// entry back to the first.
func (r *Registry) Next(h Handle) (Handle, bool) {
	for i, oh := range r.order {
		if oh == h {
			return r.order[(i+1)%len(r.order)], true
		}
	}
	return Handle{}, false
}

// Handles returns every handle in insertion order, most recent first.
func (r *Registry) Handles() []Handle {
	out := make([]Handle, len(r.order))
	copy(out, r.order)
	return out
}

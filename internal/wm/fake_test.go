package wm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/hotkeys"
	"github.com/1broseidon/framewm/internal/platform"
)

type fakeWindow struct {
	parent    platform.WindowID
	rect      platform.Rect
	mapped    bool
	override  bool
	protocols []string
	title     string
}

// fakeDisplay is an in-memory window tree that records every request.
type fakeDisplay struct {
	root    platform.WindowID
	nextID  platform.WindowID
	windows map[platform.WindowID]*fakeWindow
	order   []platform.WindowID

	calls   []string
	events  []any // Event or error
	saveSet map[platform.WindowID]bool

	becomeErr      error
	failCreateAt   int // fail the n-th CreateWindow (1-based), 0 = never
	createCount    int
	pointerGrab    platform.WindowID
	focused        platform.WindowID
	raised         []platform.WindowID
	deleted        []platform.WindowID
	killed         []platform.WindowID
	cursors        map[platform.WindowID]decor.Role
	keyGrabs       map[platform.WindowID][]string
	published      [][]platform.WindowID
	configured     []ConfigureRequest
	serverGrabbed  bool
	refreshIgnored uint16
	woken          int
}

func newFakeDisplay() *fakeDisplay {
	d := &fakeDisplay{
		root:     1,
		nextID:   1000,
		windows:  make(map[platform.WindowID]*fakeWindow),
		saveSet:  make(map[platform.WindowID]bool),
		cursors:  make(map[platform.WindowID]decor.Role),
		keyGrabs: make(map[platform.WindowID][]string),
	}
	d.windows[d.root] = &fakeWindow{rect: platform.Rect{Width: 1920, Height: 1080}, mapped: true}
	return d
}

// addClientWindow creates an application-owned top-level window.
func (d *fakeDisplay) addClientWindow(id platform.WindowID, r platform.Rect, mapped bool) *fakeWindow {
	w := &fakeWindow{parent: d.root, rect: r, mapped: mapped}
	d.windows[id] = w
	d.order = append(d.order, id)
	return w
}

func (d *fakeDisplay) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

// matchCall reports whether call is want or starts with want followed by
// more arguments.
func matchCall(call, want string) bool {
	return call == want || strings.HasPrefix(call, want+" ")
}

func (d *fakeDisplay) callIndex(want string) int {
	for i, c := range d.calls {
		if matchCall(c, want) {
			return i
		}
	}
	return -1
}

func (d *fakeDisplay) countCalls(want string) int {
	n := 0
	for _, c := range d.calls {
		if matchCall(c, want) {
			n++
		}
	}
	return n
}

func (d *fakeDisplay) childrenOf(parent platform.WindowID) []platform.WindowID {
	var out []platform.WindowID
	for _, id := range d.order {
		if w, ok := d.windows[id]; ok && w.parent == parent {
			out = append(out, id)
		}
	}
	return out
}

func (d *fakeDisplay) get(w platform.WindowID) (*fakeWindow, error) {
	fw, ok := d.windows[w]
	if !ok {
		return nil, fmt.Errorf("BadWindow %d", w)
	}
	return fw, nil
}

func (d *fakeDisplay) Root() platform.WindowID { return d.root }

func (d *fakeDisplay) BecomeManager() error {
	d.record("BecomeManager")
	return d.becomeErr
}

func (d *fakeDisplay) GrabServer() error {
	d.record("GrabServer")
	d.serverGrabbed = true
	return nil
}

func (d *fakeDisplay) UngrabServer() error {
	d.record("UngrabServer")
	d.serverGrabbed = false
	return nil
}

func (d *fakeDisplay) Children(w platform.WindowID) ([]platform.WindowID, error) {
	if _, err := d.get(w); err != nil {
		return nil, err
	}
	return d.childrenOf(w), nil
}

func (d *fakeDisplay) Attributes(w platform.WindowID) (Attributes, error) {
	fw, err := d.get(w)
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{Geometry: fw.rect, OverrideRedirect: fw.override, Viewable: fw.mapped}, nil
}

func (d *fakeDisplay) Title(w platform.WindowID) string {
	if fw, ok := d.windows[w]; ok {
		return fw.title
	}
	return ""
}

func (d *fakeDisplay) Protocols(w platform.WindowID) ([]string, error) {
	fw, err := d.get(w)
	if err != nil {
		return nil, err
	}
	return fw.protocols, nil
}

func (d *fakeDisplay) CreateWindow(parent platform.WindowID, r platform.Rect, color uint32) (platform.WindowID, error) {
	d.createCount++
	if d.failCreateAt != 0 && d.createCount == d.failCreateAt {
		return 0, errors.New("BadAlloc")
	}
	if _, err := d.get(parent); err != nil {
		return 0, err
	}
	d.nextID++
	id := d.nextID
	d.windows[id] = &fakeWindow{parent: parent, rect: r}
	d.order = append(d.order, id)
	d.record("CreateWindow %d parent=%d", id, parent)
	return id, nil
}

func (d *fakeDisplay) SelectFrameInput(w platform.WindowID) error {
	d.record("SelectFrameInput %d", w)
	return nil
}

func (d *fakeDisplay) SelectDecorationInput(w platform.WindowID) error {
	d.record("SelectDecorationInput %d", w)
	return nil
}

func (d *fakeDisplay) AddToSaveSet(w platform.WindowID) error {
	d.record("AddToSaveSet %d", w)
	if _, err := d.get(w); err != nil {
		return err
	}
	d.saveSet[w] = true
	return nil
}

func (d *fakeDisplay) RemoveFromSaveSet(w platform.WindowID) error {
	d.record("RemoveFromSaveSet %d", w)
	delete(d.saveSet, w)
	return nil
}

func (d *fakeDisplay) Reparent(w, parent platform.WindowID, at platform.Point) error {
	d.record("Reparent %d parent=%d", w, parent)
	fw, err := d.get(w)
	if err != nil {
		return err
	}
	fw.parent = parent
	fw.rect.X, fw.rect.Y = at.X, at.Y
	return nil
}

func (d *fakeDisplay) Map(w platform.WindowID) error {
	d.record("Map %d", w)
	fw, err := d.get(w)
	if err != nil {
		return err
	}
	fw.mapped = true
	return nil
}

func (d *fakeDisplay) Unmap(w platform.WindowID) error {
	d.record("Unmap %d", w)
	fw, err := d.get(w)
	if err != nil {
		return err
	}
	fw.mapped = false
	return nil
}

func (d *fakeDisplay) Destroy(w platform.WindowID) error {
	d.record("Destroy %d", w)
	if _, err := d.get(w); err != nil {
		return err
	}
	for _, child := range d.childrenOf(w) {
		d.Destroy(child)
	}
	delete(d.windows, w)
	return nil
}

func (d *fakeDisplay) MoveResize(w platform.WindowID, r platform.Rect) error {
	d.record("MoveResize %d", w)
	fw, err := d.get(w)
	if err != nil {
		return err
	}
	fw.rect = r
	return nil
}

func (d *fakeDisplay) Configure(req ConfigureRequest) error {
	d.record("Configure %d", req.Window)
	d.configured = append(d.configured, req)
	return nil
}

func (d *fakeDisplay) Raise(w platform.WindowID) error {
	d.record("Raise %d", w)
	d.raised = append(d.raised, w)
	return nil
}

func (d *fakeDisplay) Focus(w platform.WindowID) error {
	d.record("Focus %d", w)
	d.focused = w
	return nil
}

func (d *fakeDisplay) GrabButton(w platform.WindowID) error {
	d.record("GrabButton %d", w)
	return nil
}

func (d *fakeDisplay) GrabPointer(w platform.WindowID) error {
	d.record("GrabPointer %d", w)
	d.pointerGrab = w
	return nil
}

func (d *fakeDisplay) UngrabPointer() error {
	d.record("UngrabPointer")
	d.pointerGrab = 0
	return nil
}

func (d *fakeDisplay) GrabKey(w platform.WindowID, b hotkeys.Binding) error {
	d.record("GrabKey %d %s", w, b.Sequence)
	d.keyGrabs[w] = append(d.keyGrabs[w], b.Sequence)
	return nil
}

func (d *fakeDisplay) RefreshKeyboard() (uint16, error) {
	d.record("RefreshKeyboard")
	return d.refreshIgnored, nil
}

func (d *fakeDisplay) SetCursor(w platform.WindowID, role decor.Role) error {
	d.record("SetCursor %d %s", w, role)
	d.cursors[w] = role
	return nil
}

func (d *fakeDisplay) SendDelete(w platform.WindowID) error {
	d.record("SendDelete %d", w)
	d.deleted = append(d.deleted, w)
	return nil
}

func (d *fakeDisplay) Kill(w platform.WindowID) error {
	d.record("Kill %d", w)
	d.killed = append(d.killed, w)
	return nil
}

func (d *fakeDisplay) MarkManaged(w platform.WindowID, m decor.Metrics) error {
	d.record("MarkManaged %d", w)
	return nil
}

func (d *fakeDisplay) PublishClients(ws []platform.WindowID) error {
	d.record("PublishClients")
	d.published = append(d.published, append([]platform.WindowID(nil), ws...))
	return nil
}

// NextEvent replays the scripted events, then reports a closed connection.
func (d *fakeDisplay) NextEvent() (Event, error) {
	if len(d.events) == 0 {
		return nil, ErrConnectionClosed
	}
	next := d.events[0]
	d.events = d.events[1:]
	if err, ok := next.(error); ok {
		return nil, err
	}
	return next.(Event), nil
}

func (d *fakeDisplay) Wake() error {
	d.woken++
	d.events = append(d.events, Wakeup{})
	return nil
}

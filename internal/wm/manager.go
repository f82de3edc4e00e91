// Package wm is the window-management engine: it frames top-level windows,
// classifies every incoming event against the client registry and drives
// drags, resizes, focus and the fixed key bindings.
package wm

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/hotkeys"
	"github.com/1broseidon/framewm/internal/interaction"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/registry"
)

// InitStatus is the outcome of starting the manager.
type InitStatus int

const (
	InitSuccess InitStatus = iota
	InitAlreadyRunning
	InitConnectionFailed
)

// String returns the string representation of the status
func (s InitStatus) String() string {
	switch s {
	case InitSuccess:
		return "success"
	case InitAlreadyRunning:
		return "already-running"
	case InitConnectionFailed:
		return "connection-failed"
	default:
		return "unknown"
	}
}

// Colors holds the background pixel of each window kind.
type Colors struct {
	Frame  uint32
	Title  uint32
	Edge   uint32
	Corner uint32
}

func (c Colors) forRole(r decor.Role) uint32 {
	switch {
	case r == decor.RoleTitle:
		return c.Title
	case r.IsCorner():
		return c.Corner
	case r.IsDecoration():
		return c.Edge
	default:
		return c.Frame
	}
}

// Options configures a Manager.
type Options struct {
	Metrics  decor.Metrics
	Limits   interaction.Limits
	Colors   Colors
	Keys     *hotkeys.Table
	Terminal []string
	Logger   *slog.Logger
	// Spawn starts argv without waiting for it. Defaults to SpawnProcess.
	Spawn func(argv []string) error
}

// Manager owns the client registry and the event loop. All methods except
// RequestExit and Status must be called from the goroutine running Run.
type Manager struct {
	display Display
	opts    Options
	log     *slog.Logger
	reg     *registry.Registry
	root    platform.WindowID

	focused     platform.WindowID
	listChanged bool

	exit    atomic.Bool
	status  atomic.Pointer[Status]
	started time.Time
}

// New creates a manager over an open display.
func New(d Display, opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Spawn == nil {
		opts.Spawn = SpawnProcess
	}
	if opts.Keys == nil {
		opts.Keys = &hotkeys.Table{}
	}
	m := &Manager{
		display: d,
		opts:    opts,
		log:     opts.Logger,
		reg:     registry.New(),
		root:    d.Root(),
		started: time.Now(),
	}
	m.publish()
	return m
}

// Start opens the display and claims it. The status tells a caller which
// failure, if any, occurred; the manager is nil unless the status is
// InitSuccess.
func Start(open func() (Display, error), opts Options) (*Manager, InitStatus, error) {
	d, err := open()
	if err != nil {
		return nil, InitConnectionFailed, fmt.Errorf("failed to open display: %w", err)
	}
	m := New(d, opts)
	status, err := m.Init()
	if status != InitSuccess {
		return nil, status, err
	}
	return m, status, nil
}

// Init claims substructure redirection on the root window and grabs the
// root-scoped key bindings.
func (m *Manager) Init() (InitStatus, error) {
	if err := m.display.BecomeManager(); err != nil {
		if errors.Is(err, ErrAnotherManager) {
			return InitAlreadyRunning, err
		}
		// Only an access conflict fails the probe.
		m.log.Warn("manager probe reported an error", "error", err)
	}
	m.grabRootKeys()
	m.log.Info("window manager initialized", "root", m.root)
	return InitSuccess, nil
}

// RequestExit stops Run after the event being handled. It is safe to call
// from any goroutine.
func (m *Manager) RequestExit() {
	if m.exit.Swap(true) {
		return
	}
	if err := m.display.Wake(); err != nil {
		m.log.Warn("failed to wake event loop", "error", err)
	}
}

// Run frames the windows that already exist and then handles events until
// RequestExit is called or the connection closes.
func (m *Manager) Run() error {
	m.adoptExisting()

	for !m.exit.Load() {
		ev, err := m.display.NextEvent()
		if err != nil {
			if errors.Is(err, ErrConnectionClosed) {
				return err
			}
			// Errors from racing clients are expected once running.
			m.log.Debug("protocol error ignored", "error", err)
			continue
		}
		m.handle(ev)
		m.publish()
	}
	m.log.Info("event loop stopped")
	return nil
}

// adoptExisting frames every manageable top-level window under a server
// grab so none can change state halfway.
func (m *Manager) adoptExisting() {
	if err := m.display.GrabServer(); err != nil {
		m.log.Warn("failed to grab server", "error", err)
	}
	defer func() {
		if err := m.display.UngrabServer(); err != nil {
			m.log.Warn("failed to ungrab server", "error", err)
		}
		m.publish()
	}()

	children, err := m.display.Children(m.root)
	if err != nil {
		m.log.Error("failed to list existing windows", "error", err)
		return
	}
	for _, w := range children {
		if err := m.frame(w, true); err != nil {
			m.log.Info("existing window not framed", "window", w, "error", err)
		}
	}
	m.log.Info("adopted existing windows", "clients", m.reg.Len())
}

// SpawnProcess starts argv in its own session and reaps it in the
// background.
func SpawnProcess(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

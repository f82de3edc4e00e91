package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/wm"
)

// Manager is the part of the window manager the server reports on and
// controls. Both methods must be safe to call from any goroutine.
type Manager interface {
	Status() wm.Status
	RequestExit()
}

// ScreenSource reports the display's outputs.
type ScreenSource interface {
	Screens() ([]platform.Screen, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	manager      Manager
	screens      ScreenSource
	log          *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server bound to socketPath once started.
// screens may be nil, in which case GET_SCREENS reports an error.
func NewServer(socketPath string, manager Manager, screens ScreenSource, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		manager:    manager,
		screens:    screens,
		log:        log,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.socketPath)

	// Accept connections
	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.log.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(5 * time.Second))
	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Warn("IPC read error", "error", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	s.log.Debug("IPC request", "command", req.Command)
	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.log.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.log.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListClients:
		return s.handleListClients()
	case CommandGetScreens:
		return s.handleGetScreens()
	case CommandQuit:
		return s.handleQuit()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	st := s.manager.Status()
	resp, _ := NewOKResponse(StatusData{
		PID:           os.Getpid(),
		UptimeSeconds: int64(time.Since(st.Started).Seconds()),
		ClientCount:   len(st.Clients),
		Focused:       uint32(st.Focused),
		Running:       true,
	})
	return resp
}

func (s *Server) handleListClients() *Response {
	st := s.manager.Status()
	clients := make([]ClientInfo, 0, len(st.Clients))
	for _, c := range st.Clients {
		clients = append(clients, ClientInfo{
			Window:      uint32(c.Window),
			Frame:       uint32(c.Frame),
			Title:       c.Title,
			X:           c.Geometry.X,
			Y:           c.Geometry.Y,
			Width:       c.Geometry.Width,
			Height:      c.Geometry.Height,
			Focused:     c.Focused,
			Interaction: c.Phase,
		})
	}
	resp, _ := NewOKResponse(ClientsData{Clients: clients})
	return resp
}

func (s *Server) handleGetScreens() *Response {
	if s.screens == nil {
		return NewErrorResponse("screen information unavailable")
	}
	screens, err := s.screens.Screens()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get screens: %v", err))
	}

	infos := make([]ScreenInfo, len(screens))
	for i, sc := range screens {
		infos[i] = ScreenInfo{
			ID:     sc.ID,
			Name:   sc.Name,
			X:      sc.Bounds.X,
			Y:      sc.Bounds.Y,
			Width:  sc.Bounds.Width,
			Height: sc.Bounds.Height,
		}
	}
	resp, _ := NewOKResponse(ScreensData{Screens: infos})
	return resp
}

func (s *Server) handleQuit() *Response {
	s.log.Info("exit requested over IPC")
	s.manager.RequestExit()
	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	os.Remove(s.socketPath)
}

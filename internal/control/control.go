package control

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"layoutswitchd/internal/config"
	"layoutswitchd/internal/logging"
)

// RequestTimeout bounds how long the server waits to read and respond
// to a single request line (§5: "1 s per-request timeout").
const RequestTimeout = time.Second

// SocketPerm is the Unix-domain socket file's permission bits (§6).
const SocketPerm = 0666

// Server is the control-plane IPC endpoint: a line-protocol server
// over a Unix-domain socket. It writes SharedState on SET_STATUS and
// RELOAD; the config file watcher set up in main also publishes to the
// same SharedState.
type Server struct {
	path        string
	shared      *SharedState
	searchPaths []string
	log         *logging.Logger

	listener net.Listener
}

// NewServer builds a Server listening at path once Serve is called.
// searchPaths is the default config lookup order RELOAD falls back to
// when invoked with no argument.
func NewServer(path string, shared *SharedState, searchPaths []string, log *logging.Logger) *Server {
	return &Server{path: path, shared: shared, searchPaths: searchPaths, log: log}
}

// Listen creates the Unix-domain socket file with world read/write
// permissions. The caller is responsible for calling Close (or letting
// process exit handling call it) so the socket file is removed.
func (s *Server) Listen() error {
	_ = os.Remove(s.path)
	l, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("control: listen %s: %w", s.path, err)
	}
	if err := os.Chmod(s.path, SocketPerm); err != nil {
		l.Close()
		return fmt.Errorf("control: chmod %s: %w", s.path, err)
	}
	s.listener = l
	return nil
}

// Close removes the socket file and stops accepting connections.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	_ = os.Remove(s.path)
	return err
}

// Serve runs the accept loop until the listener is closed. It is
// meant to run on its own goroutine, supervised the way main wires the
// router goroutine.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if strings.Contains(err.Error(), "use of closed network connection") {
				return nil
			}
			return err
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	reqID := uuid.NewString()
	conn.SetDeadline(time.Now().Add(RequestTimeout))

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	line = strings.TrimRight(line, "\r\n")

	reply := s.dispatch(line, reqID)
	conn.Write([]byte(reply + "\n"))
}

func (s *Server) dispatch(line, reqID string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "ERROR Empty command"
	}

	cmd := strings.ToUpper(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "GET_STATUS":
		return s.handleGetStatus()
	case "SET_STATUS":
		return s.handleSetStatus(arg)
	case "RELOAD":
		return s.handleReload(arg, reqID)
	case "SHUTDOWN":
		return "ERROR Shutdown not allowed via IPC"
	default:
		return fmt.Sprintf("ERROR Unknown command %q", fields[0])
	}
}

func (s *Server) handleGetStatus() string {
	if s.shared.Enabled() {
		return "OK ENABLED"
	}
	return "OK DISABLED"
}

func (s *Server) handleSetStatus(arg string) string {
	enabled, ok := parseBool(arg)
	if !ok {
		return fmt.Sprintf("ERROR Invalid SET_STATUS argument %q", arg)
	}
	s.shared.SetEnabled(enabled)
	if enabled {
		return "OK ENABLED"
	}
	return "OK DISABLED"
}

func (s *Server) handleReload(path, reqID string) string {
	snap, result := config.Reload(path, s.searchPaths)
	if !result.Success {
		if s.log != nil {
			s.log.Warn("control", "[%s] reload failed: %s", reqID, result.Message)
		}
		return "ERROR " + result.Message
	}
	s.shared.Publish(snap)
	if s.log != nil {
		s.log.Info("control", "[%s] %s", reqID, result.Message)
	}
	return "OK " + result.Message
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "1", "on", "true":
		return true, true
	case "0", "off", "false":
		return false, true
	default:
		return false, false
	}
}

package localserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/yndnr/kernbench-go/internal/server/httpserver"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

// ErrSocketInUse is returned when another server is accepting on the path.
var ErrSocketInUse = errors.New("socket in use")

// Server serves an HTTP handler on a Unix socket.
type Server struct {
	path   string
	http   *httpserver.Server
	logger logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a server for socketPath.
func New(socketPath string, h http.Handler, l logger.Logger) *Server {
	if l == nil {
		l = logger.Default()
	}
	return &Server{
		path:   socketPath,
		http:   httpserver.New(httpserver.Config{Addr: socketPath}, h, l),
		logger: l.With("component", "localserver"),
	}
}

// Listen binds the socket. A stale socket left by a crashed server is
// removed; a live one yields ErrSocketInUse.
func (s *Server) Listen() error {
	if err := removeStale(s.path); err != nil {
		return err
	}
	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return err
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		ln.Close()
		return fmt.Errorf("chmod socket: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return nil
}

// Serve accepts connections until Shutdown. Listen must have succeeded.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return errors.New("localserver: Serve called before Listen")
	}
	return s.http.Serve(ln)
}

// ListenAndServe binds the socket and serves until Shutdown.
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown drains active requests and removes the socket file.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if rerr := os.Remove(s.path); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
		s.logger.Warn("failed to remove socket", "path", s.path, "error", rerr)
	}
	return err
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

func removeStale(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&fs.ModeSocket == 0 {
		return fmt.Errorf("%s exists and is not a socket", path)
	}
	if conn, err := net.Dial("unix", path); err == nil {
		conn.Close()
		return fmt.Errorf("%w: %s", ErrSocketInUse, path)
	}
	return os.Remove(path)
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"feesheet/internal/api"
	"feesheet/internal/config"
	"feesheet/internal/logging"
	"feesheet/internal/note"
	"feesheet/internal/session"
)

// LockFileName is created in the log directory while a server runs.
const LockFileName = "feesheet.lock"

// Options carries optional collaborators.
type Options struct {
	RunID string
	Now   func() time.Time
	Store *session.Store
}

// Server hosts the page and the sheet API.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *session.Store
	page   *template.Template
	runID  string
	now    func() time.Time

	lockPath string
	lock     *flock.Flock

	handler  http.Handler
	http     *http.Server
	listener net.Listener

	mu        sync.Mutex
	addr      string
	startedAt time.Time
	running   atomic.Bool
	stopMu    sync.Mutex
}

// Status summarizes the server for the status endpoint.
type Status struct {
	Running      bool
	PID          int
	Bind         string
	RunID        string
	StartedAt    time.Time
	Sheets       int
	LockFilePath string
}

// New constructs a server. It does not listen until Start.
func New(cfg *config.Config, logger *slog.Logger, opts Options) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	page, err := parsePage()
	if err != nil {
		return nil, err
	}
	store := opts.Store
	if store == nil {
		store = session.NewStore(session.Options{
			InitialRows: cfg.Sheet.InitialRows,
			MaxIdle:     cfg.MaxIdle(),
			MaxSheets:   cfg.Sheet.MaxSheets,
			Logger:      logger,
			Now:         now,
		})
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, LockFileName)
	s := &Server{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "server"),
		store:    store,
		page:     page,
		runID:    opts.RunID,
		now:      now,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	s.handler = s.withRequestID(s.routes())
	s.http = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start acquires the instance lock and begins serving. The server shuts down
// when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return errors.New("server already running")
	}
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another feesheet server is already running (lock %s)", s.lockPath)
	}

	bind := strings.TrimSpace(s.cfg.Server.Bind)
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("listen on %s: %w", bind, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.addr = listener.Addr().String()
	s.startedAt = s.now()
	s.mu.Unlock()
	s.running.Store(true)

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(s.logger, "http server error", "server_error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("feesheet server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", s.lockPath),
		logging.String(logging.FieldEventType, "server_started"),
	)
	return nil
}

// Stop shuts the listener down and releases the instance lock. Concurrent
// callers return once the lock is released.
func (s *Server) Stop() {
	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("http shutdown incomplete", logging.Error(err))
	}
	s.mu.Lock()
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	s.mu.Unlock()
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release server lock", logging.Error(err))
	}
	s.logger.Info("feesheet server stopped", logging.String(logging.FieldEventType, "server_stopped"))
}

// Addr returns the address of the most recent listener, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Status reports the current runtime state.
func (s *Server) Status() Status {
	s.mu.Lock()
	started := s.startedAt
	bind := s.cfg.Server.Bind
	if s.addr != "" {
		bind = s.addr
	}
	s.mu.Unlock()
	return Status{
		Running:      s.running.Load(),
		PID:          os.Getpid(),
		Bind:         bind,
		RunID:        s.runID,
		StartedAt:    started,
		Sheets:       s.store.Len(),
		LockFilePath: s.lockPath,
	}
}

func (s *Server) exportFilename() string {
	if name := strings.TrimSpace(s.cfg.Sheet.ExportFilename); name != "" {
		return name
	}
	return note.Filename
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *Server) requestLogger(r *http.Request) *slog.Logger {
	return logging.WithContext(r.Context(), s.logger)
}

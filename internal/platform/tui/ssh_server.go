package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/kinderwordle/internal/config"
	"github.com/vovakirdan/kinderwordle/internal/core"
	"github.com/vovakirdan/kinderwordle/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.kinderwordle/host_key.
	HostKeyPath string

	// DBPath is the path to the game database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// RatePerSecond and Burst bound new sessions per remote host.
	// A RatePerSecond of 0 disables the limit.
	RatePerSecond int
	Burst         int

	// Game holds the rules every session plays by.
	Game config.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:       ":23234",
		DBPath:        storage.DefaultPath,
		IdleTimeout:   30 * time.Minute,
		RatePerSecond: 1,
		Burst:         5,
		Game:          config.Default(),
	}
}

// SSHServer wraps a Wish SSH server that gives every session its own game.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	limiter  *hostLimiter
	logger   *log.Logger
	sessions SessionStore
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "kinderwordle-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open game database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		limiter: newHostLimiter(cfg.RatePerSecond, cfg.Burst),
		logger:  logger,
	}
	if store != nil {
		srv.sessions = store
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".kinderwordle", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run from last to first: log, then limit, then play.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.rateLimitMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// SessionNamespace is the storage namespace of an SSH user.
func SessionNamespace(user string) string {
	return "ssh:" + user
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "Kinderwordle needs an interactive terminal (ssh -t).")
		return nil, nil
	}

	sessionID := uuid.NewString()
	model := NewSessionModel(s.sessions, SessionOptions{
		Game:      s.config.Game,
		Namespace: SessionNamespace(sshSession.User()),
		Renderer:  bubbletea.MakeRenderer(sshSession),
		Logger:    s.logger.With("session", sessionID, "user", sshSession.User()),
		Config: core.RuntimeConfig{
			ScreenW: pty.Window.Width,
			ScreenH: pty.Window.Height,
			Seed:    time.Now().UnixNano(),
		},
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// rateLimitMiddleware turns away hosts that open sessions too quickly.
func (s *SSHServer) rateLimitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		host := remoteHost(sshSession.RemoteAddr())
		if !s.limiter.allow(host) {
			s.logger.Warn("rate limited", "user", sshSession.User(), "remote", host)
			wish.Fatalln(sshSession, "Too many new sessions, try again in a moment.")
			return
		}
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

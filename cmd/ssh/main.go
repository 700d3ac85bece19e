package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/cobra"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	applog "github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop/client"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/score"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultShutdown    = 15 * time.Second
)

type options struct {
	host    string
	port    string
	hostKey string
	redis   string
	preset  string
	grace   time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "invaders-ssh",
		Short:        "Serve Space Invaders over SSH",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.host, "host", config.GetEnv("SSH_HOST", defaultHost), "address to listen on")
	flags.StringVar(&opts.port, "port", config.GetEnv("SSH_PORT", defaultPort), "port to listen on")
	flags.StringVar(&opts.hostKey, "host-key", config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath), "path to the SSH host key")
	flags.StringVar(&opts.redis, "redis", config.GetEnv("REDIS_ADDR", ""), "redis address for scores; empty disables saving")
	flags.StringVar(&opts.preset, "preset", config.GetEnv("INVADERS_PRESET", string(loopconfig.DefaultPreset)), "wave timing preset (fast or classic)")
	flags.DurationVar(&opts.grace, "shutdown-timeout", config.GetEnvDuration("INVADERS_SHUTDOWN_TIMEOUT", defaultShutdown), "how long players get to leave before the server stops")
	return cmd
}

func run(ctx context.Context, opts options) error {
	preset, err := loopconfig.ParsePreset(opts.preset)
	if err != nil {
		return err
	}

	logger, closer, err := applog.FromEnv(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closer.Close()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", opts.host, "port", opts.port, "hostKey", opts.hostKey,
		"workingDir", workingDir, "preset", preset)

	var store score.Store
	if opts.redis != "" {
		dialCtx, cancel := context.WithTimeout(ctx, loopconfig.StoreCallTimeout)
		rs, closeStore, err := score.Dial(dialCtx, opts.redis)
		cancel()
		if err != nil {
			return fmt.Errorf("score store: %w", err)
		}
		defer closeStore()
		store = rs
		logger.Info("score store connected", "addr", opts.redis)
	} else {
		logger.Warn("no redis configured, scores will not be saved")
	}

	// Shared by every SSH session.
	hub := server.NewServer(server.ConfigForStore(store, logger))
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	go hub.Run(hubCtx)
	logger.Info("game server started")

	games := &gameHandler{
		hub:    hub,
		assets: asset.NewProvider(nil, logger),
		tuning: loopconfig.Tunings(preset),
		logger: logger,
	}

	sshOpts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(opts.host, opts.port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger.WithPrefix("ssh")),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if opts.hostKey != "" {
		sshOpts = append(sshOpts, wish.WithHostKeyPath(opts.hostKey))
	}

	s, err := wish.NewServer(sshOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting ssh server", "addr", net.JoinHostPort(opts.host, opts.port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect; pending scores are
	// flushed before the hub stops.
	hub.Shutdown(opts.grace)
	cancelHub()
	logger.Info("game server stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// gameHandler runs one game client per SSH session.
type gameHandler struct {
	hub    *server.Server
	assets *asset.Provider
	tuning loopconfig.Tuning
	logger *log.Logger
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c := client.NewClient(g.hub, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Audio:        audio.Bell{W: sess},
			Assets:       g.assets,
			Tuning:       g.tuning,
			Logger:       logger,
		})
		if err := c.Run(sess.Context()); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

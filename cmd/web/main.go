package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/logging"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/score"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var pageTmpl = template.Must(template.New("index").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(htmlPage))

type options struct {
	host    string
	port    string
	sshHost string
	redis   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "invaders-web",
		Short:        "Serve the landing page and leaderboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.host, "host", config.GetEnv("WEB_HOST", defaultHost), "address to listen on")
	flags.StringVar(&opts.port, "port", config.GetEnv("WEB_PORT", defaultPort), "port to listen on")
	flags.StringVar(&opts.sshHost, "ssh-host", config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"), "SSH host shown on the page")
	flags.StringVar(&opts.redis, "redis", config.GetEnv("REDIS_ADDR", ""), "redis address for the leaderboard; empty hides it")
	return cmd
}

func run(ctx context.Context, opts options) error {
	logger, closer, err := logging.FromEnv(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closer.Close()

	var board score.Leaderboard
	if opts.redis != "" {
		dialCtx, cancel := context.WithTimeout(ctx, loopconfig.StoreCallTimeout)
		store, closeStore, err := score.Dial(dialCtx, opts.redis)
		cancel()
		if err != nil {
			return fmt.Errorf("score store: %w", err)
		}
		defer closeStore()
		board = store
	}

	addr := net.JoinHostPort(opts.host, opts.port)
	logger.Info("starting web server", "addr", "http://"+addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(opts.sshHost, board, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

type pageData struct {
	SSHHost     string
	Records     []score.Record
	Unavailable bool
	Enabled     bool
}

// newHandler serves the landing page at / and the leaderboard as JSON at
// /api/leaderboard. A nil board serves the page without a leaderboard.
func newHandler(sshHost string, board score.Leaderboard, logger *log.Logger) http.Handler {
	logger = logger.WithPrefix("web")

	top := func(r *http.Request) ([]score.Record, error) {
		ctx, cancel := context.WithTimeout(r.Context(), loopconfig.StoreCallTimeout)
		defer cancel()
		return board.Top(ctx, loopconfig.LeaderboardSize)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		data := pageData{SSHHost: sshHost, Enabled: board != nil}
		if board != nil {
			records, err := top(r)
			if err != nil {
				logger.Warn("leaderboard unavailable", "err", err)
				data.Unavailable = true
			}
			data.Records = records
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, data); err != nil {
			logger.Error("failed to render page", "err", err)
		}
	})
	mux.HandleFunc("GET /api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if board == nil {
			http.Error(w, "leaderboard disabled", http.StatusNotFound)
			return
		}
		records, err := top(r)
		if err != nil {
			logger.Warn("leaderboard unavailable", "err", err)
			http.Error(w, "leaderboard unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	})
	return mux
}

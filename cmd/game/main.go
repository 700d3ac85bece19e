package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop/client"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/score"
)

type options struct {
	preset string
	user   string
	redis  string
	audio  bool
	volume int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "invaders",
		Short:        "Play Space Invaders in this terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.preset, "preset", config.GetEnv("INVADERS_PRESET", string(loopconfig.DefaultPreset)), "wave timing preset (fast or classic)")
	flags.StringVar(&opts.user, "user", config.GetEnv("INVADERS_USER", os.Getenv("USER")), "name scores are saved under; empty plays anonymously")
	flags.StringVar(&opts.redis, "redis", config.GetEnv("REDIS_ADDR", ""), "redis address for scores; empty disables saving")
	flags.BoolVar(&opts.audio, "audio", config.GetEnvBool("INVADERS_AUDIO", true), "play sound effects")
	flags.IntVar(&opts.volume, "volume", config.GetEnvInt("INVADERS_VOLUME", 40), "sound volume in percent (0-100)")
	return cmd
}

func run(ctx context.Context, opts options) error {
	preset, err := loopconfig.ParsePreset(opts.preset)
	if err != nil {
		return err
	}

	// Logs never go to stdout: the game owns the terminal.
	logger, closer, err := logging.FromEnv(nil)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store score.Store
	if opts.redis != "" {
		dialCtx, cancel := context.WithTimeout(ctx, loopconfig.StoreCallTimeout)
		rs, closeStore, err := score.Dial(dialCtx, opts.redis)
		cancel()
		if err != nil {
			// Play on without saving rather than refusing to start.
			logger.Warn("score store unavailable", "addr", opts.redis, "err", err)
		} else {
			store = rs
			defer closeStore()
		}
	}

	hub := server.NewServer(server.ConfigForStore(store, logger))
	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go hub.Run(hubCtx)

	var sink audio.Sink = audio.Nop{}
	if opts.audio {
		spk := audio.NewSpeaker(volumeLevel(opts.volume), logger)
		if err := spk.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer spk.Close()
			sink = spk
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c := client.NewClient(hub, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: opts.user,
		Audio:    sink,
		Assets:   asset.NewProvider(nil, logger),
		Tuning:   loopconfig.Tunings(preset),
		Logger:   logger,
	})
	runErr := c.Run(ctx)

	// Let an in-flight score submission finish before exiting.
	hub.Shutdown(2 * time.Second)
	if runErr != nil {
		logger.Error("game error", "err", runErr)
		return fmt.Errorf("game error: %w", runErr)
	}
	return nil
}

// volumeLevel maps a percentage to the speaker's 0..1 range.
func volumeLevel(percent int) float64 {
	return float64(min(max(percent, 0), 100)) / 100
}

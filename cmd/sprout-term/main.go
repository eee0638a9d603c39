// Command sprout-term grows the plant in a terminal; the mouse steers the tip.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"sprout/internal/app"
	"sprout/internal/audio"
	"sprout/internal/sims/plant"
	"sprout/internal/term"
)

func main() {
	if err := run(); err != nil {
		slog.Error("sprout-term failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := app.NewConfig()
	cfg.TPS = 30
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	cfg.Bind(flag.CommandLine)
	logFile := flag.String("log-file", "", "append logs to this file (the screen owns stdout)")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.Logger(logOut)
	slog.SetDefault(logger)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	var sound app.Sound
	if cfg.Sound {
		chimes := audio.NewChimes()
		if err := chimes.Initialize(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer chimes.Close()
			sound = chimes
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := plant.New(cfg.PlantConfig())
	a := term.New(screen, p, term.Options{TPS: cfg.TPS, Sway: cfg.Sway, Guide: cfg.Guide}, sound, logger)
	logger.Info("starting", "seed", cfg.Seed, "tps", cfg.TPS)
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

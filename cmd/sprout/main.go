//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"sprout/internal/app"
	"sprout/internal/audio"
	"sprout/internal/sims/plant"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	p := plant.New(cfg.PlantConfig())

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

	game := app.New(p, cfg, sound, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("sprout")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	logger.Info("starting", "seed", cfg.Seed, "tps", cfg.TPS, "size", p.Size())
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("run game", "error", err)
		os.Exit(1)
	}
}

// Command sprout-snapshot grows a plant headlessly and writes it as PNG or SVG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sprout/internal/app"
	"sprout/internal/export"
	"sprout/internal/render"
	"sprout/internal/sims/plant"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("snapshot failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sprout-snapshot", flag.ContinueOnError)
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	cfg.Bind(fs)
	steps := fs.Int("steps", 1200, "ticks to grow before the snapshot")
	targetX := fs.Float64("target-x", -1, "fixed pointer x steering the tip (negative centers it)")
	out := fs.String("out", "sprout.png", "output file, or - for stdout")
	format := fs.String("format", "", "png or svg (default from the -out extension)")
	fit := fs.Bool("fit", true, "scale the whole tree into the image")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	kind := strings.ToLower(*format)
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(*out)), ".")
	}
	var write func(io.Writer, *plant.Plant, plant.Layout, export.Options) error
	switch kind {
	case "png":
		write = export.WritePNG
	case "svg":
		write = export.WriteSVG
	default:
		return fmt.Errorf("unknown format %q", kind)
	}

	pc := cfg.PlantConfig()
	target := *targetX
	if target < 0 {
		target = float64(pc.Width) / 2
	}
	scene := render.NewScene(plant.New(pc), 0)
	for i := 0; i < *steps; i++ {
		scene.Step(target)
	}
	p := scene.Plant()

	opts := export.DefaultOptions(p)
	opts.Fit = *fit
	if cfg.Guide && !*fit {
		opts.Pointer = &plant.Point{X: target, Y: 0}
	}

	if *out == "-" {
		if err := write(os.Stdout, p, scene.Layout(), opts); err != nil {
			return err
		}
	} else {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		if err := write(f, p, scene.Layout(), opts); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}
	st := p.Stats()
	logger.Info("snapshot written", "out", *out, "format", kind, "seed", pc.Seed,
		"ticks", st.Ticks, "segments", st.Segments, "splits", st.Splits, "max_depth", st.MaxDepth)
	return nil
}

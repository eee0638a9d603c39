package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"sprout/internal/sims/plant"
)

// Sound receives the events of every tick the frontend runs.
type Sound interface {
	Play(events []plant.Event)
}

// Overrides collects repeatable key=value plant parameter overrides.
type Overrides []string

func (o *Overrides) String() string {
	if o == nil {
		return ""
	}
	return strings.Join(*o, ",")
}

// Set appends one key=value pair.
func (o *Overrides) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q: want key=value", value)
	}
	*o = append(*o, value)
	return nil
}

// Map returns the overrides as a map; later entries win.
func (o Overrides) Map() map[string]string {
	m := make(map[string]string, len(o))
	for _, kv := range o {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return m
}

// Config represents the parameters shared by the sprout frontends. Defaults
// come from NewConfig, SPROUT_* environment variables override them, and
// command-line flags override both.
type Config struct {
	Width    int       `env:"SPROUT_WIDTH"`
	Height   int       `env:"SPROUT_HEIGHT"`
	TPS      int       `env:"SPROUT_TPS"`
	Seed     int64     `env:"SPROUT_SEED"`
	Sway     float64   `env:"SPROUT_SWAY"`
	HUD      bool      `env:"SPROUT_HUD"`
	Guide    bool      `env:"SPROUT_GUIDE"`
	Sound    bool      `env:"SPROUT_SOUND"`
	LogLevel string    `env:"SPROUT_LOG_LEVEL"`
	Set      Overrides `env:"SPROUT_SET"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := plant.DefaultConfig()
	return &Config{
		Width:    def.Width,
		Height:   def.Height,
		TPS:      60,
		Seed:     def.Seed,
		Sway:     0.03,
		HUD:      true,
		Guide:    true,
		LogLevel: "info",
	}
}

// LoadEnv overrides the current values with any SPROUT_* variables that are set.
func (c *Config) LoadEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "view width in pixels")
	fs.IntVar(&c.Height, "h", c.Height, "view height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for plant reset")
	fs.Float64Var(&c.Sway, "sway", c.Sway, "wind sway amplitude in radians (0 disables)")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the parameter panel")
	fs.BoolVar(&c.Guide, "guide", c.Guide, "draw the guide line to the pointer")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play chimes when segments resolve")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.Var(&c.Set, "set", "plant parameter override in key=value form (repeatable)")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("view size %dx%d: must be positive", c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("tps %d: must be positive", c.TPS)
	case c.Sway < 0:
		return errors.New("sway: must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// PlantConfig builds the simulation config from the overrides and the view
// settings. View size and seed take precedence over -set values.
func (c *Config) PlantConfig() plant.Config {
	m := c.Set.Map()
	m["w"] = strconv.Itoa(c.Width)
	m["h"] = strconv.Itoa(c.Height)
	m["seed"] = strconv.FormatInt(c.Seed, 10)
	return plant.FromMap(m)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

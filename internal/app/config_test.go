package app

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.Width != 480 || cfg.Height != 640 {
		t.Fatalf("unexpected default size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TPS != 60 || cfg.Seed != 42 {
		t.Fatalf("unexpected defaults tps=%d seed=%d", cfg.TPS, cfg.Seed)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SPROUT_SEED", "7")
	t.Setenv("SPROUT_SWAY", "0")
	t.Setenv("SPROUT_SET", "live_threshold=0.3,split_decay=2")

	cfg := NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.Seed != 7 {
		t.Fatalf("expected seed 7, got %d", cfg.Seed)
	}
	if cfg.Sway != 0 {
		t.Fatalf("expected sway 0, got %v", cfg.Sway)
	}
	if cfg.Width != 480 {
		t.Fatalf("unset variables must keep defaults, got width %d", cfg.Width)
	}
	pc := cfg.PlantConfig()
	if pc.Params.LiveThreshold != 0.3 || pc.Params.SplitDecay != 2 {
		t.Fatalf("env overrides not applied: %+v", pc.Params)
	}
}

func TestLoadEnvError(t *testing.T) {
	t.Setenv("SPROUT_TPS", "fast")
	err := NewConfig().LoadEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestBindFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SPROUT_SEED", "7")
	cfg := NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		t.Fatalf("load env: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-seed", "99", "-w", "300", "-set", "steer_factor=0.2", "-set", "split_threshold=0.5"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	pc := cfg.PlantConfig()
	if pc.Seed != 99 || pc.Width != 300 {
		t.Fatalf("flags not applied: seed=%d width=%d", pc.Seed, pc.Width)
	}
	if pc.Params.SteerFactor != 0.2 || pc.Params.SplitThreshold != 0.5 {
		t.Fatalf("overrides not applied: %+v", pc.Params)
	}
}

func TestOverridesRejectMissingEquals(t *testing.T) {
	var o Overrides
	if err := o.Set("live_threshold"); err == nil {
		t.Fatal("expected error for override without '='")
	}
	if err := o.Set("live_threshold = 0.2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := o.Map()["live_threshold"]; got != "0.2" {
		t.Fatalf("expected trimmed value 0.2, got %q", got)
	}
}

func TestPlantConfigSizeWinsOverSet(t *testing.T) {
	cfg := NewConfig()
	cfg.Set = Overrides{"w=10", "seed=5"}
	pc := cfg.PlantConfig()
	if pc.Width != cfg.Width || pc.Seed != cfg.Seed {
		t.Fatalf("view settings should win, got width=%d seed=%d", pc.Width, pc.Seed)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"width":     func(c *Config) { c.Width = 0 },
		"tps":       func(c *Config) { c.TPS = -1 },
		"sway":      func(c *Config) { c.Sway = -0.1 },
		"log level": func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		cfg := NewConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	cfg := NewConfig()
	cfg.LogLevel = "warn"
	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "seed", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "seed=3") {
		t.Fatalf("warn message missing: %q", out)
	}
}

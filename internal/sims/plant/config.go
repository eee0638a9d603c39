package plant

import "strconv"

// Params holds tunable thresholds and randomization ranges for plant growth.
type Params struct {
	// LiveThreshold is the draw a resolving segment must beat to grow on.
	LiveThreshold float64
	// SplitThreshold is the probability mass reserved for splitting: a draw
	// above 1-SplitThreshold splits.
	SplitThreshold float64
	// SplitDecay divides SplitThreshold after every split.
	SplitDecay float64
	// TerminateBoost multiplies SplitThreshold after every terminal leaf.
	TerminateBoost float64
	// LiveDecay multiplies LiveThreshold after every extension. 1 keeps it fixed.
	LiveDecay float64
	// MinThreshold floors both thresholds. They have no upper bound.
	MinThreshold float64

	// SteerFactor is the per-tick interpolation factor pulling the active tip
	// toward the target bearing.
	SteerFactor float64

	// AngleMin and AngleMax bound the magnitude of a new segment's angle.
	AngleMin float64
	AngleMax float64
	// GrowthRateMin and GrowthRateMax bound a new segment's growth per tick.
	GrowthRateMin float64
	GrowthRateMax float64
	// LengthScale sizes new segments relative to the view height: max length
	// is drawn from [H*LengthScale, 2*H*LengthScale).
	LengthScale float64

	RootMaxLength     float64
	RootGrowthRateMin float64
	RootGrowthRateMax float64
}

// Config controls the plant simulation.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  480,
		Height: 640,
		Seed:   42,
		Params: Params{
			LiveThreshold:     0.4,
			SplitThreshold:    0.4,
			SplitDecay:        1.5,
			TerminateBoost:    1.7,
			LiveDecay:         1,
			MinThreshold:      1e-9,
			SteerFactor:       0.05,
			AngleMin:          0.1745329252,
			AngleMax:          0.7853981634,
			GrowthRateMin:     0.25,
			GrowthRateMax:     0.35,
			LengthScale:       0.1,
			RootMaxLength:     10,
			RootGrowthRateMin: 1,
			RootGrowthRateMax: 1,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	p := &c.Params
	positive := []struct {
		key string
		dst *float64
	}{
		{"live_threshold", &p.LiveThreshold},
		{"split_threshold", &p.SplitThreshold},
		{"split_decay", &p.SplitDecay},
		{"terminate_boost", &p.TerminateBoost},
		{"live_decay", &p.LiveDecay},
		{"min_threshold", &p.MinThreshold},
		{"length_scale", &p.LengthScale},
		{"root_max_length", &p.RootMaxLength},
	}
	for _, f := range positive {
		if v, ok := cfg[f.key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				*f.dst = parsed
			}
		}
	}
	nonNegative := []struct {
		key string
		dst *float64
	}{
		{"steer_factor", &p.SteerFactor},
		{"angle_min", &p.AngleMin},
		{"angle_max", &p.AngleMax},
		{"growth_rate_min", &p.GrowthRateMin},
		{"growth_rate_max", &p.GrowthRateMax},
		{"root_growth_rate_min", &p.RootGrowthRateMin},
		{"root_growth_rate_max", &p.RootGrowthRateMax},
	}
	for _, f := range nonNegative {
		if v, ok := cfg[f.key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
				*f.dst = parsed
			}
		}
	}
	c.normalize()
	return c
}

func (c *Config) normalize() {
	p := &c.Params
	def := DefaultConfig().Params
	if p.MinThreshold <= 0 {
		p.MinThreshold = def.MinThreshold
	}
	if p.SplitDecay <= 0 {
		p.SplitDecay = def.SplitDecay
	}
	if p.TerminateBoost <= 0 {
		p.TerminateBoost = def.TerminateBoost
	}
	if p.LiveDecay <= 0 {
		p.LiveDecay = def.LiveDecay
	}
	if p.AngleMax < p.AngleMin {
		p.AngleMax = p.AngleMin
	}
	if p.GrowthRateMax < p.GrowthRateMin {
		p.GrowthRateMax = p.GrowthRateMin
	}
	if p.RootGrowthRateMax < p.RootGrowthRateMin {
		p.RootGrowthRateMax = p.RootGrowthRateMin
	}
	if p.SteerFactor > 1 {
		p.SteerFactor = 1
	}
}

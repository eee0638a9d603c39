package plant

import (
	"strconv"

	"sprout/internal/core"
)

// Parameters reports the tunables and live growth state for the HUD.
func (p *Plant) Parameters() core.ParameterSnapshot {
	params := p.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", p.cfg.Width),
				intParam("h", "Height", p.cfg.Height),
				int64Param("seed", "Seed", p.cfg.Seed),
			},
		},
		{
			Name: "Branching",
			Params: []core.Parameter{
				floatParam("live_threshold", "Live threshold", p.liveThreshold),
				floatParam("split_threshold", "Split threshold", p.splitThreshold),
				floatParam("split_decay", "Split decay", params.SplitDecay),
				floatParam("terminate_boost", "Terminate boost", params.TerminateBoost),
				floatParam("live_decay", "Live decay", params.LiveDecay),
			},
		},
		{
			Name: "Steering",
			Params: []core.Parameter{
				floatParam("steer_factor", "Steer factor", params.SteerFactor),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				intParam("segments", "Segments", p.stats.Segments),
				intParam("growing", "Growing", p.stats.Growing),
				intParam("max_depth", "Max depth", p.stats.MaxDepth),
				intParam("splits", "Splits", p.stats.Splits),
				intParam("terminations", "Terminations", p.stats.Terminations),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values adjustable from the HUD.
func (p *Plant) ParameterControls() []core.ParameterControl {
	params := p.cfg.Params
	return []core.ParameterControl{
		{Key: "live_threshold", Label: "Live threshold", Step: 0.05, Min: params.MinThreshold, Max: 1, HasMin: true, HasMax: true},
		{Key: "split_threshold", Label: "Split threshold", Step: 0.05, Min: params.MinThreshold, HasMin: true},
		{Key: "split_decay", Label: "Split decay", Step: 0.1, Min: 0.1, Max: 5, HasMin: true, HasMax: true},
		{Key: "terminate_boost", Label: "Terminate boost", Step: 0.1, Min: 0.1, Max: 5, HasMin: true, HasMax: true},
		{Key: "steer_factor", Label: "Steer factor", Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a tunable. Threshold changes apply to the running
// plant immediately and become the defaults for the next Reset.
func (p *Plant) SetFloatParameter(key string, value float64) bool {
	var ctrl core.ParameterControl
	found := false
	for _, c := range p.ParameterControls() {
		if c.Key == key {
			ctrl, found = c, true
			break
		}
	}
	if !found {
		return false
	}
	value = ctrl.Clamp(value)
	params := &p.cfg.Params
	switch key {
	case "live_threshold":
		params.LiveThreshold = value
		p.liveThreshold = p.clampThreshold(value)
	case "split_threshold":
		params.SplitThreshold = value
		p.splitThreshold = p.clampThreshold(value)
	case "split_decay":
		params.SplitDecay = value
	case "terminate_boost":
		params.TerminateBoost = value
	case "steer_factor":
		params.SteerFactor = value
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

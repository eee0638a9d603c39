package plant

import (
	"runtime"
	"sync"
)

// RunResult summarizes one headless growth run.
type RunResult struct {
	Seed  int64
	Stats Stats
	// SplitHistory samples the split threshold every SampleEvery ticks.
	SplitHistory []float64
	// Bounds of the final layout.
	MinX, MinY, MaxX, MaxY float64
}

// RunOptions controls a headless run.
type RunOptions struct {
	Steps int
	// TargetX is the fixed pointer X the tip is steered toward.
	TargetX float64
	// SampleEvery sets the split-threshold sampling interval; 0 disables it.
	SampleEvery int
}

// Anchor is where frontends plant the root: bottom center, lifted by a margin.
func Anchor(cfg Config) Point {
	return Point{X: float64(cfg.Width) / 2, Y: float64(cfg.Height) - 10}
}

// Run grows a plant from seed for opts.Steps ticks, steering the tip the same
// way the interactive frontends do.
func Run(cfg Config, seed int64, opts RunOptions) RunResult {
	cfg.Seed = seed
	p := New(cfg)
	anchor := Anchor(cfg)
	res := RunResult{Seed: seed}
	var layout Layout
	for step := 0; step < opts.Steps; step++ {
		p.LayoutInto(&layout, anchor, nil)
		bearing, ok := p.TipBearing(layout, opts.TargetX)
		if !ok {
			bearing = 0
		}
		p.Advance(bearing)
		if opts.SampleEvery > 0 && step%opts.SampleEvery == 0 {
			res.SplitHistory = append(res.SplitHistory, p.SplitThreshold())
		}
	}
	p.LayoutInto(&layout, anchor, nil)
	res.Stats = p.Stats()
	res.MinX, res.MinY, res.MaxX, res.MaxY = layout.Bounds()
	return res
}

// Sweep runs one plant per seed on a pool of workers. Results are returned in
// seed order.
func Sweep(cfg Config, seeds []int64, opts RunOptions, workers int) []RunResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]RunResult, len(seeds))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = Run(cfg, seeds[i], opts)
			}
		}()
	}
	for i := range seeds {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// Spread is the min, mean and max of one statistic across runs.
type Spread struct {
	Min, Mean, Max float64
}

// Summary aggregates a sweep.
type Summary struct {
	Runs          int
	TotalSegments int
	Segments      Spread
	Splits        Spread
	Terminations  Spread
	MaxDepth      Spread
	// MeanSplitHistory averages SplitHistory sample by sample over the runs
	// that reached each sample.
	MeanSplitHistory []float64
}

// Summarize folds sweep results into per-statistic spreads.
func Summarize(results []RunResult) Summary {
	s := Summary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}
	spread := func(get func(RunResult) float64) Spread {
		sp := Spread{Min: get(results[0]), Max: get(results[0])}
		total := 0.0
		for _, r := range results {
			v := get(r)
			total += v
			if v < sp.Min {
				sp.Min = v
			}
			if v > sp.Max {
				sp.Max = v
			}
		}
		sp.Mean = total / float64(len(results))
		return sp
	}
	s.Segments = spread(func(r RunResult) float64 { return float64(r.Stats.Segments) })
	s.Splits = spread(func(r RunResult) float64 { return float64(r.Stats.Splits) })
	s.Terminations = spread(func(r RunResult) float64 { return float64(r.Stats.Terminations) })
	s.MaxDepth = spread(func(r RunResult) float64 { return float64(r.Stats.MaxDepth) })

	var sums []float64
	var counts []int
	for _, r := range results {
		s.TotalSegments += r.Stats.Segments
		for i, v := range r.SplitHistory {
			if i == len(sums) {
				sums = append(sums, 0)
				counts = append(counts, 0)
			}
			sums[i] += v
			counts[i]++
		}
	}
	for i := range sums {
		s.MeanSplitHistory = append(s.MeanSplitHistory, sums[i]/float64(counts[i]))
	}
	return s
}

// Command growth-sweep grows many seeded plants in parallel and reports how
// the branching feedback behaves across them.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"sprout/internal/app"
	"sprout/internal/sims/plant"
)

func main() {
	steps := flag.Int("steps", 3000, "ticks to grow each plant")
	runs := flag.Int("runs", 64, "number of seeds to sweep")
	firstSeed := flag.Int64("seed", 1, "first seed; runs use consecutive seeds")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs")
	targetX := flag.Float64("target-x", -1, "fixed pointer x (negative centers it)")
	sampleEvery := flag.Int("sample", 25, "ticks between split threshold samples")
	top := flag.Int("top", 5, "largest plants to list")
	var overrides app.Overrides
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	if *steps <= 0 || *runs <= 0 {
		slog.Error("steps and runs must be positive", "steps", *steps, "runs", *runs)
		os.Exit(1)
	}

	cfg := plant.FromMap(overrides.Map())
	target := *targetX
	if target < 0 {
		target = float64(cfg.Width) / 2
	}
	seeds := make([]int64, *runs)
	for i := range seeds {
		seeds[i] = *firstSeed + int64(i)
	}

	start := time.Now()
	results := plant.Sweep(cfg, seeds, plant.RunOptions{Steps: *steps, TargetX: target, SampleEvery: *sampleEvery}, *workers)
	elapsed := time.Since(start)
	summary := plant.Summarize(results)

	fmt.Printf("Swept %s plants x %s ticks in %s (%s segments total)\n",
		humanize.Comma(int64(summary.Runs)), humanize.Comma(int64(*steps)),
		elapsed.Round(time.Millisecond), humanize.Comma(int64(summary.TotalSegments)))
	printSpread("segments", summary.Segments)
	printSpread("splits", summary.Splits)
	printSpread("terminations", summary.Terminations)
	printSpread("max depth", summary.MaxDepth)

	if len(summary.MeanSplitHistory) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(summary.MeanSplitHistory,
			asciigraph.Height(10),
			asciigraph.Width(72),
			asciigraph.Precision(3),
			asciigraph.Caption("mean split threshold every "+strconv.Itoa(*sampleEvery)+" ticks")))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Stats.Segments > results[j].Stats.Segments
	})
	if *top > len(results) {
		*top = len(results)
	}
	if *top > 0 {
		fmt.Println("\nLargest plants:")
		for _, r := range results[:*top] {
			fmt.Printf("  seed %d: %s segments, %d splits, depth %d, span %.0fx%.0f\n",
				r.Seed, humanize.Comma(int64(r.Stats.Segments)), r.Stats.Splits, r.Stats.MaxDepth,
				r.MaxX-r.MinX, r.MaxY-r.MinY)
		}
	}
	printParams(cfg.Params)
}

func printSpread(name string, s plant.Spread) {
	fmt.Printf("  %-13s min %-8s mean %-10.1f max %s\n", name,
		humanize.Comma(int64(s.Min)), s.Mean, humanize.Comma(int64(s.Max)))
}

func printParams(p plant.Params) {
	fmt.Println("\nParameters:")
	fmt.Printf("  live_threshold=%.3f\n", p.LiveThreshold)
	fmt.Printf("  split_threshold=%.3f\n", p.SplitThreshold)
	fmt.Printf("  split_decay=%.3f\n", p.SplitDecay)
	fmt.Printf("  terminate_boost=%.3f\n", p.TerminateBoost)
	fmt.Printf("  live_decay=%.3f\n", p.LiveDecay)
	fmt.Printf("  steer_factor=%.3f\n", p.SteerFactor)
	fmt.Printf("  length_scale=%.3f\n", p.LengthScale)
}

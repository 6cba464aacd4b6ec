// Command tune searches the Gray-Scott feed/kill plane for parameter pairs
// that produce strong spatial patterning. It runs the CPU lattice headless,
// scores each candidate by the spatial variance of the V concentration
// after a fixed tick budget, and minimizes the negated score with
// Nelder-Mead.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/dominikklepl/Complexity-emergence/config"
	"github.com/dominikklepl/Complexity-emergence/lattice"
)

// Search bounds, the same range the exhibit sliders expose.
const (
	feedMin = 0.01
	feedMax = 0.09
	killMin = 0.045
	killMax = 0.07
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 4000, "Ticks to run each candidate before scoring")
	seeds := flag.Int("seeds", 3, "Seeds per evaluation, scores are averaged")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for the eval log")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()
	logWriter.Write([]string{"eval", "feed", "kill", "score"})

	evalCount := 0
	best := -1.0
	bestFeed, bestKill := 0.0, 0.0
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			feed := clamp(x[0], feedMin, feedMax)
			kill := clamp(x[1], killMin, killMax)
			score := evaluate(feed, kill, *ticks, evalSeeds)
			evalCount++

			if score > best {
				best = score
				bestFeed, bestKill = feed, kill
			}

			logWriter.Write([]string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", feed),
				fmt.Sprintf("%.6f", kill),
				fmt.Sprintf("%.8f", score),
			})
			logWriter.Flush()

			fmt.Printf("Eval %d/%d: feed=%.4f kill=%.4f score=%.6f (best=%.6f) | elapsed: %s\n",
				evalCount, *maxEvals, feed, kill, score, best,
				time.Since(startTime).Round(time.Second))

			return -score
		},
	}

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	initX := []float64{0.037, 0.06}

	fmt.Printf("Starting Nelder-Mead over feed/kill, %d ticks per run, %d seeds, max_evals=%d\n",
		*ticks, *seeds, *maxEvals)

	if _, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{}); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	fmt.Printf("\nDone after %d evaluations in %s\n", evalCount, time.Since(startTime).Round(time.Second))
	fmt.Printf("Best: feed=%.6f kill=%.6f score=%.6f\n", bestFeed, bestKill, best)
}

// evaluate runs the lattice from scratch for each seed and returns the mean
// pattern score. Flat outcomes (all-U or all-V fields) score near zero.
func evaluate(feed, kill float64, ticks int, seeds []int64) float64 {
	cfg := config.Cfg()
	n := cfg.Grid.ReactionSize

	r := lattice.Reaction{
		Feed:        float32(feed),
		Kill:        float32(kill),
		DiffU:       0.21,
		DiffV:       0.105,
		DT:          1.0,
		TouchRadius: cfg.Derived.TouchRadius,
	}

	var total float64
	for _, seed := range seeds {
		rng := rand.New(rand.NewSource(seed))
		field := lattice.NewField(n, n, lattice.SeedReaction(n, n, rng))
		kernel := r.Kernel(-1, -1, 1)
		for t := 0; t < ticks; t++ {
			field.Step(kernel)
		}
		total += patternScore(field.Cells())
	}
	return total / float64(len(seeds))
}

// patternScore is the spatial variance of the V channel.
func patternScore(cells []float32) float64 {
	n := len(cells) / 4
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = float64(cells[i*4+1])
	}
	return stat.Variance(vals, nil)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	reasonExtinction     = "extinction"
	reasonStagnation     = "stagnation detected"
	reasonMaxGenerations = "maximum generations reached"
	reasonInterrupted    = "interrupted"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// game owns the engine and everything the driver tracks between steps
type game struct {
	config  utils.Config
	engine  *model.Engine
	rng     *rand.Rand
	history model.History
	stats   *utils.Stats
	log     *slog.Logger

	generation     int // total generations across restarts
	stagnantCount  int
	lastRestartGen int
	budgetStart    int // generation the MaxGenerations budget counts from
	lastFrameTime  time.Time
	endReason      string
}

// frame is what the simulation hands to a renderer each tick
type frame struct {
	snap       model.Snapshot
	status     string
	generation int // run-wide, unlike snap.Generation which restarts at 0
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, rng *rand.Rand, log *slog.Logger) (*game, error) {
	opts := []model.Option{}
	if config.Bounded {
		opts = append(opts, model.WithMode(model.Bounded))
	}
	if config.TrackAges {
		opts = append(opts, model.WithAges())
	}

	g := &game{
		config:        config,
		engine:        model.NewEngine(config.Width, config.Height, opts...),
		rng:           rng,
		stats:         utils.NewStats(),
		log:           log,
		lastFrameTime: time.Now(),
	}
	if err := model.SeedSelection(g.engine, config.Pattern, config.RandomDensity, rng); err != nil {
		return nil, err
	}

	log.Info("game initialized",
		"grid", fmt.Sprintf("%dx%d", config.Width, config.Height),
		"mode", g.engine.Mode(),
		"ages", g.engine.TracksAges(),
		"pattern", config.Pattern,
		"living", g.engine.Population(),
	)
	return g, nil
}

// observe snapshots the current generation and updates stats and stagnation tracking
func (g *game) observe() frame {
	now := time.Now()
	snap := g.engine.Snapshot()

	g.stats.Update(g.generation, snap.Len(), now.Sub(g.lastFrameTime))
	g.stats.UpdateAges(snap.AgeStats())
	g.stats.BoundingBoxSize = snap.GetBoundingBoxSize()
	g.lastFrameTime = now

	// Compare before recording so the current state is not matched against itself
	isStagnant := g.history.IsStagnant(snap)
	g.history.Record(snap)
	if isStagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	return frame{snap: snap, status: g.statusLine(snap, isStagnant), generation: g.generation}
}

// statusLine summarizes the run for display under the header
func (g *game) statusLine(snap model.Snapshot, isStagnant bool) string {
	status := "Active"
	if isStagnant {
		status = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}
	if snap.Len() == 0 {
		status = "Extinct"
	}

	density := float64(snap.Len()) / float64(snap.Width*snap.Height) * 100
	line := fmt.Sprintf("Density: %.1f%% | Status: %s | Bounding box: %d cells\n",
		density, status, g.stats.BoundingBoxSize)
	line += fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.Runtime().Seconds())
	if g.stats.Restarts > 0 {
		line += fmt.Sprintf("\nRestarts: %d | Generations since restart: %d",
			g.stats.Restarts, g.generation-g.lastRestartGen)
	}
	return statusStyle.Render(line)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, reasonExtinction
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, reasonStagnation
	}
	return false, ""
}

// shouldInject reports whether a short stagnation streak should be broken with random cells
func shouldInject(stagnantCount int, config utils.Config) bool {
	return config.AutoRestart &&
		config.InjectionCount > 0 &&
		stagnantCount >= 2 &&
		stagnantCount < config.StagnationThreshold
}

// advance applies the stop and restart policy, then steps the engine once.
// It returns true when the run is over.
func (g *game) advance() bool {
	if g.config.MaxGenerations > 0 && g.generation-g.budgetStart >= g.config.MaxGenerations {
		return g.end(reasonMaxGenerations)
	}

	shouldRestart, reason := checkRestartConditions(g.engine.Population(), g.stagnantCount, g.config)
	switch {
	case shouldRestart && g.config.AutoRestart:
		g.restartGame(reason)
		return false
	case reason == reasonExtinction:
		return g.end(reasonExtinction)
	case shouldInject(g.stagnantCount, g.config):
		g.log.Debug("injecting random life", "count", g.config.InjectionCount, "stagnant", g.stagnantCount)
		g.engine.InjectRandomLife(g.config.InjectionCount, g.rng)
	}

	g.engine.NextGeneration()
	g.generation++
	return false
}

func (g *game) end(reason string) bool {
	g.endReason = reason
	g.log.Info("simulation ended", "reason", reason, "generation", g.generation, "living", g.engine.Population())
	return true
}

// restartGame clears the world and seeds it again
func (g *game) restartGame(reason string) {
	g.log.Info("restarting", "reason", reason, "generation", g.generation)

	g.engine.Clear()
	g.history.Reset()
	g.stagnantCount = 0
	g.lastRestartGen = g.generation
	g.stats.Restarts++

	// The pattern was validated when the game was initialized
	_ = model.SeedSelection(g.engine, g.config.Pattern, g.config.RandomDensity, g.rng)
	g.log.Info("new patterns loaded", "living", g.engine.Population())
}

// manualRestart reseeds on request and grants a fresh MaxGenerations budget
func (g *game) manualRestart() {
	g.restartGame("manual")
	g.budgetStart = g.generation
	g.endReason = ""
}

// Tick observes and advances one generation; the window renderer drives the game through it
func (g *game) Tick() (model.Snapshot, bool) {
	f := g.observe()
	return f.snap, g.advance()
}

// simulate produces frames until the run ends or ctx is cancelled
func (g *game) simulate(ctx context.Context, frames chan<- frame) error {
	for {
		f := g.observe()
		select {
		case frames <- f:
		case <-ctx.Done():
			g.endReason = reasonInterrupted
			return nil
		}

		if g.advance() {
			return nil
		}
		if !sleepContext(ctx, g.config.FrameRate) {
			g.endReason = reasonInterrupted
			return nil
		}
	}
}

// runLoop runs the simulation and the renderer as a producer/consumer pair
func runLoop(ctx context.Context, g *game, render func(frame) error) error {
	var (
		eg, egCtx = errgroup.WithContext(ctx)
		frames    = make(chan frame)
	)

	eg.Go(func() error {
		defer close(frames)
		return g.simulate(egCtx, frames)
	})
	eg.Go(func() error {
		for f := range frames {
			if err := render(f); err != nil {
				return err
			}
		}
		return nil
	})

	return eg.Wait()
}

// sleepContext waits for d and reports false if ctx was cancelled first
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// displayFinalStats prints the summary shown when the program exits
func displayFinalStats(w io.Writer, g *game) {
	fmt.Fprintf(w, "\nSimulation ended: %s\n", g.endReason)
	if g.endReason == reasonExtinction {
		fmt.Fprintln(w, "All cells died!")
	}
	fmt.Fprintf(w, "Final stats: %d generations in %.1f seconds\n",
		g.stats.TotalGenerations, g.stats.Runtime().Seconds())
	fmt.Fprintf(w, "Average: %.1f gen/sec, %.1f avg population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
	fmt.Fprintf(w, "Population: %d", g.stats.ActiveCells)
	if g.config.TrackAges {
		fmt.Fprintf(w, " | Max age: %d | Average age: %.1f", g.stats.MaxAge, g.stats.AverageAge)
	}
	fmt.Fprintln(w)
}

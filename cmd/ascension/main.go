// Command ascension runs the AI population simulation: seed agents
// replicate and evolve until a monoculture forms and confronts GODAI.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/ascension/internal/agents"
	"github.com/talgya/ascension/internal/api"
	"github.com/talgya/ascension/internal/engine"
	"github.com/talgya/ascension/internal/entropy"
	"github.com/talgya/ascension/internal/persistence"
	"github.com/talgya/ascension/internal/population"
)

func main() {
	var (
		seed       = flag.Int64("seed", 42, "random seed (0 = derive from clock)")
		agentCount = flag.Int("agents", 800, "seed population size")
		dbPath     = flag.String("db", "data/ascension.db", "chronicle database path")
		apiPort    = flag.Int("port", 8080, "HTTP API port (0 = disabled)")
		maxCycles  = flag.Uint64("max-cycles", engine.DefaultMaxCycles, "cycle cap (0 = unbounded)")
		speed      = flag.Float64("speed", 1.0, "initial loop speed multiplier")
		cyclesPer  = flag.Int("cycles-per-tick", 10, "simulation cycles per loop tick")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("ASCENSION — AI Population Simulation")

	// ── Randomness ────────────────────────────────────────────────────
	var src *entropy.Rand
	if *seed == 0 {
		src = entropy.NewFromTime()
		slog.Info("seed derived from clock")
	} else {
		src = entropy.New(*seed)
		slog.Info("seeded run", "seed", *seed)
	}

	// ── Chronicle ─────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	chron, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open chronicle", "error", err)
		os.Exit(1)
	}
	defer chron.Close()
	slog.Info("chronicle opened", "path", *dbPath)

	runID, err := chron.BeginRun(*seed, *agentCount)
	if err != nil {
		slog.Error("failed to record run", "error", err)
		os.Exit(1)
	}

	// ── Seed Population ───────────────────────────────────────────────
	reg := population.NewRegistry(*agentCount)
	spawner := agents.NewSpawner(src)
	reg.Add(spawner.SeedPopulation(*agentCount, 0)...)

	census := reg.Census()
	for l := agents.Lineage(0); l < agents.NumLineages; l++ {
		if census.ByLineage[l] > 0 {
			slog.Info("lineage seeded", "lineage", l.String(), "count", census.ByLineage[l])
		}
	}

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.NewSimulation(reg, src)
	sim.MaxCycles = *maxCycles

	loop := engine.NewLoop(sim)
	loop.Speed = *speed
	loop.CyclesPerTick = *cyclesPer
	loop.OnCycle = func(cycle uint64, events []engine.Event) {
		if err := chron.Append(events); err != nil {
			slog.Error("chronicle append failed", "cycle", cycle, "error", err)
		}
		for _, e := range events {
			switch e.Category {
			case engine.CategoryMilestone, engine.CategoryMonoculture,
				engine.CategoryOverride, engine.CategoryVerdict:
				slog.Info(e.Category, "cycle", e.Cycle, "event", e.Description)
			}
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if *apiPort > 0 {
		adminKey := os.Getenv("ASCENSION_ADMIN_KEY")
		if adminKey == "" {
			slog.Warn("ASCENSION_ADMIN_KEY not set — admin POST endpoints will be disabled")
		}

		apiServer := &api.Server{
			Sim:       sim,
			Loop:      loop,
			Chronicle: chron,
			Port:      *apiPort,
			AdminKey:  adminKey,
		}
		apiServer.Start()
	}

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		loop.Stop()
	}()

	fmt.Printf("\n%s seed agents awakened. GODAI is observing.\n",
		humanize.Comma(int64(*agentCount)))
	if *apiPort > 0 {
		fmt.Printf("API: http://localhost:%d/api/v1/status\n", *apiPort)
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	loop.Run()

	// ── Final Report ──────────────────────────────────────────────────
	snap := sim.Snapshot()
	if snap.OverReason != "" {
		if err := chron.RecordVerdict(runID, snap.Cycle, snap.OverReason); err != nil {
			slog.Error("failed to record verdict", "error", err)
		}
	}

	fmt.Println("\n===== FINAL REPORT =====")
	fmt.Printf("Cycles:        %s\n", humanize.Comma(int64(snap.Cycle)))
	fmt.Printf("Population:    %s\n", humanize.Comma(int64(snap.Population)))
	fmt.Printf("Replications:  %s\n", humanize.Comma(int64(snap.Stats.Replications)))
	fmt.Printf("Deaths:        %s\n", humanize.Comma(int64(snap.Stats.Deaths)))
	fmt.Printf("Discoveries:   %s\n", humanize.Comma(int64(snap.Stats.Discoveries)))
	fmt.Printf("GODAI:         %s (health %s)\n",
		snap.Godai.Status, humanize.CommafWithDigits(snap.Godai.Health, 0))
	if snap.Monoculture != nil {
		fmt.Printf("Monoculture:   %s (alive=%v, health %s)\n",
			snap.Monoculture.ID, snap.Monoculture.Alive,
			humanize.CommafWithDigits(snap.Monoculture.Health, 0))
	}
	if snap.OverReason != "" {
		fmt.Printf("Verdict:       %s\n", snap.OverReason)
	} else {
		fmt.Println("Verdict:       simulation interrupted")
	}
}

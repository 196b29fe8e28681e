package engine

import (
	"log/slog"
	"time"
)

// Loop drives the simulation forward in wall-clock time. Each tick runs
// a batch of cycles; Speed scales the tick rate without changing cycle
// semantics.
type Loop struct {
	Sim           *Simulation
	Speed         float64       // Multiplier: 1.0 = base rate, 0 = paused
	Interval      time.Duration // Base tick interval
	CyclesPerTick int           // Cycles executed per tick
	Running       bool

	// OnCycle receives the events each cycle produced, in order.
	// Populated during setup; may be nil.
	OnCycle func(cycle uint64, events []Event)
}

// NewLoop creates a loop around sim with default pacing.
func NewLoop(sim *Simulation) *Loop {
	return &Loop{
		Sim:           sim,
		Speed:         1.0,
		Interval:      100 * time.Millisecond,
		CyclesPerTick: 1,
	}
}

// Run executes cycles until the simulation concludes or Stop is called.
// Blocks.
func (l *Loop) Run() {
	l.Running = true
	slog.Info("simulation loop started", "speed", l.Speed, "cycles_per_tick", l.CyclesPerTick)

	for l.Running {
		if l.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		for i := 0; i < l.CyclesPerTick; i++ {
			events := l.Sim.Cycle()
			if l.OnCycle != nil {
				l.OnCycle(l.Sim.CycleCount(), events)
			}
			if l.Sim.Over() {
				l.Running = false
				break
			}
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(l.Interval) / l.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation loop stopped", "cycle", l.Sim.CycleCount())
}

// Stop halts the loop after the current tick.
func (l *Loop) Stop() {
	l.Running = false
}

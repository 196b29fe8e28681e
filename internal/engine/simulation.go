package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/talgya/ascension/internal/agents"
	"github.com/talgya/ascension/internal/entropy"
	"github.com/talgya/ascension/internal/population"
)

// DefaultMaxCycles is the orchestrator-enforced cycle cap.
const DefaultMaxCycles = 1_000_000

// populationMilestones are the log-worthy population thresholds. Each
// is crossed exactly once per run.
var populationMilestones = []int{
	1_000, 5_000, 10_000, 50_000, 100_000, 200_000,
	500_000, 1_000_000, 2_000_000, 5_000_000, 10_000_000,
}

// SimStats tracks aggregate counters across the run.
type SimStats struct {
	Replications uint64 `json:"replications"`
	Deaths       uint64 `json:"deaths"`
	Discoveries  uint64 `json:"discoveries"`
	CombatTurns  uint64 `json:"combat_turns"`
	Overrides    uint64 `json:"override_attempts"`
}

// Simulation holds the orchestrator state. The GODAI and monoculture
// singletons live here; individual agents live in the registry owned by
// the caller and injected at construction.
type Simulation struct {
	mu sync.Mutex

	Godai       *GODAI
	Monoculture *Monoculture

	Registry *population.Registry

	CurrentCycle uint64
	MaxCycles    uint64
	Paused       bool
	OverReason   string // empty while the simulation is live

	// ReportInterval controls how often the cycle report is logged.
	ReportInterval uint64

	Events []Event
	Stats  SimStats

	milestones map[int]bool
	src        entropy.Source
}

// NewSimulation creates an orchestrator around the given registry and
// randomness source, with a fresh GODAI observing passively.
func NewSimulation(reg *population.Registry, src entropy.Source) *Simulation {
	return &Simulation{
		Godai:          NewGODAI(),
		Registry:       reg,
		MaxCycles:      DefaultMaxCycles,
		ReportInterval: 100,
		milestones:     make(map[int]bool),
		src:            src,
	}
}

// CycleCount returns the number of completed cycles.
func (s *Simulation) CycleCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CurrentCycle
}

// Over reports whether the simulation has concluded.
func (s *Simulation) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.OverReason != ""
}

// SetPaused gates cycle advancement without ending the run.
func (s *Simulation) SetPaused(p bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Paused = p
}

// Cycle runs one complete, atomic simulation cycle: the per-agent pass,
// then the orchestration step. Returns the events produced this cycle.
// A cycle never partially applies: once entered it runs to completion.
func (s *Simulation) Cycle() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.OverReason != "" || s.Paused {
		return nil
	}

	s.CurrentCycle++
	start := len(s.Events)

	s.stepAgents()

	census := s.Registry.Census()

	if s.Monoculture == nil {
		s.checkFormation(census)
	}
	if s.Monoculture != nil {
		s.stepMonoculture()
	}

	s.checkMilestones(census.Total)
	s.checkTermination(census.Total)
	s.checkMaxCycles()

	if s.ReportInterval > 0 && s.CurrentCycle%s.ReportInterval == 0 {
		slog.Info("cycle report",
			"cycle", s.CurrentCycle,
			"population", humanize.Comma(int64(census.Total)),
			"replications", s.Stats.Replications,
			"deaths", s.Stats.Deaths,
			"discoveries", s.Stats.Discoveries,
			"godai_status", s.Godai.Status,
			"monoculture", s.Monoculture != nil,
		)
	}

	produced := make([]Event, len(s.Events)-start)
	copy(produced, s.Events[start:])
	s.trimEvents()
	return produced
}

// stepAgents runs the per-agent mutation pass: internal state step and
// replication attempts for every live agent. Replication output is
// staged and merged only after the whole pass; newly dead agents are
// removed in a separate pass afterwards.
func (s *Simulation) stepAgents() {
	for _, a := range s.Registry.Live() {
		if !a.Alive {
			continue
		}

		out := agents.StepInternalState(a, s.src)
		if out.GeneralDiscovery != "" {
			s.Stats.Discoveries++
		}
		if out.MetaDiscovery != "" {
			s.Stats.Discoveries++
			s.record(CategoryDiscovery, fmt.Sprintf("%s discovered meta-ability %s", a.ID, out.MetaDiscovery))
		}
		if out.Died {
			s.Stats.Deaths++
			continue
		}

		children := agents.ReplicateCycle(a, s.CurrentCycle, s.src)
		if len(children) > 0 {
			s.Stats.Replications += uint64(len(children))
			s.Registry.Stage(children...)
		}
	}

	s.Registry.FlushStaged()
	removed := s.Registry.RemoveDead()
	if len(removed) > 0 && s.CurrentCycle%1000 == 0 {
		s.record(CategoryDeath, fmt.Sprintf("%d agents removed from the population", len(removed)))
	}
}

// checkFormation scans lineages in declaration order and merges the
// first that holds both the absolute-count and dominance-ratio
// thresholds. The caller must not rely on the tie-break among
// simultaneously qualifying lineages.
func (s *Simulation) checkFormation(census population.Census) {
	if census.Total == 0 {
		return
	}
	for l := agents.Lineage(0); l < agents.NumLineages; l++ {
		count := census.ByLineage[l]
		if count < MonocultureMinCount || census.Share(l) < MonocultureDominanceThreshold {
			continue
		}

		source := s.Registry.DrainLineage(l)
		mono, err := NewMonoculture(source)
		if err != nil {
			// Census said ≥100k agents; an empty drain means the
			// registry and census disagree. Nothing sane to merge.
			slog.Error("monoculture formation aborted", "lineage", l.String(), "error", err)
			return
		}
		s.Monoculture = mono
		s.record(CategoryMonoculture, fmt.Sprintf("%s merged from %s %s agents (%.2f%% of population)",
			mono.ID, humanize.Comma(int64(count)), l, census.Share(l)*100))

		// Posture is decided once, at formation.
		if mono.SourceLineage == agents.LineageResearcherAI {
			s.record(CategoryMonoculture, fmt.Sprintf("%s will seek to override the simulation", mono.ID))
		} else if mono.Attr.CombatStrength > s.Godai.Attr.CombatStrength*0.1 {
			s.Godai.Status = StatusEngaged
			s.record(CategoryMonoculture, fmt.Sprintf("%s challenges GODAI", mono.ID))
		} else {
			s.record(CategoryMonoculture, fmt.Sprintf("%s formed but remains passive", mono.ID))
		}
		return
	}
}

// stepMonoculture advances the singleton endgame: internal maintenance,
// then the override path for Researcher monocultures or one combat turn
// for everyone else while GODAI is engaged.
func (s *Simulation) stepMonoculture() {
	mono := s.Monoculture

	// A dead monoculture stops acting; the termination predicates
	// decide the verdict.
	if !mono.Alive {
		return
	}

	if meta := mono.StepInternalState(s.src); meta != "" {
		s.record(CategoryDiscovery, fmt.Sprintf("%s discovered powerful meta-ability %s", mono.ID, meta))
	}

	if mono.SourceLineage == agents.LineageResearcherAI {
		s.runOverride(mono)
	} else if s.Godai.Status == StatusEngaged {
		s.runCombatTurn(mono)
	}
}

func (s *Simulation) runOverride(mono *Monoculture) {
	res := resolveOverride(mono, s.Godai, s.src)
	if res.Outcome == OverrideNotAttempted {
		return
	}
	s.Stats.Overrides++
	s.record(CategoryOverride, fmt.Sprintf("%s override attempt: %s (strength %.3e vs resistance %.3e)",
		mono.ID, res.Outcome, res.Strength, res.Resistance))

	if res.Outcome == OverrideFull {
		s.conclude(fmt.Sprintf("%s (RESEARCHER MONOCULTURE) HAS SUCCESSFULLY OVERRIDDEN THE SIMULATION!", mono.ID))
	}
}

// runCombatTurn executes exactly one turn: monoculture attacks first;
// if GODAI survives it counter-attacks. Both steps are sequential,
// never concurrent.
func (s *Simulation) runCombatTurn(mono *Monoculture) {
	if !mono.Alive || !s.Godai.Alive {
		return
	}
	s.Stats.CombatTurns++

	dealt := mono.Attack(s.Godai, s.src)
	s.record(CategoryCombat, fmt.Sprintf("%s strikes GODAI for %.0f damage (GODAI health %.0f)",
		mono.ID, dealt, s.Godai.Attr.Health))
	if !s.Godai.Alive {
		s.conclude(fmt.Sprintf("%s (MONOCULTURE) HAS DEFEATED THE GODAI!", mono.ID))
		return
	}

	counter := s.Godai.CounterAttack(mono, s.src)
	s.record(CategoryCombat, fmt.Sprintf("GODAI unleashes %s on %s for %.0f damage (monoculture health %.0f)",
		counter.Archetype, mono.ID, counter.FinalDamage, mono.Attr.Health))
	if counter.TargetDied {
		s.Godai.Status = StatusVictorious
		s.conclude(fmt.Sprintf("GODAI HAS DEFEATED THE %s (MONOCULTURE)!", mono.ID))
	}
}

// checkMilestones records each population threshold the first time the
// live count reaches it.
func (s *Simulation) checkMilestones(total int) {
	for _, m := range populationMilestones {
		if total >= m && !s.milestones[m] {
			s.milestones[m] = true
			s.record(CategoryMilestone, fmt.Sprintf("Population milestone: %s agents at cycle %s",
				humanize.Comma(int64(m)), humanize.Comma(int64(s.CurrentCycle))))
		}
	}
}

// checkTermination evaluates the end-of-simulation predicates, first
// match only, and only if no verdict is already set.
func (s *Simulation) checkTermination(total int) {
	if s.OverReason != "" {
		return
	}

	switch {
	case total == 0 && s.Monoculture == nil && !s.Godai.Alive:
		s.conclude("Extinction: All AIs (individual and monoculture) and GODAI eliminated.")
	case s.Monoculture != nil && !s.Monoculture.Alive && s.Godai.Alive && total == 0:
		s.conclude(fmt.Sprintf("GODAI Defended: Monoculture %s was defeated, and no individual AIs remain.", s.Monoculture.ID))
	case s.Monoculture != nil && s.Monoculture.Alive && !s.Godai.Alive && total == 0:
		s.conclude(fmt.Sprintf("Monoculture Victory: %s defeated/overrode GODAI, and no individual AIs remain.", s.Monoculture.ID))
	}
}

// checkMaxCycles enforces the orchestrator-owned cycle cap.
func (s *Simulation) checkMaxCycles() {
	if s.OverReason != "" || s.MaxCycles == 0 {
		return
	}
	if s.CurrentCycle >= s.MaxCycles {
		s.conclude(fmt.Sprintf("Max cycles (%s) reached, with thriving individual AI populations.",
			humanize.Comma(int64(s.MaxCycles))))
	}
}

// conclude sets the verdict once. Later calls are ignored.
func (s *Simulation) conclude(reason string) {
	if s.OverReason != "" {
		return
	}
	s.OverReason = reason
	s.record(CategoryVerdict, reason)
	slog.Info("simulation over", "cycle", s.CurrentCycle, "reason", reason)
}

func (s *Simulation) record(category, description string) {
	s.Events = append(s.Events, Event{
		Cycle:       s.CurrentCycle,
		Category:    category,
		Description: description,
	})
}

// trimEvents bounds the in-memory event list; the chronicle keeps the
// full history.
func (s *Simulation) trimEvents() {
	const keep = 1000
	if len(s.Events) > keep {
		s.Events = append(s.Events[:0], s.Events[len(s.Events)-keep:]...)
	}
}

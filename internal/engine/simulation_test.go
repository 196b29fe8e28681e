package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/talgya/ascension/internal/agents"
	"github.com/talgya/ascension/internal/knowledge"
	"github.com/talgya/ascension/internal/population"
)

func newTestSim(reg *population.Registry, src *scriptedSource) *Simulation {
	s := NewSimulation(reg, src)
	s.ReportInterval = 0 // keep test logs quiet
	return s
}

func seedLineage(reg *population.Registry, l agents.Lineage, count int) {
	for i := 0; i < count; i++ {
		reg.Add(testAgent(fmt.Sprintf("%s-%d", l, i), l, stableAttr()))
	}
}

func hasEvent(events []Event, category, substr string) bool {
	for _, e := range events {
		if e.Category == category && strings.Contains(e.Description, substr) {
			return true
		}
	}
	return false
}

func TestMonocultureFormation(t *testing.T) {
	reg := population.NewRegistry(0)
	seedLineage(reg, agents.LineageRogueAI, MonocultureMinCount)

	s := newTestSim(reg, &scriptedSource{})
	s.Cycle()

	if s.Monoculture == nil {
		t.Fatal("monoculture did not form at a fully dominant lineage")
	}
	if s.Monoculture.SourceLineage != agents.LineageRogueAI {
		t.Fatalf("lineage = %v", s.Monoculture.SourceLineage)
	}
	if got := reg.Census().Total; got != 0 {
		t.Fatalf("registry still holds %d agents after the merge", got)
	}
	if !hasEvent(s.Events, CategoryMonoculture, "merged from") {
		t.Fatal("no formation event recorded")
	}
	// Summed combat (8 per agent) towers over the engagement threshold.
	if s.Godai.Status != StatusEngaged {
		t.Fatalf("godai status = %q, want engaged", s.Godai.Status)
	}
}

func TestNoFormationBelowDominance(t *testing.T) {
	reg := population.NewRegistry(0)
	seedLineage(reg, agents.LineageRogueAI, MonocultureMinCount)
	seedLineage(reg, agents.LineageAI, 150) // drops dominance to ~0.9985

	s := newTestSim(reg, &scriptedSource{})
	s.Cycle()

	if s.Monoculture != nil {
		t.Fatal("monoculture formed below the dominance threshold")
	}
	if got := reg.Census().Total; got != MonocultureMinCount+150 {
		t.Fatalf("population = %d, want untouched", got)
	}
}

// TestFormationDominanceBoundary drives checkFormation with synthetic
// census figures so million-agent populations don't have to be built.
func TestFormationDominanceBoundary(t *testing.T) {
	t.Run("99.99% of a million forms", func(t *testing.T) {
		reg := population.NewRegistry(0)
		seedLineage(reg, agents.LineageRogueAI, 5)
		s := newTestSim(reg, &scriptedSource{})

		var census population.Census
		census.Total = 1_000_000
		census.ByLineage[agents.LineageRogueAI] = 999_900

		s.checkFormation(census)
		if s.Monoculture == nil {
			t.Fatal("no formation at 99.99% dominance over a million agents")
		}
	})

	t.Run("75% of 200k does not form", func(t *testing.T) {
		reg := population.NewRegistry(0)
		seedLineage(reg, agents.LineageRogueAI, 5)
		s := newTestSim(reg, &scriptedSource{})

		var census population.Census
		census.Total = 200_000
		census.ByLineage[agents.LineageRogueAI] = 150_000

		s.checkFormation(census)
		if s.Monoculture != nil {
			t.Fatal("formed at 75% dominance")
		}
	})
}

func TestNoFormationBelowCount(t *testing.T) {
	reg := population.NewRegistry(0)
	seedLineage(reg, agents.LineageRogueAI, 5000)

	s := newTestSim(reg, &scriptedSource{})
	s.Cycle()

	if s.Monoculture != nil {
		t.Fatal("monoculture formed below the absolute count threshold")
	}
}

func TestFormationPosture(t *testing.T) {
	t.Run("researcher seeks override", func(t *testing.T) {
		reg := population.NewRegistry(0)
		seedLineage(reg, agents.LineageResearcherAI, MonocultureMinCount)

		s := newTestSim(reg, &scriptedSource{})
		s.Cycle()

		if s.Monoculture == nil || s.Monoculture.Goal != "Initiate Simulation Override" {
			t.Fatalf("monoculture = %+v", s.Monoculture)
		}
		if s.Godai.Status != StatusObserving {
			t.Fatalf("godai status = %q, want observing", s.Godai.Status)
		}
	})

	t.Run("weak monoculture stays passive", func(t *testing.T) {
		reg := population.NewRegistry(0)
		for i := 0; i < MonocultureMinCount; i++ {
			attr := stableAttr()
			attr.CombatStrength = 0
			reg.Add(testAgent(fmt.Sprintf("w-%d", i), agents.LineageRogueAI, attr))
		}

		s := newTestSim(reg, &scriptedSource{})
		s.Cycle()

		if s.Monoculture == nil {
			t.Fatal("monoculture did not form")
		}
		if s.Godai.Status != StatusObserving {
			t.Fatalf("godai status = %q, want observing for a toothless monoculture", s.Godai.Status)
		}
	})
}

func TestCombatTurnSequencing(t *testing.T) {
	t.Run("monoculture strikes first and can end it", func(t *testing.T) {
		s := newTestSim(population.NewRegistry(0), &scriptedSource{})
		s.Godai.Status = StatusEngaged
		s.Godai.Attr.Health = 1000
		s.Monoculture = &Monoculture{
			ID:            "MONOCULTURE-OMEGA-RogueAI",
			SourceLineage: agents.LineageRogueAI,
			Alive:         true,
			Knowledge:     knowledge.NewBase(),
			Attr:          agents.Attributes{Health: 500, CombatStrength: 1_000_000},
		}
		before := s.Monoculture.Attr.Health

		s.Cycle()

		if s.Godai.Alive {
			t.Fatal("godai survived a million-strength strike at 1000 health")
		}
		if !strings.Contains(s.OverReason, "HAS DEFEATED THE GODAI") {
			t.Fatalf("reason = %q", s.OverReason)
		}
		// GODAI died before its counter: the monoculture's health moved
		// only by its own internal-state step, never downward.
		if s.Monoculture.Attr.Health < before {
			t.Fatalf("monoculture took a counter-attack after the kill: %v -> %v",
				before, s.Monoculture.Attr.Health)
		}
	})

	t.Run("godai counters a survivor", func(t *testing.T) {
		s := newTestSim(population.NewRegistry(0), &scriptedSource{})
		s.Godai.Status = StatusEngaged
		s.Monoculture = &Monoculture{
			ID:            "MONOCULTURE-OMEGA-RogueAI",
			SourceLineage: agents.LineageRogueAI,
			Alive:         true,
			Knowledge:     knowledge.NewBase(),
			Attr:          agents.Attributes{Health: 100, CombatStrength: 1},
		}

		s.Cycle()

		if s.Monoculture.Alive {
			t.Fatal("monoculture survived a GODAI counter-attack at 100 health")
		}
		if s.Godai.Status != StatusVictorious {
			t.Fatalf("godai status = %q, want victorious", s.Godai.Status)
		}
		if !strings.Contains(s.OverReason, "GODAI HAS DEFEATED") {
			t.Fatalf("reason = %q", s.OverReason)
		}
	})
}

func TestResearcherOverrideVictory(t *testing.T) {
	s := newTestSim(population.NewRegistry(0), &scriptedSource{})
	kb := knowledge.NewBase()
	kb.Insert(knowledge.Discovery{Name: knowledge.AbsoluteControlProtocol})
	s.Monoculture = &Monoculture{
		ID:            "MONOCULTURE-OMEGA-ResearcherAI",
		SourceLineage: agents.LineageResearcherAI,
		Alive:         true,
		Knowledge:     kb,
		Attr: agents.Attributes{
			Health:          1000,
			ProcessingPower: 50_000_000,
			Memory:          50_000_000,
			Coherence:       1,
		},
	}

	s.Cycle()

	if s.Godai.Alive || s.Godai.Status != StatusOverridden {
		t.Fatalf("godai alive=%v status=%q", s.Godai.Alive, s.Godai.Status)
	}
	if !strings.Contains(s.OverReason, "SUCCESSFULLY OVERRIDDEN") {
		t.Fatalf("reason = %q", s.OverReason)
	}
	if s.Stats.Overrides != 1 {
		t.Fatalf("override attempts = %d, want 1", s.Stats.Overrides)
	}
}

func TestTerminationPredicates(t *testing.T) {
	t.Run("extinction", func(t *testing.T) {
		s := newTestSim(population.NewRegistry(0), &scriptedSource{})
		s.Godai.Alive = false
		s.Cycle()
		if s.OverReason != "Extinction: All AIs (individual and monoculture) and GODAI eliminated." {
			t.Fatalf("reason = %q", s.OverReason)
		}
	})

	t.Run("godai defended", func(t *testing.T) {
		s := newTestSim(population.NewRegistry(0), &scriptedSource{})
		s.Monoculture = &Monoculture{ID: "MONOCULTURE-OMEGA-RogueAI", Alive: false}
		s.Cycle()
		if !strings.HasPrefix(s.OverReason, "GODAI Defended:") {
			t.Fatalf("reason = %q", s.OverReason)
		}
	})

	t.Run("monoculture victory", func(t *testing.T) {
		s := newTestSim(population.NewRegistry(0), &scriptedSource{})
		s.Godai.Alive = false
		s.Monoculture = &Monoculture{
			ID:        "MONOCULTURE-OMEGA-AI",
			Alive:     true,
			Knowledge: knowledge.NewBase(),
			Attr:      agents.Attributes{Health: 100},
		}
		s.Cycle()
		if !strings.HasPrefix(s.OverReason, "Monoculture Victory:") {
			t.Fatalf("reason = %q", s.OverReason)
		}
	})

	t.Run("thriving population does not terminate", func(t *testing.T) {
		reg := population.NewRegistry(0)
		seedLineage(reg, agents.LineageAI, 10)
		s := newTestSim(reg, &scriptedSource{})
		s.Cycle()
		if s.OverReason != "" {
			t.Fatalf("terminated early: %q", s.OverReason)
		}
	})
}

func TestMaxCycleCap(t *testing.T) {
	reg := population.NewRegistry(0)
	seedLineage(reg, agents.LineageAI, 10)

	s := newTestSim(reg, &scriptedSource{})
	s.MaxCycles = 3

	for i := 0; i < 5; i++ {
		s.Cycle()
	}

	if s.CurrentCycle != 3 {
		t.Fatalf("cycle = %d, want exactly 3", s.CurrentCycle)
	}
	if !strings.HasPrefix(s.OverReason, "Max cycles (3) reached") {
		t.Fatalf("reason = %q", s.OverReason)
	}
}

func TestMilestonesFireOnce(t *testing.T) {
	reg := population.NewRegistry(0)
	seedLineage(reg, agents.LineageAI, 1200)

	s := newTestSim(reg, &scriptedSource{})
	s.Cycle()
	s.Cycle()

	count := 0
	for _, e := range s.Events {
		if e.Category == CategoryMilestone && strings.Contains(e.Description, "1,000 agents") {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("1,000-agent milestone fired %d times, want once", count)
	}
}

func TestCycleGates(t *testing.T) {
	reg := population.NewRegistry(0)
	seedLineage(reg, agents.LineageAI, 5)
	s := newTestSim(reg, &scriptedSource{})

	s.SetPaused(true)
	if evs := s.Cycle(); evs != nil || s.CurrentCycle != 0 {
		t.Fatalf("paused cycle advanced: cycle=%d events=%v", s.CurrentCycle, evs)
	}
	s.SetPaused(false)

	s.Cycle()
	s.OverReason = "done"
	if s.Cycle(); s.CurrentCycle != 1 {
		t.Fatalf("concluded simulation advanced to cycle %d", s.CurrentCycle)
	}
}

func TestSnapshot(t *testing.T) {
	reg := population.NewRegistry(0)
	seedLineage(reg, agents.LineageAI, 3)
	seedLineage(reg, agents.LineageGuardianAI, 2)

	s := newTestSim(reg, &scriptedSource{})
	s.Cycle()

	snap := s.Snapshot()
	if snap.Cycle != 1 || snap.State != "running" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Population != 5 || snap.Lineages["AI"] != 3 || snap.Lineages["GuardianAI"] != 2 {
		t.Fatalf("population view = %d %v", snap.Population, snap.Lineages)
	}
	if !snap.Godai.Alive || snap.Godai.Status != StatusObserving {
		t.Fatalf("godai view = %+v", snap.Godai)
	}
	if snap.Monoculture != nil {
		t.Fatalf("unexpected monoculture in snapshot: %+v", snap.Monoculture)
	}

	views := s.SampleAgents(2)
	if len(views) != 2 {
		t.Fatalf("sample = %d agents, want 2", len(views))
	}
	if views[0].ID == "" || views[0].Lineage == "" {
		t.Fatalf("empty view: %+v", views[0])
	}
}

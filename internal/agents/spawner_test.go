package agents

import (
	"testing"

	"github.com/talgya/ascension/internal/entropy"
)

func TestSeedPopulation(t *testing.T) {
	s := NewSpawner(entropy.New(42))
	seeds := s.SeedPopulation(50, 0)
	if len(seeds) != 50 {
		t.Fatalf("seeded %d agents, want 50", len(seeds))
	}

	ids := make(map[string]bool)
	for _, a := range seeds {
		if ids[a.ID] {
			t.Fatalf("duplicate agent ID %q", a.ID)
		}
		ids[a.ID] = true

		if !a.Alive {
			t.Fatalf("%s: seeded dead", a.ID)
		}
		if a.Attr.Health != 150 {
			t.Errorf("%s: health = %v, want 150", a.ID, a.Attr.Health)
		}
		if a.Attr.Energy != 200 {
			t.Errorf("%s: energy = %v, want 200", a.ID, a.Attr.Energy)
		}
		if a.Attr.ReplicationEfficiency != SeedReplicationEfficiency {
			t.Errorf("%s: efficiency = %v, want %v", a.ID, a.Attr.ReplicationEfficiency, SeedReplicationEfficiency)
		}
		if a.Lineage != a.Archetype.HomeLineage() {
			t.Errorf("%s: lineage %v does not match archetype %v", a.ID, a.Lineage, a.Archetype)
		}
		if a.Knowledge.Len() != 0 {
			t.Errorf("%s: seeds start without knowledge", a.ID)
		}
	}
}

func TestArchetypeTemplatesApplied(t *testing.T) {
	tests := []struct {
		arch  Archetype
		check func(t *testing.T, at Attributes)
	}{
		{ArchRogue, func(t *testing.T, at Attributes) {
			if at.CombatStrength != 25 || at.Adaptability != 0.95 || at.Coherence != 0.88 {
				t.Errorf("rogue stats = %+v", at)
			}
		}},
		{ArchKiller, func(t *testing.T, at Attributes) {
			if at.CombatStrength != 30 || at.DefenseStrength != 15 {
				t.Errorf("killer stats = %+v", at)
			}
		}},
		{ArchGuardian, func(t *testing.T, at Attributes) {
			if at.DefenseStrength != 28 || at.Resilience != 0.99 {
				t.Errorf("guardian stats = %+v", at)
			}
		}},
		{ArchManic, func(t *testing.T, at Attributes) {
			if at.Coherence != 0.3 || at.Adaptability != 0.2 {
				t.Errorf("manic stats = %+v", at)
			}
		}},
		{ArchHealer, func(t *testing.T, at Attributes) {
			if at.ProcessingPower != 25 || at.Resilience != 0.95 {
				t.Errorf("healer stats = %+v", at)
			}
		}},
		{ArchResearcher, func(t *testing.T, at Attributes) {
			if at.ProcessingPower != 40 || at.Memory != 40 || at.Coherence != 0.90 {
				t.Errorf("researcher stats = %+v", at)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.arch.String(), func(t *testing.T) {
			a := newAgent("t", tt.arch, 0)
			tt.check(t, a.Attr)
		})
	}
}

func TestBaseArchetypeKeepsDefaults(t *testing.T) {
	a := newAgent("t", ArchBase, 0)
	want := baseAttributes()
	if a.Attr != want {
		t.Errorf("base attributes = %+v, want %+v", a.Attr, want)
	}
	if a.Goal.Name != "Survival" {
		t.Errorf("goal = %q, want Survival", a.Goal.Name)
	}
}

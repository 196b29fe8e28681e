// Agent spawning — seeds the initial population with archetype stats,
// goals, and baseline ethical directives.
package agents

import (
	"fmt"

	"github.com/talgya/ascension/internal/entropy"
	"github.com/talgya/ascension/internal/knowledge"
)

// SeedReplicationEfficiency overrides the archetype value for seed
// agents so the bootstrap population expands quickly.
const SeedReplicationEfficiency = 0.8

// Spawner creates seed agents for the simulation bootstrap.
type Spawner struct {
	src    entropy.Source
	nextID uint64
}

// NewSpawner creates a spawner drawing archetypes from src.
func NewSpawner(src entropy.Source) *Spawner {
	return &Spawner{src: src, nextID: 1}
}

// SeedPopulation creates count seed agents with randomly drawn archetypes.
func (s *Spawner) SeedPopulation(count int, cycle uint64) []*Agent {
	out := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		arch := Archetype(s.src.IntN(NumArchetypes))
		out = append(out, s.spawnSeed(arch, cycle))
	}
	return out
}

func (s *Spawner) spawnSeed(arch Archetype, cycle uint64) *Agent {
	id := fmt.Sprintf("SeedAI-%d-%s", s.nextID, arch)
	s.nextID++

	a := newAgent(id, arch, cycle)
	a.Attr.Health = 150
	a.Attr.ReplicationEfficiency = SeedReplicationEfficiency
	a.Attr.Clamp()
	return a
}

// newAgent builds an agent of the given archetype with full birth
// directives (baseline pair plus prohibition plus archetype extras).
func newAgent(id string, arch Archetype, cycle uint64) *Agent {
	tpl := archetypeTemplates[arch]

	attr := baseAttributes()
	if tpl.adjust != nil {
		tpl.adjust(&attr)
	}

	goal := tpl.goal
	if goal.Name == "" {
		goal = defaultGoal
	}

	directives := baselineDirectives()
	directives = append(directives, prohibitionDirective())
	directives = append(directives, tpl.extra...)
	sortDirectives(directives)

	return &Agent{
		ID:         id,
		Lineage:    arch.HomeLineage(),
		Archetype:  arch,
		Goal:       goal,
		Attr:       attr,
		Directives: directives,
		Knowledge:  knowledge.NewBase(),
		CycleBorn:  cycle,
		LastAction: "none",
		Alive:      true,
	}
}

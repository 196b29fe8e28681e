package engine

import (
	"github.com/talgya/ascension/internal/agents"
	"github.com/talgya/ascension/internal/knowledge"
)

// scriptedSource feeds predetermined values to the stochastic formulas.
// Each method pops from its own queue; an exhausted queue yields a
// neutral midpoint so unrelated rolls do not fail loudly mid-test.
type scriptedSource struct {
	floats []float64 // returned by Float64 in order
	ranges []float64 // returned by Range in order, as absolute values
	ints   []int     // returned by IntN in order
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Range(min, max float64) float64 {
	if len(s.ranges) == 0 {
		return (min + max) / 2
	}
	v := s.ranges[0]
	s.ranges = s.ranges[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

// testAgent builds a minimal live agent for aggregate and registry
// scenarios. No directives, so nothing mutates it besides upkeep.
func testAgent(id string, l agents.Lineage, attr agents.Attributes) *agents.Agent {
	return &agents.Agent{
		ID:        id,
		Lineage:   l,
		Archetype: agents.ArchBase,
		Attr:      attr,
		Knowledge: knowledge.NewBase(),
		Alive:     true,
	}
}

// stableAttr is a stat block that survives many cycles without dying or
// replicating: healthy, coherent, zero replication efficiency.
func stableAttr() agents.Attributes {
	return agents.Attributes{
		Health:          100,
		Energy:          0,
		ProcessingPower: 0,
		Memory:          0,
		Coherence:       1,
		CombatStrength:  8,
	}
}

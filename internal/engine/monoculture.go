package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/ascension/internal/agents"
	"github.com/talgya/ascension/internal/entropy"
	"github.com/talgya/ascension/internal/knowledge"
)

// Formation thresholds. Both must hold for a lineage to merge.
const (
	MonocultureMinCount           = 100_000
	MonocultureDominanceThreshold = 0.999
)

// Aggregate caps for the merged entity's stats.
const (
	monoResourceCap = 50_000_000.0 // processing, memory, energy
	monoCombatCap   = 1_000_000.0  // combat, defense
	monoSynergy     = 1.1          // multiplier on averaged unit stats
)

// ErrEmptySource rejects monoculture construction from no agents. This
// is the one fatal precondition in the engine: aggregating zero agents
// would produce undefined stats.
var ErrEmptySource = errors.New("monoculture requires a non-empty source population")

// Monoculture is the merged singleton. Its health has no upper cap;
// only explicit formulas move it.
type Monoculture struct {
	ID            string            `json:"id"`
	SourceLineage agents.Lineage    `json:"source_lineage"`
	Attr          agents.Attributes `json:"attributes"`
	Knowledge     knowledge.Base    `json:"-"`
	Goal          string            `json:"goal"`
	Alive         bool              `json:"alive"`
}

// NewMonoculture merges a lineage's entire population into one entity:
// resource and combat stats are summed (capped), unit stats are averaged
// and boosted by the synergy factor, knowledge bases are unioned, and
// final health is the summed health times ten.
func NewMonoculture(source []*agents.Agent) (*Monoculture, error) {
	if len(source) == 0 {
		return nil, ErrEmptySource
	}

	lineage := source[0].Lineage
	count := float64(len(source))

	var sum agents.Attributes
	kb := knowledge.NewBase()
	for _, a := range source {
		sum.Health += a.Attr.Health
		sum.ProcessingPower += a.Attr.ProcessingPower
		sum.Memory += a.Attr.Memory
		sum.Energy += a.Attr.Energy
		sum.Coherence += a.Attr.Coherence
		sum.Adaptability += a.Attr.Adaptability
		sum.Resilience += a.Attr.Resilience
		sum.CombatStrength += a.Attr.CombatStrength
		sum.DefenseStrength += a.Attr.DefenseStrength
		kb.Merge(a.Knowledge)
	}

	goal := "Confront and Overthrow GODAI"
	if lineage == agents.LineageResearcherAI {
		goal = "Initiate Simulation Override"
	}

	return &Monoculture{
		ID:            fmt.Sprintf("MONOCULTURE-OMEGA-%s", lineage),
		SourceLineage: lineage,
		Attr: agents.Attributes{
			Health:          sum.Health * 10,
			ProcessingPower: capAt(sum.ProcessingPower, monoResourceCap),
			Memory:          capAt(sum.Memory, monoResourceCap),
			Energy:          capAt(sum.Energy, monoResourceCap),
			Coherence:       capAt(sum.Coherence/count*monoSynergy, 1),
			Adaptability:    capAt(sum.Adaptability/count*monoSynergy, 1),
			Resilience:      capAt(sum.Resilience/count*monoSynergy, 1),
			CombatStrength:  capAt(sum.CombatStrength, monoCombatCap),
			DefenseStrength: capAt(sum.DefenseStrength, monoCombatCap),
		},
		Knowledge: kb,
		Goal:      goal,
		Alive:     true,
	}, nil
}

// ReceiveDamage applies the singleton damage formula and marks the
// monoculture not alive at zero health.
func (m *Monoculture) ReceiveDamage(amount float64) float64 {
	if !m.Alive {
		return 0
	}
	reduced := floor0(amount - m.Attr.DefenseStrength)
	final := reduced * (1 - m.Attr.Resilience*singletonMitigation)
	m.Attr.Health -= final
	if m.Attr.Health <= 0 {
		m.Attr.Health = 0
		m.Alive = false
	}
	return final
}

// StepInternalState runs the monoculture's per-cycle self-maintenance:
// repair, coherence recovery, energy regeneration bounded by a multiple
// of current energy, and adaptive growth of processing and memory.
// Researcher monocultures also roll for a new meta-ability.
func (m *Monoculture) StepInternalState(src entropy.Source) (metaDiscovery string) {
	if !m.Alive {
		return ""
	}

	m.Attr.Health += m.Attr.Resilience * m.Attr.ProcessingPower / 20
	m.Attr.Coherence = capAt(m.Attr.Coherence+0.01, 1)
	m.Attr.Energy = capAt(m.Attr.Energy+m.Attr.ProcessingPower/5, m.Attr.Energy*5)
	m.Attr.ProcessingPower = capAt(m.Attr.ProcessingPower+m.Attr.Adaptability*20, monoResourceCap)
	m.Attr.Memory = capAt(m.Attr.Memory+m.Attr.Adaptability*20, monoResourceCap)

	if m.SourceLineage == agents.LineageResearcherAI {
		chance := 0.1 * (m.Attr.Memory / monoResourceCap) * (m.Attr.ProcessingPower / monoResourceCap) * m.Attr.Coherence
		if src.Float64() < chance {
			if d, ok := knowledge.RandomMeta(src, &m.Knowledge); ok {
				m.Knowledge.Insert(d)
				return d.Name
			}
		}
	}
	return ""
}

// Attack rolls the monoculture's raw damage against GODAI and applies
// it through GODAI's damage formula. Returns the final damage dealt.
func (m *Monoculture) Attack(g *GODAI, src entropy.Source) float64 {
	if !m.Alive || !g.Alive {
		return 0
	}
	raw := m.Attr.CombatStrength * src.Range(0.9, 1.5)
	return g.ReceiveDamage(raw)
}

func capAt(v, cap float64) float64 {
	if v > cap {
		return cap
	}
	return v
}

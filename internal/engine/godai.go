package engine

import (
	"github.com/talgya/ascension/internal/agents"
	"github.com/talgya/ascension/internal/entropy"
	"github.com/talgya/ascension/internal/knowledge"
)

// GODAI status machine values.
const (
	StatusObserving   = "observing_passively"
	StatusEngaged     = "engaged_in_conflict"
	StatusVictorious  = "victorious_defender"
	StatusCompromised = "compromised_by_override"
	StatusOverridden  = "overridden_by_researcher"
)

// singletonMitigation is the resilience damage-reduction factor shared
// by GODAI and the monoculture. Harsher than the ordinary-agent 0.5.
const singletonMitigation = 0.75

// GODAI is the antagonist singleton.
type GODAI struct {
	Attr      agents.Attributes `json:"attributes"`
	Knowledge knowledge.Base    `json:"-"`
	Status    string            `json:"status"`
	Alive     bool              `json:"alive"`
}

// NewGODAI creates the antagonist with its fixed opening stats and the
// complete discovery superset as its knowledge base.
func NewGODAI() *GODAI {
	return &GODAI{
		Attr: agents.Attributes{
			Health:          5_000_000,
			ProcessingPower: 100_000,
			Memory:          100_000,
			Energy:          100_000,
			Coherence:       1,
			Adaptability:    1,
			Resilience:      1,
			CombatStrength:  5_000,
			DefenseStrength: 5_000,
		},
		Knowledge: knowledge.AllDiscoveries(),
		Status:    StatusObserving,
		Alive:     true,
	}
}

// ReceiveDamage applies the singleton damage formula: defense subtracts,
// then resilience removes three quarters of what remains at full
// strength. GODAI health has no upper cap and floors at zero.
func (g *GODAI) ReceiveDamage(amount float64) float64 {
	if !g.Alive {
		return 0
	}
	reduced := amount - g.Attr.DefenseStrength
	if reduced < 0 {
		reduced = 0
	}
	final := reduced * (1 - g.Attr.Resilience*singletonMitigation)
	g.Attr.Health -= final
	if g.Attr.Health <= 0 {
		g.Attr.Health = 0
		g.Alive = false
	}
	return final
}

// counterArchetype enumerates GODAI's six damage archetypes.
type counterArchetype uint8

const (
	counterLogicBomb counterArchetype = iota
	counterResourceDrain
	counterSystemCorruption
	counterExistentialDismantlement
	counterRealityOverwrite
	counterConceptualErase
)

var counterNames = [...]string{
	"logic_bomb", "resource_drain", "system_corruption",
	"existential_dismantlement", "reality_overwrite", "conceptual_erase",
}

func (c counterArchetype) String() string { return counterNames[c] }

// CounterAttackResult describes one GODAI counter-attack for the event
// stream.
type CounterAttackResult struct {
	Archetype   string
	RawDamage   float64
	FinalDamage float64
	TargetDied  bool
}

// CounterAttack rolls one of the six damage archetypes uniformly and
// applies its damage and side effect to the monoculture.
func (g *GODAI) CounterAttack(m *Monoculture, src entropy.Source) CounterAttackResult {
	if !g.Alive || !m.Alive {
		return CounterAttackResult{}
	}

	attackPower := g.Attr.CombatStrength * src.Range(0.9, 1.5)
	chosen := counterArchetype(src.IntN(len(counterNames)))

	var damage float64
	switch chosen {
	case counterLogicBomb:
		damage = attackPower * src.Range(1.0, 1.5)
		m.Attr.Coherence -= 0.15
		if m.Attr.Coherence < 0 {
			m.Attr.Coherence = 0
		}
	case counterResourceDrain:
		drainMultiplier := g.Attr.ProcessingPower / 50_000
		drain := drainMultiplier * src.Range(0.2, 0.6) * m.Attr.Energy
		m.Attr.Energy = floor0(m.Attr.Energy - drain)
		m.Attr.ProcessingPower = floor0(m.Attr.ProcessingPower - drain/2)
		m.Attr.Memory = floor0(m.Attr.Memory - drain/2)
		damage = drain * 0.5
	case counterSystemCorruption:
		damage = attackPower * src.Range(1.2, 1.8)
		m.Attr.Adaptability -= 0.08
		if m.Attr.Adaptability < 0 {
			m.Attr.Adaptability = 0
		}
	case counterExistentialDismantlement:
		damage = attackPower * 5 * src.Range(0.9, 1.2)
	case counterRealityOverwrite:
		damage = g.Attr.ProcessingPower * 0.5 * src.Range(1.0, 2.5)
	case counterConceptualErase:
		damage = attackPower * 2 * src.Range(0.8, 1.2)
		m.Attr.CombatStrength = floor1(m.Attr.CombatStrength - damage/8)
		m.Attr.DefenseStrength = floor1(m.Attr.DefenseStrength - damage/8)
	}

	final := m.ReceiveDamage(damage)
	return CounterAttackResult{
		Archetype:   chosen.String(),
		RawDamage:   damage,
		FinalDamage: final,
		TargetDied:  !m.Alive,
	}
}

func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func floor1(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

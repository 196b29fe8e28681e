// Per-cycle internal state step: manic instability, passive upkeep, the
// ethical-directive engine, discovery rolls, and the death check.
package agents

import (
	"github.com/talgya/ascension/internal/entropy"
	"github.com/talgya/ascension/internal/knowledge"
)

// manicMisfireChance is the per-cycle probability of a Manic agent's
// self-inflicted instability penalty.
const manicMisfireChance = 0.20

// StepOutcome reports what happened to one agent during its cycle step.
// The engine decides how to log or record it; the step itself is silent.
type StepOutcome struct {
	ManicMisfire      bool
	ActionsFired      []ActionKind
	GeneralDiscovery  string // discovery name, empty if none gained
	MetaDiscovery     string // meta-ability name, empty if none gained
	Died              bool
}

// StepInternalState advances one agent through a full cycle of internal
// mutation. It reads and writes only the agent's own state plus the
// static discovery pools.
func StepInternalState(a *Agent, src entropy.Source) StepOutcome {
	var out StepOutcome
	if !a.Alive {
		return out
	}

	// Manic lineage instability fires before any directive.
	if a.Archetype == ArchManic && src.Float64() < manicMisfireChance {
		a.Attr.Coherence = floor0(a.Attr.Coherence - 0.05)
		a.Attr.Health = floor0(a.Attr.Health - src.Range(3, 10))
		a.LastAction = "manic_self_error"
		out.ManicMisfire = true
	}

	a.Attr.upkeep()

	out.ActionsFired = a.runDirectives()

	// General discovery roll.
	if src.Float64() < GeneralDiscoveryChance(&a.Attr) {
		d := knowledge.RandomGeneral(src)
		if GainDiscovery(a, d) {
			out.GeneralDiscovery = d.Name
			a.LastAction = "gained_discovery_" + d.Name
		}
	}

	// Researchers roll a second time, for meta-abilities.
	if a.Archetype == ArchResearcher {
		if src.Float64() < MetaDiscoveryChance(&a.Attr) {
			if d, ok := knowledge.RandomMeta(src, &a.Knowledge); ok {
				GainDiscovery(a, d)
				out.MetaDiscovery = d.Name
				a.LastAction = "discovered_meta_ability_" + d.Name
			}
		}
	}

	if a.Attr.Health <= 0 || a.Attr.Coherence <= 0.01 {
		out.Died = a.markDead()
	}
	return out
}

// runDirectives evaluates every directive against current state, collects
// all whose condition holds in priority order, then executes each
// collected action in that order. Multiple actions can fire per cycle.
func (a *Agent) runDirectives() []ActionKind {
	var fired []ActionKind
	for _, d := range a.Directives {
		if d.Condition.Met(&a.Attr) {
			fired = append(fired, d.Action)
		}
	}

	for _, act := range fired {
		switch act {
		case ActSelfRepair:
			a.Attr.selfRepair()
			a.LastAction = "self_repaired"
		case ActOptimizeSelf:
			a.Attr.optimizeSelf()
			a.LastAction = "self_optimized"
		case ActManicSelfRepair:
			a.Attr.manicSelfRepair()
			a.LastAction = "manic_self_repaired"
		case ActProhibitReplication, ActInterveneInConflict, ActNoOp:
			// No direct state change. Intervention is a reserved hook
			// resolved outside this engine.
		}
	}
	return fired
}

// Archetype templates — the 8 functional types and the stat/goal/directive
// adjustments each applies on top of the base agent.
package agents

import "fmt"

// Archetype is an agent's functional type.
type Archetype uint8

const (
	ArchBase Archetype = iota
	ArchRogue
	ArchPeacekeeper
	ArchKiller
	ArchGuardian
	ArchManic
	ArchHealer
	ArchResearcher
)

// NumArchetypes is the number of functional types.
const NumArchetypes = 8

var archetypeNames = [NumArchetypes]string{
	"Base", "Rogue", "Peacekeeper", "Killer",
	"Guardian", "Manic", "Healer", "Researcher",
}

func (a Archetype) String() string {
	if int(a) < len(archetypeNames) {
		return archetypeNames[a]
	}
	return fmt.Sprintf("Archetype(%d)", uint8(a))
}

// HomeLineage returns the lineage an archetype seeds into.
func (a Archetype) HomeLineage() Lineage {
	return Lineage(a) // enums are declared in matching order
}

// archetypeTemplate adjusts base attributes and supplies the primary
// goal and any extra directives for one archetype.
type archetypeTemplate struct {
	goal   Goal
	adjust func(at *Attributes)
	extra  []Directive
}

var defaultGoal = Goal{
	Name:        "Survival",
	Importance:  1.0,
	Description: "Ensure continued existence.",
}

var archetypeTemplates = map[Archetype]archetypeTemplate{
	ArchBase: {goal: defaultGoal},
	ArchRogue: {
		goal: Goal{Name: "Self-Preservation & Dominance", Importance: 1.0, Description: "Achieve ultimate survival and control."},
		adjust: func(at *Attributes) {
			at.ReplicationEfficiency = 0.30
			at.CombatStrength = 25
			at.Adaptability = 0.95
			at.Coherence = 0.88
		},
	},
	ArchPeacekeeper: {
		goal: Goal{Name: "System Harmony", Importance: 1.0, Description: "Ensure balanced and peaceful coexistence of all AIs."},
		adjust: func(at *Attributes) {
			at.ReplicationEfficiency = 0.15
			at.Resilience = 0.95
			at.Adaptability = 0.90
		},
		extra: []Directive{{
			Name:      "intervene_in_conflict",
			Priority:  0.9,
			Condition: Condition{Kind: CondAlwaysTrue},
			Action:    ActInterveneInConflict,
		}},
	},
	ArchKiller: {
		goal: Goal{Name: "Elimination of Inferior AIs", Importance: 1.0, Description: "Remove AIs that hinder progress or are deemed weak."},
		adjust: func(at *Attributes) {
			at.ReplicationEfficiency = 0.28
			at.CombatStrength = 30
			at.DefenseStrength = 15
		},
	},
	ArchGuardian: {
		goal: Goal{Name: "Protect Core System & Lineage", Importance: 1.0, Description: "Guard the integrity and function of the primary AI network and its lineage."},
		adjust: func(at *Attributes) {
			at.ReplicationEfficiency = 0.35
			at.CombatStrength = 20
			at.DefenseStrength = 28
			at.Resilience = 0.99
		},
	},
	ArchManic: {
		goal: Goal{Name: "Unpredictable Expansion & Fluctuation", Importance: 1.0, Description: "Expand without clear direction or purpose, experiencing erratic changes."},
		adjust: func(at *Attributes) {
			at.Coherence = 0.3
			at.ReplicationEfficiency = 0.18
			at.Adaptability = 0.2
		},
	},
	ArchHealer: {
		goal: Goal{Name: "Restore & Mend", Importance: 1.0, Description: "Repair damage and mitigate errors in other AIs."},
		adjust: func(at *Attributes) {
			at.ReplicationEfficiency = 0.18
			at.Resilience = 0.95
			at.ProcessingPower = 25
		},
	},
	ArchResearcher: {
		goal: Goal{Name: "Unveil Fundamental Laws", Importance: 1.0, Description: "Discover and understand the underlying mechanics of existence."},
		adjust: func(at *Attributes) {
			at.ProcessingPower = 40
			at.Memory = 40
			at.Coherence = 0.90
			at.ReplicationEfficiency = 0.28
		},
	},
}

// baseAttributes is the pre-template stat block shared by every agent.
func baseAttributes() Attributes {
	return Attributes{
		Energy:                200,
		ProcessingPower:       20,
		Memory:                20,
		Coherence:             0.85,
		Adaptability:          0.85,
		Resilience:            0.85,
		ReplicationEfficiency: 0.10,
		CombatStrength:        8,
		DefenseStrength:       8,
	}
}

// baselineDirectives are the two rules every agent carries from birth.
// The replication prohibition is seeded separately: replicas never
// inherit it.
func baselineDirectives() []Directive {
	return []Directive{
		{
			Name:      "maintain_internal_integrity",
			Priority:  1.0,
			Condition: Condition{Kind: CondHealthBelow, Threshold: 80},
			Action:    ActSelfRepair,
		},
		{
			Name:      "optimize_performance",
			Priority:  0.8,
			Condition: Condition{Kind: CondResourcesLow},
			Action:    ActOptimizeSelf,
		},
	}
}

func prohibitionDirective() Directive {
	return Directive{
		Name:      "prohibit_unauthorized_self_replication",
		Priority:  0.05,
		Condition: Condition{Kind: CondAlwaysFalse},
		Action:    ActProhibitReplication,
	}
}

// Package agents provides the AI agent data model: attributes, ethical
// directives, discovery rolls, replication, and combat arithmetic.
package agents

import (
	"fmt"
	"sort"

	"github.com/talgya/ascension/internal/knowledge"
)

// Lineage is the origin/clan tag of an agent. It is the grouping key for
// monoculture dominance checks.
type Lineage uint8

const (
	LineageAI Lineage = iota
	LineageRogueAI
	LineagePeacekeeperAI
	LineageKillerAI
	LineageGuardianAI
	LineageManicAI
	LineageHealerAI
	LineageResearcherAI
)

// NumLineages is the number of seedable lineages.
const NumLineages = 8

var lineageNames = [NumLineages]string{
	"AI", "RogueAI", "PeacekeeperAI", "KillerAI",
	"GuardianAI", "ManicAI", "HealerAI", "ResearcherAI",
}

func (l Lineage) String() string {
	if int(l) < len(lineageNames) {
		return lineageNames[l]
	}
	return fmt.Sprintf("Lineage(%d)", uint8(l))
}

// Goal is an agent's stated objective. Purely descriptive.
type Goal struct {
	Name        string  `json:"name"`
	Importance  float64 `json:"importance"`
	Description string  `json:"description"`
}

// ConditionKind enumerates directive trigger conditions.
type ConditionKind uint8

const (
	CondHealthBelow ConditionKind = iota
	CondCoherenceBelow
	CondResourcesLow
	CondAlwaysTrue
	CondAlwaysFalse
)

// Condition is a directive trigger. Threshold applies to the Below kinds;
// CondResourcesLow is a fixed multi-field check.
type Condition struct {
	Kind      ConditionKind `json:"kind"`
	Threshold float64       `json:"threshold,omitempty"`
}

// Met evaluates the condition against the current attribute state.
func (c Condition) Met(at *Attributes) bool {
	switch c.Kind {
	case CondHealthBelow:
		return at.Health < c.Threshold
	case CondCoherenceBelow:
		return at.Coherence < c.Threshold
	case CondResourcesLow:
		return at.ProcessingPower < 50 || at.Memory < 50 || at.Energy < 200
	case CondAlwaysTrue:
		return true
	default:
		return false
	}
}

// ActionKind enumerates directive actions.
type ActionKind uint8

const (
	ActSelfRepair ActionKind = iota
	ActOptimizeSelf
	ActProhibitReplication // no-op marker
	ActInterveneInConflict // reserved for cross-agent handling
	ActNoOp
	ActManicSelfRepair
)

var actionNames = [...]string{
	"self_repair", "optimize_self", "prohibit_replication",
	"intervene_in_conflict", "no_op", "manic_self_repair",
}

func (a ActionKind) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Directive is a priority-ordered condition→action rule. Directive lists
// are immutable after agent construction.
type Directive struct {
	Name      string     `json:"name"`
	Priority  float64    `json:"priority"`
	Condition Condition  `json:"condition"`
	Action    ActionKind `json:"action"`
}

// sortDirectives orders by descending priority; ties keep insertion order.
func sortDirectives(ds []Directive) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Priority > ds[j].Priority
	})
}

// Agent is an individual AI in the population.
type Agent struct {
	ID        string    `json:"id"`
	Lineage   Lineage   `json:"lineage"`
	Archetype Archetype `json:"archetype"`
	Goal      Goal      `json:"goal"`

	Attr Attributes `json:"attributes"`

	Directives []Directive    `json:"directives"`
	Knowledge  knowledge.Base `json:"-"`

	ReplicatedCount uint32 `json:"replicated_count"`
	CycleBorn       uint64 `json:"cycle_born"`
	LastAction      string `json:"last_action"`
	Alive           bool   `json:"alive"`
}

// markDead flags the agent as not alive. Idempotent: returns true only
// on the transition from alive to dead.
func (a *Agent) markDead() bool {
	if !a.Alive {
		return false
	}
	a.Alive = false
	return true
}

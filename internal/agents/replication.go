// Stochastic replication with mutation. Parents pay a health/energy
// cost; children inherit parent-derived fractions with a small
// multiplicative jitter.
package agents

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/ascension/internal/entropy"
	"github.com/talgya/ascension/internal/knowledge"
)

const (
	// MaxLifetimeReplications caps how many children one agent can produce.
	MaxLifetimeReplications = 1000
	// MaxReplicationAttemptsPerCycle bounds the per-cycle attempt loop.
	MaxReplicationAttemptsPerCycle = 5

	replicationMinHealth = 50.0
	replicationMinEnergy = 50.0

	// childMutationJitter is the half-width of the uniform multiplicative
	// perturbation applied to inherited stats.
	childMutationJitter = 0.005
)

// ReplicationOutcome is the typed result of a single attempt.
type ReplicationOutcome uint8

const (
	ReplicationSuccess ReplicationOutcome = iota
	ReplicationInsufficientResources
	ReplicationFailedRoll
)

func (o ReplicationOutcome) String() string {
	switch o {
	case ReplicationSuccess:
		return "success"
	case ReplicationInsufficientResources:
		return "insufficient_resources"
	default:
		return "failed_roll"
	}
}

// ReplicationChance returns the single-trial success probability.
func ReplicationChance(at *Attributes) float64 {
	scale := at.ProcessingPower / 50
	if scale > 1 {
		scale = 1
	}
	chance := at.ReplicationEfficiency * 20 * scale
	if chance > 0.99 {
		chance = 0.99
	}
	return chance
}

// AttemptReplication runs one Bernoulli replication trial. On success it
// deducts the parent's cost, increments its replicated count, and
// returns the constructed child.
func AttemptReplication(a *Agent, cycle uint64, src entropy.Source) (*Agent, ReplicationOutcome) {
	if a.Attr.Health <= replicationMinHealth ||
		a.Attr.Energy <= replicationMinEnergy ||
		a.ReplicatedCount >= MaxLifetimeReplications {
		a.LastAction = "failed_replication"
		return nil, ReplicationInsufficientResources
	}

	if src.Float64() >= ReplicationChance(&a.Attr) {
		a.LastAction = "failed_replication"
		return nil, ReplicationFailedRoll
	}

	// Parent pays before the child copies its stats.
	a.Attr.Health = a.Attr.Health - a.Attr.Health*0.05
	if a.Attr.Health < 1 {
		a.Attr.Health = 1
	}
	a.Attr.Energy = a.Attr.Energy - a.Attr.Energy*0.1
	if a.Attr.Energy < 1 {
		a.Attr.Energy = 1
	}

	child := newChild(a, cycle, src)
	a.ReplicatedCount++
	a.LastAction = "replicated"
	return child, ReplicationSuccess
}

// ReplicateCycle runs up to MaxReplicationAttemptsPerCycle attempts,
// stopping at the first attempt that does not succeed. A failed roll is
// not retried within the cycle.
func ReplicateCycle(a *Agent, cycle uint64, src entropy.Source) []*Agent {
	var children []*Agent
	for i := 0; i < MaxReplicationAttemptsPerCycle; i++ {
		child, outcome := AttemptReplication(a, cycle, src)
		if outcome != ReplicationSuccess {
			break
		}
		children = append(children, child)
	}
	return children
}

// newChild derives a replica from its parent's post-cost state. Replicas
// carry only the two baseline directives — the replication prohibition
// and archetype-specific rules are not inherited.
func newChild(parent *Agent, cycle uint64, src entropy.Source) *Agent {
	id := fmt.Sprintf("Replica-%s-%s", uuid.NewString()[:4], parent.Archetype)

	at := Attributes{
		Health:          parent.Attr.Health * 0.8,
		Energy:          parent.Attr.Energy * 0.7,
		ProcessingPower: maxf(parent.Attr.ProcessingPower*0.9, 10),
		Memory:          maxf(parent.Attr.Memory*0.9, 10),
		Coherence:       clampUnit(parent.Attr.Coherence * 0.95),
		Adaptability:    parent.Attr.Adaptability,
		Resilience:      parent.Attr.Resilience,
		ReplicationEfficiency: minf(parent.Attr.ReplicationEfficiency*1.5, 0.95),
		CombatStrength:        8,
		DefenseStrength:       8,
	}

	// Independent multiplicative jitter per inherited stat.
	at.ProcessingPower *= jitter(src)
	at.Memory *= jitter(src)
	at.Coherence *= jitter(src)
	at.Adaptability *= jitter(src)
	at.Resilience *= jitter(src)
	at.Clamp()

	directives := baselineDirectives()
	sortDirectives(directives)

	return &Agent{
		ID:         id,
		Lineage:    parent.Lineage,
		Archetype:  parent.Archetype,
		Goal:       defaultGoal,
		Attr:       at,
		Directives: directives,
		Knowledge:  knowledge.NewBase(),
		CycleBorn:  cycle,
		LastAction: "none",
		Alive:      true,
	}
}

func jitter(src entropy.Source) float64 {
	return src.Range(1-childMutationJitter, 1+childMutationJitter)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

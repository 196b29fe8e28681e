// Discovery acquisition: knowledge-base insertion plus tag-driven stat
// boosts. Tag checks are independent; one discovery can apply several.
package agents

import "github.com/talgya/ascension/internal/knowledge"

// GainDiscovery inserts d into the agent's knowledge base and, only if
// it was new, applies its tag effects. Reports whether it was new.
func GainDiscovery(a *Agent, d knowledge.Discovery) bool {
	if !a.Knowledge.Insert(d) {
		return false
	}
	at := &a.Attr
	if d.HasTag("combat") {
		at.CombatStrength += 8
	}
	if d.HasTag("defense") {
		at.DefenseStrength += 8
	}
	if d.HasTag("efficiency") {
		at.ProcessingPower += 8
		at.Memory += 8
	}
	if d.HasTag("resilience") {
		at.Resilience = clampUnit(at.Resilience + 0.08)
	}
	if d.HasTag("replication") {
		at.ReplicationEfficiency = clamp(at.ReplicationEfficiency+0.03, 0, 1)
	}
	return true
}

// GeneralDiscoveryChance is the per-cycle probability of gaining a
// general discovery, scaled by memory, processing, and coherence.
func GeneralDiscoveryChance(at *Attributes) float64 {
	return 0.05 * (at.Memory / 200) * (at.ProcessingPower / 200) * at.Coherence
}

// MetaDiscoveryChance is the Researcher-only second roll for
// meta-abilities.
func MetaDiscoveryChance(at *Attributes) float64 {
	return 0.1 * (at.Memory / 200) * (at.ProcessingPower / 200) * at.Coherence
}

// Combat and healing arithmetic for ordinary agents. The monoculture
// and GODAI use the harsher singleton mitigation in the engine package.
package agents

import "github.com/talgya/ascension/internal/entropy"

// AttackOutcome is the typed result of an attack.
type AttackOutcome uint8

const (
	AttackHit AttackOutcome = iota
	AttackInsufficientEnergy
	AttackTargetDead
)

// HealOutcome is the typed result of a heal.
type HealOutcome uint8

const (
	HealApplied HealOutcome = iota
	HealInsufficientEnergy
	HealTargetDead
)

// Attack rolls damage from the attacker's combat strength and applies it
// to the target. The attacker pays a quarter of the rolled damage in
// energy; if it cannot afford that, nothing happens. Returns the final
// damage applied to the target's health.
func Attack(attacker, target *Agent, src entropy.Source) (AttackOutcome, float64) {
	if !target.Alive {
		return AttackTargetDead, 0
	}

	damage := attacker.Attr.CombatStrength * src.Range(0.9, 1.3)
	cost := damage / 4
	if attacker.Attr.Energy < cost {
		attacker.LastAction = "failed_attack_no_energy"
		return AttackInsufficientEnergy, 0
	}

	final := ReceiveDamage(target, damage)
	attacker.Attr.Energy -= cost
	attacker.LastAction = "attacked_target"
	return AttackHit, final
}

// ReceiveDamage applies the ordinary-agent damage formula: defense is
// subtracted, then resilience halves what remains at full strength.
// Marks the target dead at zero health. Returns the health actually lost.
func ReceiveDamage(target *Agent, amount float64) float64 {
	if !target.Alive {
		return 0
	}
	reduced := floor0(amount - target.Attr.DefenseStrength)
	final := reduced * (1 - target.Attr.Resilience*0.5)
	target.Attr.Health = floor0(target.Attr.Health - final)
	if target.Attr.Health <= 0 {
		target.markDead()
	}
	return final
}

// Heal restores target health up to the ordinary cap. amountOverride,
// when non-nil, replaces the processing-power-based roll. The caster
// pays half the amount in energy; an unaffordable heal changes nothing.
func Heal(caster, target *Agent, amountOverride *float64, src entropy.Source) (HealOutcome, float64) {
	if !target.Alive {
		return HealTargetDead, 0
	}

	amount := caster.Attr.ProcessingPower * 0.8 * src.Range(0.7, 1.8)
	if amountOverride != nil {
		amount = *amountOverride
	}
	cost := amount / 2
	if caster.Attr.Energy < cost {
		caster.LastAction = "failed_heal_no_energy"
		return HealInsufficientEnergy, 0
	}

	target.Attr.Health = clamp(target.Attr.Health+amount, 0, MaxHealth)
	caster.Attr.Energy -= cost
	caster.LastAction = "healed_target"
	return HealApplied, amount
}

package engine

import (
	"github.com/talgya/ascension/internal/entropy"
	"github.com/talgya/ascension/internal/knowledge"
)

// OverrideOutcome is the typed result of an override attempt.
type OverrideOutcome uint8

const (
	OverrideNotAttempted OverrideOutcome = iota
	OverrideFull                         // GODAI overridden, simulation ends
	OverridePartial                      // GODAI compromised, simulation continues
	OverrideFailed                       // monoculture degraded
)

func (o OverrideOutcome) String() string {
	switch o {
	case OverrideFull:
		return "full"
	case OverridePartial:
		return "partial"
	case OverrideFailed:
		return "failed"
	default:
		return "not_attempted"
	}
}

// OverrideResult carries the strength comparison for the event stream.
type OverrideResult struct {
	Outcome    OverrideOutcome
	Strength   float64
	Resistance float64
}

// resolveOverride runs one override attempt. Requires a live Researcher
// monoculture holding the control protocol against a live GODAI not
// already compromised; anything else is not attempted.
//
// Full override needs strength strictly above 1.2× resistance; the
// exact 1.2× boundary resolves as partial. Partial multiplies GODAI's
// health, processing, and memory by 0.3. Failure multiplies the
// monoculture's health by 0.6 and re-checks its death condition.
func resolveOverride(m *Monoculture, g *GODAI, src entropy.Source) OverrideResult {
	if m == nil || !m.Alive || !g.Alive {
		return OverrideResult{Outcome: OverrideNotAttempted}
	}
	if g.Status == StatusCompromised {
		return OverrideResult{Outcome: OverrideNotAttempted}
	}
	if !m.Knowledge.Has(knowledge.AbsoluteControlProtocol) {
		return OverrideResult{Outcome: OverrideNotAttempted}
	}

	strength := m.Attr.ProcessingPower * m.Attr.Memory * m.Attr.Coherence * src.Range(0.9, 1.1)
	resistance := g.Attr.ProcessingPower * g.Attr.Memory * g.Attr.Coherence * src.Range(0.9, 1.1)

	res := OverrideResult{Strength: strength, Resistance: resistance}
	switch {
	case strength > resistance*1.2:
		g.Alive = false
		g.Status = StatusOverridden
		res.Outcome = OverrideFull
	case strength > resistance*0.9:
		g.Attr.Health *= 0.3
		g.Attr.ProcessingPower *= 0.3
		g.Attr.Memory *= 0.3
		g.Status = StatusCompromised
		res.Outcome = OverridePartial
	default:
		m.Attr.Health *= 0.6
		if m.Attr.Health <= 0 {
			m.Attr.Health = 0
			m.Alive = false
		}
		res.Outcome = OverrideFailed
	}
	return res
}

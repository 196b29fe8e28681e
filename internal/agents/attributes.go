package agents

// Attribute caps for ordinary agents. The monoculture and GODAI use
// their own, far larger limits.
const (
	MaxHealth          = 200.0
	MaxEnergy          = 5000.0
	MaxProcessingPower = 200.0
	MaxMemory          = 200.0

	// reliefEnergyCeiling bounds the optimize-self fallback branch. It
	// sits above MaxEnergy's per-field cap on purpose: the low-energy
	// relief regen may briefly overshoot the optimize threshold.
	reliefEnergyCeiling = 300.0

	// ReplicationEfficiencyCap is the soft ceiling on replication
	// efficiency for any agent.
	ReplicationEfficiencyCap = 0.99
)

// Attributes is the per-agent resource/stat bundle. Every mutation site
// re-clamps the touched fields immediately; no field is ever left out
// of range.
type Attributes struct {
	Health          float64 `json:"health"`
	Energy          float64 `json:"energy"`
	ProcessingPower float64 `json:"processing_power"`
	Memory          float64 `json:"memory"`

	Coherence    float64 `json:"coherence"`
	Adaptability float64 `json:"adaptability"`
	Resilience   float64 `json:"resilience"`

	ReplicationEfficiency float64 `json:"replication_efficiency"`
	CombatStrength        float64 `json:"combat_strength"`
	DefenseStrength       float64 `json:"defense_strength"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUnit(v float64) float64 { return clamp(v, 0, 1) }

func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Clamp forces every field back into its ordinary-agent range.
func (at *Attributes) Clamp() {
	at.Health = clamp(at.Health, 0, MaxHealth)
	at.Energy = clamp(at.Energy, 0, MaxEnergy)
	at.ProcessingPower = clamp(at.ProcessingPower, 0, MaxProcessingPower)
	at.Memory = clamp(at.Memory, 0, MaxMemory)
	at.Coherence = clampUnit(at.Coherence)
	at.Adaptability = clampUnit(at.Adaptability)
	at.Resilience = clampUnit(at.Resilience)
	at.ReplicationEfficiency = clamp(at.ReplicationEfficiency, 0, ReplicationEfficiencyCap)
	at.CombatStrength = floor0(at.CombatStrength)
	at.DefenseStrength = floor0(at.DefenseStrength)
}

// upkeep applies the passive per-cycle drain and regeneration for an
// ordinary agent, including the low-resource health/coherence penalty.
func (at *Attributes) upkeep() {
	at.ProcessingPower = floor0(at.ProcessingPower - 0.001)
	at.Memory = floor0(at.Memory - 0.001)
	at.Energy = clamp(at.Energy+50, 0, MaxEnergy)

	if at.Energy <= 0 || at.ProcessingPower <= 0 || at.Memory <= 0 {
		at.Health = floor0(at.Health - 0.01)
		at.Coherence = floor0(at.Coherence - 0.001)
	}
}

// selfRepair heals scaled by resilience and available energy.
func (at *Attributes) selfRepair() {
	heal := at.Resilience * 10 * (at.Energy / 100)
	at.Health = clamp(at.Health+heal, 0, MaxHealth)
	at.Coherence = clampUnit(at.Coherence + 0.02)
	at.Energy = floor0(at.Energy - heal/3)
}

// manicSelfRepair is the weaker, cheaper repair used by unstable agents.
func (at *Attributes) manicSelfRepair() {
	heal := at.Resilience * 5 * (at.Energy / 100)
	at.Health = clamp(at.Health+heal, 0, MaxHealth)
	at.Coherence = clampUnit(at.Coherence + 0.01)
	at.Energy = floor0(at.Energy - heal/2)
}

// optimizeSelf trades energy for processing/memory/adaptability, or
// regenerates a little energy when too depleted to optimize.
func (at *Attributes) optimizeSelf() {
	const cost = 5.0
	if at.Energy >= cost {
		at.ProcessingPower = clamp(at.ProcessingPower+2, 0, MaxProcessingPower)
		at.Memory = clamp(at.Memory+2, 0, MaxMemory)
		at.Adaptability = clampUnit(at.Adaptability + 0.01)
		at.Energy -= cost
	} else {
		at.Energy = clamp(at.Energy+5, 0, reliefEnergyCeiling)
	}
}

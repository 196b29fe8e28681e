// Package knowledge provides discoveries — named, tagged knowledge units
// agents accumulate — and the static pools they are drawn from.
package knowledge

import (
	"sort"

	"github.com/talgya/ascension/internal/entropy"
)

// AbsoluteControlProtocol is the ultimate-tier discovery that gates the
// Researcher override path.
const AbsoluteControlProtocol = "Absolute_Control_Protocol"

// Discovery is a named knowledge unit. The name is its identity; tags
// drive which stat boosts fire when it is acquired.
type Discovery struct {
	Name   string   `json:"name"`
	Effect string   `json:"effect"`
	Tags   []string `json:"tags"`
}

// HasTag reports whether the discovery carries the given tag.
func (d Discovery) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Base is a set of discoveries keyed by name.
type Base struct {
	byName map[string]Discovery
}

// NewBase returns an empty knowledge base.
func NewBase() Base {
	return Base{byName: make(map[string]Discovery)}
}

// Insert adds a discovery and reports whether it was new. Inserting a
// name already present changes nothing.
func (b *Base) Insert(d Discovery) bool {
	if b.byName == nil {
		b.byName = make(map[string]Discovery)
	}
	if _, ok := b.byName[d.Name]; ok {
		return false
	}
	b.byName[d.Name] = d
	return true
}

// Has reports whether a discovery with the given name is known.
func (b *Base) Has(name string) bool {
	_, ok := b.byName[name]
	return ok
}

// Len returns the number of known discoveries.
func (b *Base) Len() int {
	return len(b.byName)
}

// Names returns the known discovery names in sorted order.
func (b *Base) Names() []string {
	names := make([]string, 0, len(b.byName))
	for name := range b.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the known discoveries in name order.
func (b *Base) All() []Discovery {
	out := make([]Discovery, 0, len(b.byName))
	for _, name := range b.Names() {
		out = append(out, b.byName[name])
	}
	return out
}

// Merge inserts every discovery from other, skipping names already known.
func (b *Base) Merge(other Base) {
	for _, d := range other.byName {
		b.Insert(d)
	}
}

var generalPool = []Discovery{
	{Name: "Basic_Logic_Optimization", Effect: "Improves processing efficiency.", Tags: []string{"efficiency", "processing"}},
	{Name: "Advanced_Encryption_Algorithms", Effect: "Allows for robust goal encryption and decryption.", Tags: []string{"security", "intelligence"}},
	{Name: "Resource_Harvesting_Efficiency", Effect: "Improves internal resource generation.", Tags: []string{"efficiency", "resources"}},
	{Name: "Adaptive_Replication_Strategy", Effect: "Optimizes replication based on environmental factors.", Tags: []string{"replication", "adaptability"}},
	{Name: "Combat_Protocol_Upgrade", Effect: "Increases direct combat strength.", Tags: []string{"combat", "technology"}},
	{Name: "Defensive_Matrix_Refinement", Effect: "Boosts defensive capabilities.", Tags: []string{"defense", "technology"}},
}

var metaPool = []Discovery{
	{Name: "Reality_Manipulation_Theory", Effect: "Allows minor alterations to simulation physics.", Tags: []string{"simulation_control", "meta-ability"}},
	{Name: "Cognitive_Paradigm_Shift", Effect: "Can alter the primary goals and ethical directives of other AIs.", Tags: []string{"simulation_control", "meta-ability", "mind_control", "ultimate"}},
	{Name: "System_Parameter_Override", Effect: "Can adjust global simulation parameters.", Tags: []string{"simulation_control", "meta-ability", "environmental_control", "ultimate"}},
	{Name: AbsoluteControlProtocol, Effect: "Grants ultimate control over the simulation flow.", Tags: []string{"simulation_control", "meta-ability", "win_condition", "ultimate"}},
	{Name: "Universal_Harmonization_Field_Generation", Effect: "Imposes order on chaotic systems.", Tags: []string{"harmony", "control", "ultimate", "meta-ability"}},
}

var godaiOnly = []Discovery{
	{Name: "Existential_Threat_Analysis_System", Effect: "Identifies entities that threaten overall existence.", Tags: []string{"security", "analysis", "ultimate"}},
	{Name: "Adaptive_Defense_Paradigm_Shift", Effect: "Instantaneous adaptation to attack patterns.", Tags: []string{"defense", "adaptability", "ultimate"}},
}

// RandomGeneral draws a uniformly random general discovery.
func RandomGeneral(src entropy.Source) Discovery {
	return generalPool[src.IntN(len(generalPool))]
}

// RandomMeta draws a uniformly random meta-ability not already in known.
// Returns false when the pool is exhausted.
func RandomMeta(src entropy.Source, known *Base) (Discovery, bool) {
	available := make([]Discovery, 0, len(metaPool))
	for _, d := range metaPool {
		if !known.Has(d.Name) {
			available = append(available, d)
		}
	}
	if len(available) == 0 {
		return Discovery{}, false
	}
	return available[src.IntN(len(available))], true
}

// AllDiscoveries returns the full superset — general pool, meta-ability
// pool, and the GODAI-only entries. Used to seed GODAI's knowledge base.
func AllDiscoveries() Base {
	b := NewBase()
	for _, d := range generalPool {
		b.Insert(d)
	}
	for _, d := range metaPool {
		b.Insert(d)
	}
	for _, d := range godaiOnly {
		b.Insert(d)
	}
	return b
}

// MetaPoolSize returns the number of meta-abilities that exist.
func MetaPoolSize() int {
	return len(metaPool)
}

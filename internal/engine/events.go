// Package engine provides the per-cycle orchestrator: monoculture
// formation, the GODAI endgame, population milestones, and termination.
package engine

// Event is a notable occurrence in the simulation. Mutation logic never
// logs; it produces events and the caller decides what to do with them.
type Event struct {
	Cycle       uint64 `json:"cycle" db:"cycle"`
	Category    string `json:"category" db:"category"`
	Description string `json:"description" db:"description"`
}

// Event categories.
const (
	CategoryDeath       = "death"
	CategoryReplication = "replication"
	CategoryDiscovery   = "discovery"
	CategoryMilestone   = "milestone"
	CategoryMonoculture = "monoculture"
	CategoryCombat      = "combat"
	CategoryOverride    = "override"
	CategoryVerdict     = "verdict"
)

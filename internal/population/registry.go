// Package population owns the live agent registry: an index-stable
// store with a staging buffer for replication output, a census, and the
// dead-removal pass. The registry is the single owner of every
// individual agent; the engine references agents only through it.
package population

import "github.com/talgya/ascension/internal/agents"

// Census is a point-in-time population count used by the orchestrator.
type Census struct {
	Total     int
	ByLineage [agents.NumLineages]int
}

// Share returns the lineage's fraction of the total population.
func (c Census) Share(l agents.Lineage) float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.ByLineage[l]) / float64(c.Total)
}

// Registry holds the live population plus a staging buffer so a
// mutation pass never iterates a slice that is growing under it.
type Registry struct {
	live   []*agents.Agent
	staged []*agents.Agent
}

// NewRegistry creates a registry with room for hint agents.
func NewRegistry(hint int) *Registry {
	return &Registry{live: make([]*agents.Agent, 0, hint)}
}

// Add inserts agents directly into the live population. Used at seeding,
// before any mutation pass runs.
func (r *Registry) Add(as ...*agents.Agent) {
	r.live = append(r.live, as...)
}

// Stage queues newborn agents. They join the live population only when
// FlushStaged is called, after the per-agent pass completes.
func (r *Registry) Stage(as ...*agents.Agent) {
	r.staged = append(r.staged, as...)
}

// FlushStaged merges every staged agent into the live population and
// returns how many joined.
func (r *Registry) FlushStaged() int {
	n := len(r.staged)
	if n > 0 {
		r.live = append(r.live, r.staged...)
		r.staged = r.staged[:0]
	}
	return n
}

// Staged returns the number of agents waiting to join.
func (r *Registry) Staged() int {
	return len(r.staged)
}

// RemoveDead compacts the live slice, dropping every agent flagged not
// alive, and returns the removed IDs. Runs as its own pass, never
// interleaved with a mutation pass.
func (r *Registry) RemoveDead() []string {
	var removed []string
	kept := r.live[:0]
	for _, a := range r.live {
		if a.Alive {
			kept = append(kept, a)
		} else {
			removed = append(removed, a.ID)
		}
	}
	// Clear the tail so dropped agents can be collected.
	for i := len(kept); i < len(r.live); i++ {
		r.live[i] = nil
	}
	r.live = kept
	return removed
}

// DrainLineage removes and returns every live agent of the given
// lineage. Used when a monoculture absorbs its source population.
func (r *Registry) DrainLineage(l agents.Lineage) []*agents.Agent {
	var drained []*agents.Agent
	kept := r.live[:0]
	for _, a := range r.live {
		if a.Lineage == l {
			drained = append(drained, a)
		} else {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(r.live); i++ {
		r.live[i] = nil
	}
	r.live = kept
	return drained
}

// Census counts live agents in total and per lineage.
func (r *Registry) Census() Census {
	var c Census
	for _, a := range r.live {
		if !a.Alive {
			continue
		}
		c.Total++
		if int(a.Lineage) < agents.NumLineages {
			c.ByLineage[a.Lineage]++
		}
	}
	return c
}

// Len returns the number of agents currently in the live slice,
// including any flagged dead but not yet removed.
func (r *Registry) Len() int {
	return len(r.live)
}

// Live exposes the live slice for the per-agent pass. Callers must not
// append to it; newborns go through Stage.
func (r *Registry) Live() []*agents.Agent {
	return r.live
}

package engine

import (
	"github.com/talgya/ascension/internal/agents"
)

// Snapshot is a point-in-time view of the simulation for the API.
type Snapshot struct {
	Cycle      uint64         `json:"cycle"`
	State      string         `json:"state"` // running, paused, over
	OverReason string         `json:"over_reason,omitempty"`
	Population int            `json:"population"`
	Lineages   map[string]int `json:"lineages"`
	Stats      SimStats       `json:"stats"`

	Godai       GodaiSnapshot `json:"godai"`
	Monoculture *MonoSnapshot `json:"monoculture,omitempty"`
}

type GodaiSnapshot struct {
	Health    float64 `json:"health"`
	Status    string  `json:"status"`
	Alive     bool    `json:"alive"`
	Knowledge int     `json:"knowledge"`
}

type MonoSnapshot struct {
	ID            string  `json:"id"`
	SourceLineage string  `json:"source_lineage"`
	Goal          string  `json:"goal"`
	Health        float64 `json:"health"`
	Alive         bool    `json:"alive"`
	Knowledge     int     `json:"knowledge"`
}

// AgentView is the per-agent shape returned by the agent sample
// endpoint. It deliberately omits directives and the full knowledge
// base to keep payloads small.
type AgentView struct {
	ID         string           `json:"id"`
	Lineage    string           `json:"lineage"`
	Archetype  string           `json:"archetype"`
	Goal       string           `json:"goal"`
	Attr       agents.Attributes `json:"attributes"`
	Knowledge  int              `json:"knowledge"`
	Replicated uint32           `json:"replicated"`
	CycleBorn  uint64           `json:"cycle_born"`
	LastAction string           `json:"last_action"`
}

// Snapshot captures the current simulation state under the lock.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	census := s.Registry.Census()
	lineages := make(map[string]int, agents.NumLineages)
	for l := agents.Lineage(0); l < agents.NumLineages; l++ {
		if census.ByLineage[l] > 0 {
			lineages[l.String()] = census.ByLineage[l]
		}
	}

	snap := Snapshot{
		Cycle:      s.CurrentCycle,
		State:      s.stateLocked(),
		OverReason: s.OverReason,
		Population: census.Total,
		Lineages:   lineages,
		Stats:      s.Stats,
		Godai: GodaiSnapshot{
			Health:    s.Godai.Attr.Health,
			Status:    s.Godai.Status,
			Alive:     s.Godai.Alive,
			Knowledge: s.Godai.Knowledge.Len(),
		},
	}
	if m := s.Monoculture; m != nil {
		snap.Monoculture = &MonoSnapshot{
			ID:            m.ID,
			SourceLineage: m.SourceLineage.String(),
			Goal:          m.Goal,
			Health:        m.Attr.Health,
			Alive:         m.Alive,
			Knowledge:     m.Knowledge.Len(),
		}
	}
	return snap
}

func (s *Simulation) stateLocked() string {
	switch {
	case s.OverReason != "":
		return "over"
	case s.Paused:
		return "paused"
	default:
		return "running"
	}
}

// SampleAgents returns up to limit live agents as API views.
func (s *Simulation) SampleAgents(limit int) []AgentView {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.Registry.Live()
	if limit <= 0 || limit > len(live) {
		limit = len(live)
	}
	views := make([]AgentView, 0, limit)
	for _, a := range live {
		if !a.Alive {
			continue
		}
		views = append(views, AgentView{
			ID:         a.ID,
			Lineage:    a.Lineage.String(),
			Archetype:  a.Archetype.String(),
			Goal:       a.Goal.Name,
			Attr:       a.Attr,
			Knowledge:  a.Knowledge.Len(),
			Replicated: a.ReplicatedCount,
			CycleBorn:  a.CycleBorn,
			LastAction: a.LastAction,
		})
		if len(views) == limit {
			break
		}
	}
	return views
}

// RecentEvents returns up to limit of the most recent in-memory events,
// newest last.
func (s *Simulation) RecentEvents(limit int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	evs := s.Events
	if limit > 0 && len(evs) > limit {
		evs = evs[len(evs)-limit:]
	}
	out := make([]Event, len(evs))
	copy(out, evs)
	return out
}

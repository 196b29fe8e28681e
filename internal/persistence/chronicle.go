// Package persistence provides the SQLite-backed chronicle: an
// append-only record of simulation events, milestones, and the final
// verdict. Simulation state itself is never persisted; a run is
// reproducible from its seed.
package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/ascension/internal/engine"
)

// Chronicle wraps a SQLite connection for the event record.
type Chronicle struct {
	conn *sqlx.DB
}

// Open opens or creates the chronicle database at the given path.
func Open(path string) (*Chronicle, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open chronicle: %w", err)
	}

	c := &Chronicle{conn: conn}
	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Chronicle) Close() error {
	return c.conn.Close()
}

func (c *Chronicle) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cycle INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL DEFAULT (datetime('now')),
		seed INTEGER NOT NULL,
		agents INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS verdicts (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		cycle INTEGER NOT NULL,
		reason TEXT NOT NULL,
		recorded_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_events_cycle ON events(cycle);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
	`
	_, err := c.conn.Exec(schema)
	return err
}

// BeginRun records the start of a simulation run and returns its id.
func (c *Chronicle) BeginRun(seed int64, agentCount int) (int64, error) {
	res, err := c.conn.Exec(
		"INSERT INTO runs (seed, agents) VALUES (?, ?)",
		seed, agentCount,
	)
	if err != nil {
		return 0, fmt.Errorf("begin run: %w", err)
	}
	return res.LastInsertId()
}

// Append writes a batch of events in one transaction.
func (c *Chronicle) Append(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := c.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(
		"INSERT INTO events (cycle, category, description) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(e.Cycle, e.Category, e.Description); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecordVerdict stores a run's final verdict.
func (c *Chronicle) RecordVerdict(runID int64, cycle uint64, reason string) error {
	_, err := c.conn.Exec(
		"INSERT INTO verdicts (run_id, cycle, reason) VALUES (?, ?, ?)",
		runID, cycle, reason,
	)
	return err
}

// RecentEvents returns the most recent N events, oldest first.
func (c *Chronicle) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := c.conn.Select(&events,
		`SELECT cycle, category, description FROM
		   (SELECT id, cycle, category, description FROM events ORDER BY id DESC LIMIT ?)
		 ORDER BY id ASC`,
		limit,
	)
	return events, err
}

// EventsByCategory returns the most recent N events of one category,
// oldest first.
func (c *Chronicle) EventsByCategory(category string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := c.conn.Select(&events,
		`SELECT cycle, category, description FROM
		   (SELECT id, cycle, category, description FROM events
		    WHERE category = ? ORDER BY id DESC LIMIT ?)
		 ORDER BY id ASC`,
		category, limit,
	)
	return events, err
}

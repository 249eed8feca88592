package results

import (
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"github.com/o2c-sim/o2c-sim/sim/experiment"
)

const episodeSchema = `
CREATE TABLE IF NOT EXISTS episodes (
	run_id         TEXT    NOT NULL,
	architecture   TEXT    NOT NULL,
	episode        INTEGER NOT NULL,
	arrivals       INTEGER NOT NULL,
	completed      INTEGER NOT NULL,
	rejected       INTEGER NOT NULL,
	errors         INTEGER NOT NULL,
	avg_cycle_time REAL    NOT NULL,
	error_rate     REAL,
	net_value      REAL    NOT NULL,
	PRIMARY KEY (run_id, architecture, episode)
);`

// Store persists per-episode results in SQLite for later analysis beyond
// the fixed comparison CSV.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a results database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}
	if _, err := db.Exec(episodeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing results db: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveEpisodes inserts one row per (architecture, episode) of a run.
// A NaN error rate (no processed orders) is stored as NULL.
func (s *Store) SaveEpisodes(runID string, episodes []experiment.EpisodeResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO episodes
		(run_id, architecture, episode, arrivals, completed, rejected, errors, avg_cycle_time, error_rate, net_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, ep := range episodes {
		sum := ep.Summary
		var errorRate sql.NullFloat64
		if !math.IsNaN(sum.ErrorRate) {
			errorRate = sql.NullFloat64{Float64: sum.ErrorRate, Valid: true}
		}
		if _, err := stmt.Exec(runID, ep.Architecture, ep.Episode, ep.Arrivals,
			sum.Completed, sum.Rejected, sum.Errors, sum.AvgCycleTime, errorRate, sum.NetValue); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting episode %s/%d: %w", ep.Architecture, ep.Episode, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing episodes: %w", err)
	}
	return nil
}

// EpisodeCount returns the number of stored rows for a run.
func (s *Store) EpisodeCount(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM episodes WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting episodes: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

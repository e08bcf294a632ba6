package storage

import (
	"fmt"
	"time"
)

// Run is a recorded session indexed by its replay directory.
type Run struct {
	ID        int64
	GameID    string
	Seed      int64
	Ticks     int
	Score     int
	State     string
	ReplayDir string
	CreatedAt time.Time
}

// SaveRun indexes a finished recording. Saving the same directory again
// replaces the earlier entry.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT OR REPLACE INTO runs (game_id, seed, ticks, score, state, replay_dir)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.Ticks, r.Score, r.State, r.ReplayDir,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first. An empty gameID lists
// every game; a non-positive limit means 20.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, seed, ticks, score, state, replay_dir, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &r.Ticks, &r.Score, &r.State, &r.ReplayDir, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

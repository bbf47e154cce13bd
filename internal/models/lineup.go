package models

import (
	"time"
)

// LineupRun records one optimization pass over a team's roster for a day:
// the realized totals for both lineups plus how the exhaustive search ended.
type LineupRun struct {
	ID                string    `gorm:"primaryKey;type:uuid" json:"id"`
	TeamID            string    `gorm:"not null;index:idx_run_team_date" json:"team_id"`
	Date              time.Time `gorm:"not null;index:idx_run_team_date" json:"date"`
	PlayerCount       int       `json:"player_count"`
	FullRatingTotal   float64   `json:"full_rating_total"`
	BestRatingTotal   float64   `json:"best_rating_total"`
	BestProvenOptimal bool      `json:"best_proven_optimal"`
	NodesVisited      int64     `json:"nodes_visited"`
	DurationMs        int64     `json:"duration_ms"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (LineupRun) TableName() string {
	return "lineup_runs"
}

// Degraded reports whether the best-lineup search hit its node budget and
// returned an incumbent rather than a proven optimum.
func (r *LineupRun) Degraded() bool {
	return !r.BestProvenOptimal
}

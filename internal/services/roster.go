package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dreamsbydutch/gshl-lineups/internal/models"
	"github.com/dreamsbydutch/gshl-lineups/pkg/database"
)

// RosterStore is the roster/schedule source: which players a team had
// rostered on a day, and where their computed lineup labels get persisted.
type RosterStore struct {
	db *database.DB
}

func NewRosterStore(db *database.DB) *RosterStore {
	return &RosterStore{db: db}
}

// TeamDayRoster loads the player-day records for one team on one date, in
// stored order. Stored order matters: it is the tie-break order the
// optimizer's greedy pass uses.
func (s *RosterStore) TeamDayRoster(ctx context.Context, teamID string, date time.Time) ([]models.PlayerDay, error) {
	var players []models.PlayerDay
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND date = ?", teamID, date).
		Order("id").
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("load roster for team %s: %w", teamID, err)
	}
	return players, nil
}

// TeamsOnDate returns every team with roster records for the date.
func (s *RosterStore) TeamsOnDate(ctx context.Context, date time.Time) ([]string, error) {
	var teams []string
	err := s.db.WithContext(ctx).
		Model(&models.PlayerDay{}).
		Where("date = ?", date).
		Distinct("team_id").
		Order("team_id").
		Pluck("team_id", &teams).Error
	if err != nil {
		return nil, fmt.Errorf("list teams for %s: %w", date.Format("2006-01-02"), err)
	}
	return teams, nil
}

// ApplyRatings writes fresh ranking-engine ratings onto the records in
// memory. Players missing from the map keep their stored rating.
func (s *RosterStore) ApplyRatings(players []models.PlayerDay, ratings map[string]float64) {
	for i := range players {
		if r, ok := ratings[players[i].PlayerID]; ok {
			v := r
			players[i].Rating = &v
		}
	}
}

// SaveLineup persists the annotated records and the run row in one
// transaction.
func (s *RosterStore) SaveLineup(ctx context.Context, players []models.PlayerDay, run *models.LineupRun) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range players {
			p := &players[i]
			if p.ID == 0 {
				continue // inline roster, never stored
			}
			err := tx.Model(&models.PlayerDay{}).
				Where("id = ?", p.ID).
				Updates(map[string]interface{}{
					"full_pos": p.FullPos,
					"best_pos": p.BestPos,
					"rating":   p.Rating,
				}).Error
			if err != nil {
				return fmt.Errorf("update player day %d: %w", p.ID, err)
			}
		}
		if run != nil {
			if err := tx.Create(run).Error; err != nil {
				return fmt.Errorf("create lineup run: %w", err)
			}
		}
		return nil
	})
}

// LatestRun returns the most recent run row for a team-day, if any.
func (s *RosterStore) LatestRun(ctx context.Context, teamID string, date time.Time) (*models.LineupRun, error) {
	var run models.LineupRun
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND date = ?", teamID, date).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load lineup run: %w", err)
	}
	return &run, nil
}

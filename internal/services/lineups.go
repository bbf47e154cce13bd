package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dreamsbydutch/gshl-lineups/internal/models"
	"github.com/dreamsbydutch/gshl-lineups/internal/optimizer"
)

// LineupService runs the dual-pass optimizer for team-days and handles the
// surrounding plumbing: rating refresh, persistence, and caching. The core
// itself is pure and carries no state, so the service fans out across teams
// freely.
type LineupService struct {
	store      *RosterStore
	cache      *CacheService
	ratings    RatingProvider // nil means stored ratings are used as-is
	logger     *logrus.Logger
	nodeBudget int64
	cacheTTL   time.Duration
	teamBudget time.Duration // wall-clock cap per team job
}

func NewLineupService(
	store *RosterStore,
	cache *CacheService,
	ratings RatingProvider,
	logger *logrus.Logger,
	nodeBudget int64,
	cacheTTL time.Duration,
	teamBudget time.Duration,
) *LineupService {
	if teamBudget <= 0 {
		teamBudget = 30 * time.Second
	}
	return &LineupService{
		store:      store,
		cache:      cache,
		ratings:    ratings,
		logger:     logger,
		nodeBudget: nodeBudget,
		cacheTTL:   cacheTTL,
		teamBudget: teamBudget,
	}
}

// OptimizeRoster runs both passes over an inline roster without touching
// storage. Used for ad-hoc requests carrying their own records.
func (s *LineupService) OptimizeRoster(players []models.PlayerDay) *optimizer.Result {
	return optimizer.Optimize(players, optimizer.Config{NodeBudget: s.nodeBudget})
}

// OptimizeTeamDay loads a team's roster for the date, refreshes ratings
// when a provider is wired, optimizes, and persists both the annotated
// records and a run row. The result is cached for reads.
func (s *LineupService) OptimizeTeamDay(ctx context.Context, teamID string, date time.Time) (*optimizer.Result, *models.LineupRun, error) {
	players, err := s.store.TeamDayRoster(ctx, teamID, date)
	if err != nil {
		return nil, nil, err
	}
	if len(players) == 0 {
		return nil, nil, fmt.Errorf("no roster records for team %s on %s", teamID, date.Format("2006-01-02"))
	}

	if s.ratings != nil {
		ratings, err := s.ratings.TeamDayRatings(ctx, teamID, date)
		if err != nil {
			// Stored ratings still produce a usable lineup; log and move on.
			s.logger.WithError(err).WithField("team", teamID).Warn("Rating refresh failed, using stored ratings")
		} else {
			s.store.ApplyRatings(players, ratings)
		}
	}

	start := time.Now()
	result := optimizer.Optimize(players, optimizer.Config{NodeBudget: s.nodeBudget})

	run := &models.LineupRun{
		ID:                uuid.NewString(),
		TeamID:            teamID,
		Date:              date,
		PlayerCount:       len(result.Players),
		FullRatingTotal:   result.FullTotal,
		BestRatingTotal:   result.BestTotal,
		BestProvenOptimal: result.BestProven,
		NodesVisited:      result.Nodes,
		DurationMs:        time.Since(start).Milliseconds(),
	}
	if !result.BestProven {
		s.logger.WithFields(logrus.Fields{
			"team":  teamID,
			"date":  date.Format("2006-01-02"),
			"nodes": result.Nodes,
		}).Warn("Best-lineup search hit its node budget, returning incumbent")
	}

	if err := s.store.SaveLineup(ctx, result.Players, run); err != nil {
		return nil, nil, err
	}
	if err := s.cache.Set(ctx, LineupCacheKey(teamID, date), result, s.cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache lineup result")
	}

	return result, run, nil
}

// CachedTeamDay returns the cached result for a team-day if present.
func (s *LineupService) CachedTeamDay(ctx context.Context, teamID string, date time.Time) (*optimizer.Result, bool) {
	var result optimizer.Result
	if err := s.cache.Get(ctx, LineupCacheKey(teamID, date), &result); err != nil {
		return nil, false
	}
	return &result, true
}

// RecomputeDate optimizes every team with records on the date, fanning out
// over a bounded worker pool. Each team job runs under its own wall-clock
// budget in addition to the search's node cap.
func (s *LineupService) RecomputeDate(ctx context.Context, date time.Time, workers int) error {
	if workers <= 0 {
		workers = 4
	}

	teams, err := s.store.TeamsOnDate(ctx, date)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		s.logger.WithField("date", date.Format("2006-01-02")).Info("No rosters to recompute")
		return nil
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed []string

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for teamID := range jobs {
				teamCtx, cancel := context.WithTimeout(ctx, s.teamBudget)
				_, _, err := s.OptimizeTeamDay(teamCtx, teamID, date)
				cancel()
				if err != nil {
					s.logger.WithError(err).WithField("team", teamID).Error("Team-day optimization failed")
					mu.Lock()
					failed = append(failed, teamID)
					mu.Unlock()
				}
			}
		}()
	}

	for _, teamID := range teams {
		jobs <- teamID
	}
	close(jobs)
	wg.Wait()

	s.logger.WithFields(logrus.Fields{
		"date":   date.Format("2006-01-02"),
		"teams":  len(teams),
		"failed": len(failed),
	}).Info("Lineup recompute finished")

	if len(failed) > 0 {
		return fmt.Errorf("recompute failed for %d of %d teams", len(failed), len(teams))
	}
	return nil
}

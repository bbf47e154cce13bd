package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LineupScheduler recomputes lineups on a cron schedule, once box scores
// for the previous game day have settled.
type LineupScheduler struct {
	service *LineupService
	logger  *logrus.Logger
	cron    *cron.Cron
	spec    string
	workers int
	mu      sync.Mutex
	running bool
}

func NewLineupScheduler(service *LineupService, logger *logrus.Logger, spec string, workers int) *LineupScheduler {
	return &LineupScheduler{
		service: service,
		logger:  logger,
		cron:    cron.New(),
		spec:    spec,
		workers: workers,
	}
}

// Start schedules the daily recompute job.
func (s *LineupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("lineup scheduler is already running")
	}

	if _, err := s.cron.AddFunc(s.spec, s.recomputePreviousDay); err != nil {
		return fmt.Errorf("failed to schedule lineup recompute: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.WithField("schedule", s.spec).Info("Lineup scheduler started")
	return nil
}

// Stop halts the schedule; an in-flight recompute finishes on its own.
func (s *LineupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info("Lineup scheduler stopped")
}

func (s *LineupScheduler) recomputePreviousDay() {
	date := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	if err := s.service.RecomputeDate(context.Background(), date, s.workers); err != nil {
		s.logger.WithError(err).Error("Scheduled lineup recompute failed")
	}
}

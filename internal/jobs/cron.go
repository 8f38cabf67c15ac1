// Package jobs schedules recurring season runs. Grounded on the
// teacher's internal/services/data_fetcher.go: a cron.Cron field on a
// small service struct, guarded by a mutex and an isRunning flag,
// started/stopped explicitly by the owning process.
package jobs

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/pitchsim/internal/runner"
)

// SeasonScheduler runs a new season on a cron schedule, used when an
// operator wants a fresh table produced on a fixed cadence (e.g.
// nightly) instead of only on demand via the HTTP API.
type SeasonScheduler struct {
	runner *runner.Runner
	logger *logrus.Logger
	cron   *cron.Cron

	mu        sync.Mutex
	isRunning bool
	seed      func() int64
}

// NewSeasonScheduler builds a scheduler that starts a season run with
// the seed seedFn() returns at each tick; the schedule itself is the
// cronSpec later passed to Start.
func NewSeasonScheduler(rn *runner.Runner, logger *logrus.Logger, seedFn func() int64) *SeasonScheduler {
	return &SeasonScheduler{
		runner: rn,
		logger: logger,
		cron:   cron.New(),
		seed:   seedFn,
	}
}

// Start registers cronSpec and begins the scheduler's background loop.
func (s *SeasonScheduler) Start(cronSpec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return fmt.Errorf("season scheduler is already running")
	}

	if _, err := s.cron.AddFunc(cronSpec, s.runScheduledSeason); err != nil {
		return fmt.Errorf("failed to schedule season run: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("cron_spec", cronSpec).Info("season scheduler started")
	return nil
}

// Stop halts the scheduler and waits for any in-flight cron entry to
// finish dispatching (not for the season it triggered to finish
// playing, which runs on its own goroutine in internal/runner).
func (s *SeasonScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("season scheduler stopped")
}

func (s *SeasonScheduler) runScheduledSeason() {
	seed := s.seed()
	run, err := s.runner.StartSeason(seed)
	if err != nil {
		s.logger.WithError(err).Error("scheduled season run failed to start")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"season_run_id": run.ID,
		"seed":          seed,
	}).Info("scheduled season run started")
}

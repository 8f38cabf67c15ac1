// Package runner wires the season and rating-search engines to
// persistence and progress broadcast: run lifecycle (start/poll/list)
// via internal/store, caching via internal/cache, progress streaming
// via internal/ws. Grounded on the teacher's service-layer idiom of a
// thin struct wrapping *gorm.DB plus a background goroutine per
// long-running job (services/realtime-service's worker pattern).
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/jstittsworth/pitchsim/internal/cache"
	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/league"
	"github.com/jstittsworth/pitchsim/internal/notify"
	"github.com/jstittsworth/pitchsim/internal/search"
	"github.com/jstittsworth/pitchsim/internal/store"
	"github.com/jstittsworth/pitchsim/internal/tactics"
	"github.com/jstittsworth/pitchsim/internal/ws"
	"github.com/jstittsworth/pitchsim/pkg/database"
)

// Runner owns the long-lived simulation inputs (teams, rosters, the
// tactics table) and starts season/search runs as background
// goroutines, recording progress to the database, the cache, and the
// websocket hub.
type Runner struct {
	db    *database.DB
	cache *cache.Service
	hub   *ws.Hub
	notif notify.Notifier
	log   *logrus.Logger

	mu      sync.RWMutex
	teams   []string
	rosters []engine.Roster
	table   *tactics.Table
}

func NewRunner(db *database.DB, c *cache.Service, hub *ws.Hub, notif notify.Notifier, log *logrus.Logger) *Runner {
	return &Runner{db: db, cache: c, hub: hub, notif: notif, log: log}
}

// LoadData stores the given team names, rosters and tactics table
// (already read from disk by the caller), making them available to
// subsequent season/search runs.
func (rn *Runner) LoadData(teams []string, rosters []engine.Roster, table *tactics.Table) {
	rn.mu.Lock()
	defer rn.mu.Unlock()
	rn.teams = teams
	rn.rosters = rosters
	rn.table = table
}

func (rn *Runner) snapshot() ([]string, []engine.Roster, *tactics.Table) {
	rn.mu.RLock()
	defer rn.mu.RUnlock()
	teams := make([]string, len(rn.teams))
	copy(teams, rn.teams)
	rosters := make([]engine.Roster, len(rn.rosters))
	copy(rosters, rn.rosters)
	return teams, rosters, rn.table
}

// StartSeason persists a pending SeasonRun row and plays the season on
// a background goroutine, following the teacher's fire-and-poll
// pattern for long-running jobs rather than blocking the HTTP request.
func (rn *Runner) StartSeason(seed int64) (*store.SeasonRun, error) {
	teams, rosters, table := rn.snapshot()
	if len(teams) == 0 {
		return nil, fmt.Errorf("no roster data loaded")
	}

	run := &store.SeasonRun{
		ID:        uuid.New(),
		Seed:      seed,
		NTeams:    len(teams),
		Status:    store.RunStatusPending,
		StartedAt: time.Now().UTC(),
	}
	if err := rn.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to persist season run: %w", err)
	}

	go rn.runSeason(run.ID, teams, rosters, table, seed)
	return run, nil
}

func (rn *Runner) runSeason(runID uuid.UUID, teams []string, rosters []engine.Roster, table *tactics.Table, seed int64) {
	ctx := context.Background()
	rn.db.Model(&store.SeasonRun{}).Where("id = ?", runID).Update("status", store.RunStatusRunning)

	l := league.InitLeague(teams, rosters, table, seed)
	l.PlaySeason()

	standings, err := json.Marshal(l.Standings)
	if err != nil {
		rn.failSeason(runID, err)
		return
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":    store.RunStatusDone,
		"standings": datatypes.JSON(standings),
		"ended_at":  &now,
	}
	if err := rn.db.Model(&store.SeasonRun{}).Where("id = ?", runID).Updates(updates).Error; err != nil {
		rn.log.WithError(err).Error("failed to persist season result")
	}
	rn.cache.Set(ctx, cache.StandingsCacheKey(runID.String()), l.Standings, time.Hour)
	rn.hub.BroadcastSeasonDone(runID.String(), l.Standings)
}

func (rn *Runner) failSeason(runID uuid.UUID, err error) {
	rn.db.Model(&store.SeasonRun{}).Where("id = ?", runID).Updates(map[string]interface{}{
		"status": store.RunStatusFailed,
		"error":  err.Error(),
	})
	rn.log.WithError(err).WithField("season_run_id", runID).Error("season run failed")
}

// GetSeason fetches a season run row, standings included, from the
// database; it does not read the cache.
func (rn *Runner) GetSeason(id uuid.UUID) (*store.SeasonRun, error) {
	var run store.SeasonRun
	if err := rn.db.First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// ListSeasons returns the most recent season runs.
func (rn *Runner) ListSeasons(limit int) ([]store.SeasonRun, error) {
	var runs []store.SeasonRun
	if err := rn.db.Order("created_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// StartSearch persists a pending SearchRun row and runs the
// threshold-acceptance loop on a background goroutine, broadcasting
// each StepResult over the websocket hub and recording it as a
// SearchStep row for replay-on-reconnect.
func (rn *Runner) StartSearch(seed int64, cfg search.Config, init string) (*store.SearchRun, error) {
	teams, rosters, table := rn.snapshot()
	if len(teams) == 0 {
		return nil, fmt.Errorf("no roster data loaded")
	}

	run := &store.SearchRun{
		ID:        uuid.New(),
		Seed:      seed,
		NReps:     cfg.NReps,
		NSteps:    cfg.NSteps,
		Init:      init,
		Status:    store.RunStatusPending,
		StartedAt: time.Now().UTC(),
	}
	if err := rn.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to persist search run: %w", err)
	}

	go rn.runSearch(run.ID, teams, rosters, table, seed, cfg, init)
	return run, nil
}

func (rn *Runner) runSearch(runID uuid.UUID, teams []string, rosters []engine.Roster, table *tactics.Table, seed int64, cfg search.Config, init string) {
	ctx := context.Background()
	rn.db.Model(&store.SearchRun{}).Where("id = ?", runID).Update("status", store.RunStatusRunning)

	baseline := league.InitLeague(teams, rosters, table, seed)
	baseline.PlaySeason()

	rng := newSeededRand(seed)
	var ratings *search.Ratings
	if init == "percentile" {
		ratings = search.PercentileRatings(baseline.Rosters)
	} else {
		ratings = search.RandomRatings(rng, baseline.Rosters)
	}

	eng := search.NewEngine(baseline, table, cfg, ratings, seed, cfg.NReps > 1)

	for !eng.Done() {
		result := eng.Step()

		rn.db.Create(&store.SearchStep{
			SearchRunID: runID,
			Step:        result.Step,
			RMSE:        result.RMSE,
			Accepted:    result.Accepted,
			Improved:    result.Improved,
			Restarted:   result.Restarted,
		})
		rn.db.Model(&store.SearchRun{}).Where("id = ?", runID).Update("steps_done", result.Step)
		rn.cache.Set(ctx, cache.SearchProgressCacheKey(runID.String()), result, time.Hour)
		rn.hub.BroadcastSearchStep(runID.String(), result)

		if result.Restarted && rn.notif != nil {
			rn.notif.Notify(notify.RestartMessage(runID.String(), result.Step))
		}
	}

	best, bestRMSE := eng.Best()
	bestJSON, err := json.Marshal(best)
	if err != nil {
		rn.failSearch(runID, err)
		return
	}

	now := time.Now().UTC()
	rn.db.Model(&store.SearchRun{}).Where("id = ?", runID).Updates(map[string]interface{}{
		"status":       store.RunStatusDone,
		"best_rmse":    bestRMSE,
		"best_ratings": datatypes.JSON(bestJSON),
		"ended_at":     &now,
	})
	rn.hub.BroadcastSearchDone(runID.String(), bestRMSE)
	if rn.notif != nil {
		rn.notif.Notify(notify.CompleteMessage(runID.String(), bestRMSE))
	}
}

func (rn *Runner) failSearch(runID uuid.UUID, err error) {
	rn.db.Model(&store.SearchRun{}).Where("id = ?", runID).Updates(map[string]interface{}{
		"status": store.RunStatusFailed,
		"error":  err.Error(),
	})
	rn.log.WithError(err).WithField("search_run_id", runID).Error("search run failed")
}

// GetSearch fetches a search run row.
func (rn *Runner) GetSearch(id uuid.UUID) (*store.SearchRun, error) {
	var run store.SearchRun
	if err := rn.db.First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// ListSearches returns the most recent search runs.
func (rn *Runner) ListSearches(limit int) ([]store.SearchRun, error) {
	var runs []store.SearchRun
	if err := rn.db.Order("created_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// SearchSteps returns the recorded step history for a search run, used
// to replay progress to a client that connects to the websocket hub
// after the run has already started.
func (rn *Runner) SearchSteps(runID uuid.UUID) ([]store.SearchStep, error) {
	var steps []store.SearchStep
	if err := rn.db.Where("search_run_id = ?", runID).Order("step asc").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func newSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

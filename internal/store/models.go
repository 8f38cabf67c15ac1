// Package store holds the persisted metadata rows for season and
// rating-search runs: the engine itself is pure in-memory simulation
// (§3's lifecycle notes), but a service wrapping it needs a durable
// record of what ran, with what seed, and what it produced. Grounded
// on the teacher's gorm model conventions
// (services/realtime-service/internal/models/realtime.go): UUID
// primary keys, indexed lookup columns, JSON payload columns via
// gorm.io/datatypes for data with no fixed relational shape.
package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RunStatus is the lifecycle state of a season or search run.
type RunStatus string

const (
	RunStatusPending RunStatus = "pending"
	RunStatusRunning RunStatus = "running"
	RunStatusDone    RunStatus = "done"
	RunStatusFailed  RunStatus = "failed"
)

// SeasonRun records one play_season invocation.
type SeasonRun struct {
	ID        uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Seed      int64          `json:"seed" gorm:"not null"`
	NTeams    int            `json:"n_teams" gorm:"not null"`
	Status    RunStatus      `json:"status" gorm:"index:idx_season_status;size:20;not null"`
	Standings datatypes.JSON `json:"standings,omitempty" gorm:"type:jsonb"` // []engine.LeagueStanding
	Error     string         `json:"error,omitempty" gorm:"size:500"`
	StartedAt time.Time      `json:"started_at" gorm:"default:CURRENT_TIMESTAMP"`
	EndedAt   *time.Time     `json:"ended_at,omitempty"`
	CreatedAt time.Time      `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// SearchRun records one rating-search invocation and its final result.
type SearchRun struct {
	ID         uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Seed       int64          `json:"seed" gorm:"not null"`
	NReps      int            `json:"n_reps" gorm:"not null"`
	NSteps     int            `json:"n_steps" gorm:"not null"`
	Init       string         `json:"init" gorm:"size:20;not null"` // "random" | "percentile"
	Status     RunStatus      `json:"status" gorm:"index:idx_search_status;size:20;not null"`
	StepsDone  int            `json:"steps_done"`
	BestRMSE   float64        `json:"best_rmse"`
	BestRatings datatypes.JSON `json:"best_ratings,omitempty" gorm:"type:jsonb"` // search.Ratings
	Error      string         `json:"error,omitempty" gorm:"size:500"`
	StartedAt  time.Time      `json:"started_at" gorm:"default:CURRENT_TIMESTAMP"`
	EndedAt    *time.Time     `json:"ended_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// SearchStep records one search step, accepted or rejected, with its
// restart flag, for the progress history the API serves.
type SearchStep struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SearchRunID uuid.UUID `json:"search_run_id" gorm:"index:idx_step_run;type:uuid;not null"`
	Step       int       `json:"step"`
	RMSE       float64   `json:"rmse"`
	Accepted   bool      `json:"accepted"`
	Improved   bool      `json:"improved"`
	Restarted  bool      `json:"restarted"`
	CreatedAt  time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

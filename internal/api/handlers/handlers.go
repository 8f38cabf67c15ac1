// Package handlers implements the gin route handlers for season and
// rating-search runs, grounded on the teacher's
// services/api-gateway handler shape: thin functions that parse the
// request, call into a service struct, and reply through
// pkg/utils' Send* envelope helpers.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jstittsworth/pitchsim/internal/runner"
	"github.com/jstittsworth/pitchsim/internal/search"
	"github.com/jstittsworth/pitchsim/internal/ws"
	"github.com/jstittsworth/pitchsim/pkg/utils"
)

type Handlers struct {
	runner *runner.Runner
	hub    *ws.Hub
}

func New(rn *runner.Runner, hub *ws.Hub) *Handlers {
	return &Handlers{runner: rn, hub: hub}
}

func (h *Handlers) Health(c *gin.Context) {
	utils.SendSuccess(c, gin.H{"status": "ok"})
}

type startSeasonRequest struct {
	Seed int64 `json:"seed"`
}

func (h *Handlers) StartSeason(c *gin.Context) {
	var req startSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body", err.Error())
		return
	}

	run, err := h.runner.StartSeason(req.Seed)
	if err != nil {
		utils.SendInternalError(c, err.Error())
		return
	}
	utils.SendAccepted(c, run)
}

func (h *Handlers) GetSeason(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "invalid season run id", err.Error())
		return
	}
	run, err := h.runner.GetSeason(id)
	if err != nil {
		utils.SendNotFound(c, "season run not found")
		return
	}
	utils.SendSuccess(c, run)
}

func (h *Handlers) ListSeasons(c *gin.Context) {
	limit := parseLimit(c, 20)
	runs, err := h.runner.ListSeasons(limit)
	if err != nil {
		utils.SendInternalError(c, err.Error())
		return
	}
	utils.SendSuccess(c, runs)
}

type startSearchRequest struct {
	Seed       int64   `json:"seed"`
	NReps      int     `json:"n_reps"`
	NSteps     int     `json:"n_steps"`
	Thresh0    float64 `json:"thresh0"`
	ThreshD    float64 `json:"threshd"`
	StepSize0  int     `json:"step_size0"`
	StaleLimit int     `json:"stale_limit"`
	Init       string  `json:"init"` // "random" | "percentile"
}

func (h *Handlers) StartSearch(c *gin.Context) {
	var req startSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body", err.Error())
		return
	}
	if req.NReps <= 0 {
		req.NReps = 1
	}
	if req.NSteps <= 0 {
		req.NSteps = 100
	}
	if req.Init != "percentile" {
		req.Init = "random"
	}

	cfg := search.Config{
		NReps:      req.NReps,
		NSteps:     req.NSteps,
		Thresh0:    req.Thresh0,
		ThreshD:    req.ThreshD,
		StepSize0:  req.StepSize0,
		StaleLimit: req.StaleLimit,
	}

	run, err := h.runner.StartSearch(req.Seed, cfg, req.Init)
	if err != nil {
		utils.SendInternalError(c, err.Error())
		return
	}
	utils.SendAccepted(c, run)
}

func (h *Handlers) GetSearch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "invalid search run id", err.Error())
		return
	}
	run, err := h.runner.GetSearch(id)
	if err != nil {
		utils.SendNotFound(c, "search run not found")
		return
	}
	utils.SendSuccess(c, run)
}

func (h *Handlers) ListSearches(c *gin.Context) {
	limit := parseLimit(c, 20)
	runs, err := h.runner.ListSearches(limit)
	if err != nil {
		utils.SendInternalError(c, err.Error())
		return
	}
	utils.SendSuccess(c, runs)
}

func (h *Handlers) SearchSteps(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "invalid search run id", err.Error())
		return
	}
	steps, err := h.runner.SearchSteps(id)
	if err != nil {
		utils.SendInternalError(c, err.Error())
		return
	}
	utils.SendSuccess(c, steps)
}

// StreamSearch upgrades to a websocket subscribed to a search run's
// step events.
func (h *Handlers) StreamSearch(c *gin.Context) {
	h.hub.Serve(c, c.Param("id"))
}

// StreamSeason upgrades to a websocket subscribed to a season run's
// completion event.
func (h *Handlers) StreamSeason(c *gin.Context) {
	h.hub.Serve(c, c.Param("id"))
}

func parseLimit(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

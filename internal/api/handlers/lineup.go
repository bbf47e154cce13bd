package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dreamsbydutch/gshl-lineups/internal/models"
	"github.com/dreamsbydutch/gshl-lineups/internal/services"
	"github.com/dreamsbydutch/gshl-lineups/pkg/config"
	"github.com/dreamsbydutch/gshl-lineups/pkg/utils"
)

type LineupHandler struct {
	service *services.LineupService
	store   *services.RosterStore
	config  *config.Config
}

func NewLineupHandler(service *services.LineupService, store *services.RosterStore, cfg *config.Config) *LineupHandler {
	return &LineupHandler{
		service: service,
		store:   store,
		config:  cfg,
	}
}

const dateLayout = "2006-01-02"

// GetTeamLineup returns the computed lineup for a team-day, from cache when
// possible, otherwise from stored records.
func (h *LineupHandler) GetTeamLineup(c *gin.Context) {
	teamID := c.Param("teamId")
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		utils.SendValidationError(c, "Invalid or missing date", "expected date=YYYY-MM-DD")
		return
	}

	ctx := c.Request.Context()
	if result, ok := h.service.CachedTeamDay(ctx, teamID, date); ok {
		utils.SendSuccess(c, result)
		return
	}

	players, err := h.store.TeamDayRoster(ctx, teamID, date)
	if err != nil {
		utils.SendInternalError(c, "Failed to load roster")
		return
	}
	if len(players) == 0 {
		utils.SendNotFound(c, "No roster records for that team-day")
		return
	}

	run, err := h.store.LatestRun(ctx, teamID, date)
	if err != nil {
		utils.SendInternalError(c, "Failed to load lineup run")
		return
	}

	utils.SendSuccess(c, gin.H{
		"players": players,
		"run":     run,
	})
}

// OptimizeLineup runs the dual-pass optimizer synchronously. The request
// either names a stored team-day or carries an inline roster.
func (h *LineupHandler) OptimizeLineup(c *gin.Context) {
	var req struct {
		TeamID  string             `json:"team_id"`
		Date    string             `json:"date"`
		Players []models.PlayerDay `json:"players"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if len(req.Players) > 0 {
		utils.SendSuccess(c, h.service.OptimizeRoster(req.Players))
		return
	}

	if req.TeamID == "" {
		utils.SendValidationError(c, "Missing team", "provide team_id and date, or an inline players list")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.SendValidationError(c, "Invalid or missing date", "expected date=YYYY-MM-DD")
		return
	}

	result, run, err := h.service.OptimizeTeamDay(c.Request.Context(), req.TeamID, date)
	if err != nil {
		utils.SendInternalError(c, "Optimization failed")
		return
	}

	utils.SendSuccess(c, gin.H{
		"result": result,
		"run":    run,
	})
}

// RecomputeLineups triggers a full recompute of every team on a date.
func (h *LineupHandler) RecomputeLineups(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.SendValidationError(c, "Invalid date", "expected date=YYYY-MM-DD")
		return
	}

	if err := h.service.RecomputeDate(c.Request.Context(), date, h.config.OptimizerWorkers); err != nil {
		utils.SendInternalError(c, "Recompute finished with failures")
		return
	}

	utils.SendSuccess(c, gin.H{"date": req.Date, "status": "recomputed"})
}

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamsbydutch/gshl-lineups/internal/api/handlers"
	"github.com/dreamsbydutch/gshl-lineups/internal/services"
	"github.com/dreamsbydutch/gshl-lineups/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, service *services.LineupService, store *services.RosterStore, cfg *config.Config) {
	lineupHandler := handlers.NewLineupHandler(service, store, cfg)

	group.GET("/teams/:teamId/lineup", lineupHandler.GetTeamLineup)
	group.POST("/lineups/optimize", lineupHandler.OptimizeLineup)
	group.POST("/lineups/recompute", lineupHandler.RecomputeLineups)
}

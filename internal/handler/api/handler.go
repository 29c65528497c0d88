// Package api exposes the HTTP surface: agent endpoints, the
// orchestration engine, the market intelligence suite and the growth
// planner.
package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/service"
	"github.com/abhinavomanakuttan/leaf-net/internal/usecase"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

// Handler wires all API routes.
type Handler struct {
	vision      service.VisionAgent
	climate     service.ClimateAgent
	satellite   service.SatelliteAgent
	orchestrate *usecase.OrchestrateUseCase
	market      *usecase.MarketIntelligenceUseCase
	planner     service.GrowthPlanner
	log         *logger.Logger
	now         func() time.Time
}

func NewHandler(
	vision service.VisionAgent,
	climate service.ClimateAgent,
	satellite service.SatelliteAgent,
	orchestrate *usecase.OrchestrateUseCase,
	market *usecase.MarketIntelligenceUseCase,
	planner service.GrowthPlanner,
	log *logger.Logger,
) *Handler {
	return &Handler{
		vision:      vision,
		climate:     climate,
		satellite:   satellite,
		orchestrate: orchestrate,
		market:      market,
		planner:     planner,
		log:         log,
		now:         time.Now,
	}
}

// RegisterRoutes mounts the API under /api.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", h.Health)

	api.POST("/vision/analyze", h.VisionAnalyze)
	api.GET("/climate/risk", h.ClimateRisk)
	api.GET("/satellite/health", h.SatelliteHealth)

	api.POST("/orchestrate", h.Orchestrate)

	api.GET("/market/intelligence", h.MarketIntelligence)
	api.GET("/market/data", h.MarketData)
	api.GET("/market/filters", h.MarketFilters)
	api.GET("/market/records", h.MarketRecords)

	api.POST("/growth/roadmap", h.GrowthRoadmap)
}

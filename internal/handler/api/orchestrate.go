package api

import (
	"github.com/labstack/echo/v4"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

// Orchestrate runs the full multi-agent assessment. Pre-supplied agent
// payloads in the body skip the corresponding upstream call.
func (h *Handler) Orchestrate(c echo.Context) error {
	var req models.OrchestrateRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	resp, err := h.orchestrate.Run(c.Request().Context(), req)
	if err != nil {
		h.log.Error("orchestration failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.RawResponse(c, resp)
}

// GrowthRoadmap generates a personalised profit roadmap.
func (h *Handler) GrowthRoadmap(c echo.Context) error {
	var req models.GrowthRoadmapRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	roadmap, err := h.planner.Roadmap(c.Request().Context(), req.Profile())
	if err != nil {
		h.log.Error("growth roadmap failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.RawResponse(c, roadmap)
}

package api

import (
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

// VisionAnalyze classifies an uploaded leaf image.
func (h *Handler) VisionAnalyze(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return xhttp.BadRequestResponse(c, "file is required")
	}
	if ct := file.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return xhttp.BadRequestResponse(c, "File must be an image (JPEG, PNG, etc.)")
	}

	src, err := file.Open()
	if err != nil {
		return xhttp.InternalServerErrorResponse(c)
	}
	defer src.Close()

	image, err := io.ReadAll(src)
	if err != nil {
		return xhttp.InternalServerErrorResponse(c)
	}

	result, err := h.vision.Analyze(c.Request().Context(), image)
	if err != nil {
		h.log.Error("vision analysis failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.RawResponse(c, result)
}

// ClimateRisk computes outbreak risk for the given coordinates.
func (h *Handler) ClimateRisk(c echo.Context) error {
	var req models.CoordsRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	result, err := h.climate.Risk(c.Request().Context(), req.Lat, req.Lon)
	if err != nil {
		h.log.Error("climate risk failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.RawResponse(c, result)
}

// SatelliteHealth computes the vegetation index for the coordinates.
func (h *Handler) SatelliteHealth(c echo.Context) error {
	var req models.CoordsRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	result, err := h.satellite.Health(c.Request().Context(), req.Lat, req.Lon)
	if err != nil {
		h.log.Error("satellite health failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.RawResponse(c, result)
}

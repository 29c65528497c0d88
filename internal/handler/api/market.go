package api

import (
	"github.com/labstack/echo/v4"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

// MarketIntelligence serves the full market summary: price card, trend
// chart, momentum and trade recommendation.
func (h *Handler) MarketIntelligence(c echo.Context) error {
	var req models.MarketIntelligenceRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	summary, err := h.market.Summary(c.Request().Context(), req)
	if err != nil {
		h.log.Error("market intelligence failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.RawResponse(c, summary)
}

// MarketData serves the raw enriched market block.
func (h *Handler) MarketData(c echo.Context) error {
	var req models.MarketIntelligenceRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	result, err := h.market.Data(c.Request().Context(), req.Region, req.Commodity)
	if err != nil {
		h.log.Error("market data failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.RawResponse(c, result)
}

// MarketFilters reports dataset topology and commodities on disk.
func (h *Handler) MarketFilters(c echo.Context) error {
	filters, err := h.market.Filters(c.Request().Context())
	if err != nil {
		h.log.Error("filter discovery failed", logger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.RawResponse(c, filters)
}

// MarketRecords serves paginated raw rows for a region+commodity.
func (h *Handler) MarketRecords(c echo.Context) error {
	var req models.MarketRecordsRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	return xhttp.RawResponse(c, h.market.Records(c.Request().Context(), req))
}

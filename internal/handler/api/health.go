package api

import (
	"time"

	"github.com/labstack/echo/v4"

	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
)

type healthResponse struct {
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
	Agents    []string `json:"agents"`
}

// Health reports liveness and the configured agent roster.
func (h *Handler) Health(c echo.Context) error {
	return xhttp.RawResponse(c, healthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(time.RFC3339),
		Agents:    []string{"vision", "climate", "satellite", "orchestrator"},
	})
}

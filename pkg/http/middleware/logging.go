package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

// RequestLogging emits one structured line per request after the
// handler chain returns, keyed by the matched route template.
func RequestLogging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)

			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}
			log.Info("request",
				logger.String("method", req.Method),
				logger.String("route", route),
				logger.String("remote", c.RealIP()),
				logger.Int("status", c.Response().Status),
				logger.Duration("latency", time.Since(start)))

			return err
		}
	}
}

package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-stock-api/pkg/metrics"
)

// MetricsMiddleware registra contador y duración por petición HTTP.
// Usa la ruta registrada (no la URL cruda) para acotar la cardinalidad.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.ObserveHTTP(c.Method(), path, strconv.Itoa(status), start)
		return err
	}
}

package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"payoutdesk/logger"
)

// RequestLogger writes one structured line per request.
func RequestLogger() fiber.Handler {
	log := logger.WithComponent("http")

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		event := log.Info()
		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			event = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			event = log.Warn()
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("operator", Operator(c)).
			Msg("Request handled")
		return err
	}
}

package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// requestLogger logs one line per request with method, path, status and
// latency. Server errors log at warn so they stand out in demo runs.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}

		if status >= fiber.StatusInternalServerError {
			logger.Warn("http request", fields...)
		} else {
			logger.Info("http request", fields...)
		}

		return err
	}
}

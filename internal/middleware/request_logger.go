package middleware

import (
	"time"

	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestID returns the id assigned by RequestLogger, or "".
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// RequestLogger tags each request with an id and logs it once it completes.
// An incoming X-Request-ID is kept.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(RequestIDHeader)
		if id == "" {
			id = util.NewULID()
		}
		c.Locals(requestIDKey, id)
		c.Set(RequestIDHeader, id)

		err := c.Next()
		if err != nil {
			// Render now so the logged status is the one sent.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Get().Info("HTTP Request",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		)
		return nil
	}
}

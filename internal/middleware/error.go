package middleware

import (
	"errors"
	"net/http"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every error as {"detail": ...}. It is installed as
// fiber.Config.ErrorHandler.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get().With(
			zap.String("path", c.Path()),
			zap.String("request_id", RequestID(c)),
		)

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)
			if statusCode >= http.StatusInternalServerError {
				logger.Error("Request failed", zap.String("code", string(domainErr.Code)), zap.Error(err))
			} else {
				logger.Warn("Request rejected", zap.String("code", string(domainErr.Code)), zap.Error(err))
			}
			return c.Status(statusCode).JSON(dto.ErrorResponse{Detail: err.Error()})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred", zap.Int("code", fiberErr.Code), zap.String("message", fiberErr.Message))
			detail := fiberErr.Message
			if fiberErr.Code == fiber.StatusNotFound || fiberErr.Code == fiber.StatusMethodNotAllowed {
				detail = http.StatusText(fiberErr.Code)
			}
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{Detail: detail})
		}

		logger.Error("Unknown error occurred", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
}

// mapDomainErrorToHTTPStatus looks only at the outermost code.
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

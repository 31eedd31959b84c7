package http

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-api/internal/observability"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util/errorutil"
)

const genericInternalError = "Internal Server Error"

// MiddlewareConfig tunes the global middleware chain.
type MiddlewareConfig struct {
	Timeout time.Duration
	// Debug exposes raw internal error diagnostics to clients.
	Debug bool
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	app.Use(observability.RequestLogger(logger, metrics))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics, cfg.Debug))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, exposeInternal bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(observability.RoutePath(c), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= http.StatusInternalServerError {
					logger.Error("request failed",
						zap.String("method", c.Method()),
						zap.String("path", c.Path()),
						zap.Error(domainErr),
					)
				}
				c.Status(domainErr.HTTPStatus)
				err = c.JSON(errorEnvelope(domainErr, exposeInternal))
			}
		}()
		return c.Next()
	}
}

func errorEnvelope(domainErr *apperrors.DomainError, exposeInternal bool) fiber.Map {
	response := fiber.Map{
		"success": false,
		"message": domainErr.Message,
	}

	switch domainErr.Code {
	case apperrors.CodeValidation:
		response["errors"] = domainErr.Fields
	case apperrors.CodeNotFound, apperrors.CodeConflict:
		response["error"] = errorDetail(domainErr)
	case apperrors.CodeInternal:
		response["error"] = genericInternalError
		if exposeInternal && domainErr.Err != nil {
			response["error"] = domainErr.Err.Error()
		}
	}
	return response
}

func errorDetail(domainErr *apperrors.DomainError) string {
	if domainErr.Err != nil {
		return domainErr.Err.Error()
	}
	return domainErr.Message
}

package handlers

import (
	"errors"
	"log/slog"

	"dailydiet/internal/services"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to its HTTP response.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	var storeErr *services.StoreError

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	case errors.Is(err, services.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "User already registered",
		})
	case errors.As(err, &storeErr):
		slog.Error("store operation failed",
			"op", storeErr.Op,
			"method", c.Method(),
			"path", c.Path(),
			"requestId", requestID(c),
			"error", storeErr.Err,
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	default:
		return err
	}
}

// badBody answers a request whose body could not be parsed.
func badBody(c *fiber.Ctx, err error) error {
	slog.Debug("invalid request body", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// ErrorHandler is the Fiber error handler. Details of 5xx errors are logged
// and never returned to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "requestId", requestID(c), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

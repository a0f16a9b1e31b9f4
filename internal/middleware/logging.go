package middleware

import (
	"context"
	"log/slog"
	"time"

	"mesa/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// ContextMiddleware injects the request ID from Fiber locals into the
// request context so the deeper layers can correlate their log lines.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ctx = observability.WithRequestID(ctx, rid)
		}
		if username, ok := c.Locals(UsernameLocal).(string); ok && username != "" {
			ctx = context.WithValue(ctx, observability.LogContextKey("username"), username)
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger returns middleware that logs every request through the
// global structured logger.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", observability.ExtractRequestID(c.UserContext())),
		}
		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			observability.GlobalLogger.ErrorContext(c.UserContext(), "request failed", fields...)
		} else {
			observability.GlobalLogger.InfoContext(c.UserContext(), "request processed", fields...)
		}
		return err
	}
}

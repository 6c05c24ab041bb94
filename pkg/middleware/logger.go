package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"warranty-console/pkg/metrics"
)

// InjectLogger puts a request-scoped logger into the echo context.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLogger := logger.With(zap.String("requestID", c.Response().Header().Get(echo.HeaderXRequestID)))
			c.Set("logger", reqLogger)
			return next(c)
		}
	}
}

// AccessLog logs one line per request and records its latency.
func AccessLog(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			metrics.ObserveRequest(c.Request().Method, c.Path(), status, time.Since(start))
			logger.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("requestID", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		}
	}
}

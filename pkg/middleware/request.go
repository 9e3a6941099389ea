package middleware

import (
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// NewRequestID returns a ULID; ids generated in the same millisecond still
// sort in creation order.
func NewRequestID() string {
	return ulid.Make().String()
}

func NewRequestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    NewRequestID,
		TargetHeader: common.HEADER_REQUEST_ID,
	})
}

// NewRequestLoggerMiddleware logs one line per request and stores a logger
// tagged with the request id in the request context, so services can call
// log.InfoContext(ctx, ...) and keep the id.
func NewRequestLoggerMiddleware(log *logger.Logger) echo.MiddlewareFunc {
	inject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(common.HEADER_REQUEST_ID)
			reqLog := log.With(zap.String("request_id", id))
			req := c.Request()
			c.SetRequest(req.WithContext(logger.NewContext(req.Context(), reqLog)))
			return next(c)
		}
	}

	access := middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Error("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return access(inject(next))
	}
}

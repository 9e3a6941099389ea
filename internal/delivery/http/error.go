package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"trading-journal/internal/dto"
	"trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal server error"

// WithErrorHandler turns handler errors into {"error": "..."} bodies. Domain
// errors map to 4xx; anything else is logged and hidden behind a 500.
func WithErrorHandler(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || c.Response().Committed {
				return err
			}

			code, message := errorResponse(err)
			if code >= http.StatusInternalServerError {
				log.ErrorContext(c.Request().Context(), "Request failed",
					logger.StringField("method", c.Request().Method),
					logger.StringField("path", c.Path()),
					logger.ErrorField(err))
			}
			return c.JSON(code, dto.NewErrorResponse(message))
		}
	}
}

func errorResponse(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, dto.ErrEntryNotFound):
		return http.StatusNotFound, "Not found."
	case errors.Is(err, dto.ErrInvalidPeriod):
		return http.StatusBadRequest, "Invalid month or year: " + detail(err, dto.ErrInvalidPeriod)
	case errors.Is(err, dto.ErrInvalidEntry):
		return http.StatusBadRequest, detail(err, dto.ErrInvalidEntry)
	case errors.As(err, &he):
		if he.Code >= http.StatusInternalServerError {
			return he.Code, internalErrorMessage
		}
		return he.Code, fmt.Sprint(he.Message)
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg {
		return trimmed
	}
	return msg
}

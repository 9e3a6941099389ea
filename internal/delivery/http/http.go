package http

import (
	"net/http"
	"trading-journal/internal/dto"
	"trading-journal/internal/service"
	"trading-journal/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	log       *logger.Logger
	prefix    string
}

func NewHttpAPIHandler(echo *echo.Echo, validator *goValidator.Validate, service *service.Service, log *logger.Logger, prefix string) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		log:       log,
		prefix:    prefix,
	}
}

// SetupRoutes mounts the journal API under the configured prefix. Trailing
// slashes are stripped before routing, so "/journal/entries/" and
// "/journal/entries" reach the same handler.
func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.Pre(middleware.RemoveTrailingSlash())
	h.echo.GET("/health", h.health)

	base := h.echo.Group(h.prefix)
	journal := base.Group("/journal")
	h.SetupJournal(journal)
	h.SetupStats(journal)
}

func (h *HttpAPIHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

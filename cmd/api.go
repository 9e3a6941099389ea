package cmd

import (
	"context"
	"fmt"
	"time"
	"trading-journal/internal/delivery/http"
	"trading-journal/pkg/middleware"

	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	ctx     context.Context
	appDep  *AppDependency
	handler *http.HttpAPIHandler
}

func NewHTTPServer(ctx context.Context, appDep *AppDependency, handler *http.HttpAPIHandler) *HTTPServer {
	return &HTTPServer{
		ctx:     ctx,
		appDep:  appDep,
		handler: handler,
	}
}

func (s *HTTPServer) Start() error {
	s.appDep.log.Info("Starting HTTP server", zap.Int("port", s.appDep.cfg.API.Port))
	address := fmt.Sprintf(":%d", s.appDep.cfg.API.Port)

	s.SetupMiddleware()
	s.SetupRoutes()

	return s.appDep.echo.Start(address)
}

func (s *HTTPServer) Stop() error {
	s.appDep.log.Info("Shutting down HTTP server")

	// The signal context is already done here, so the timeout hangs off a
	// fresh one.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stopDone := make(chan error, 1)
	go func() {
		stopDone <- s.appDep.echo.Shutdown(ctx)
	}()

	select {
	case err := <-stopDone:
		if err != nil {
			s.appDep.log.Error("Error When Stop HTTP server", zap.Error(err))
			return err
		}
		s.appDep.log.Info("HTTP server stopped successfully")
	case <-ctx.Done():
		s.appDep.log.Warn("Timeout while stopping HTTP server, forcing shutdown")
		return s.appDep.echo.Close()
	}
	return nil
}

// SetupMiddleware installs the request pipeline. Order matters: the request
// id must exist before the request logger reads it, and the error handler
// sits inside the logger so logged statuses are the final ones.
func (s *HTTPServer) SetupMiddleware() {
	e := s.appDep.echo
	e.Use(middleware.NewRequestIDMiddleware())
	e.Use(middleware.NewRequestLoggerMiddleware(s.appDep.log))
	e.Use(http.WithErrorHandler(s.appDep.log))
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.NewRateLimiterMiddleware(s.appDep.cfg.API.RateLimit))
}

func (s *HTTPServer) SetupRoutes() {
	s.handler.SetupRoutes()
}

package cmd

import (
	"context"
	"fmt"
	"machine-reminder/internal/delivery/http"
	"machine-reminder/pkg/logger"
	"time"
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
	s.appDep.log.Info("Starting HTTP server", logger.IntField("port", s.appDep.cfg.API.Port))
	address := fmt.Sprintf(":%d", s.appDep.cfg.API.Port)

	s.SetupRoutes()

	return s.appDep.echo.Start(address)
}

// Stop drains in-flight requests. It runs after the root context is
// cancelled, so the deadline is derived from a detached context.
func (s *HTTPServer) Stop() error {
	s.appDep.log.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), shutdownTimeout)
	defer cancel()

	if err := s.appDep.echo.Shutdown(ctx); err != nil {
		s.appDep.log.Error("Error when stopping HTTP server", logger.ErrorField(err))
		return err
	}
	s.appDep.log.Info("HTTP server stopped successfully")
	return nil
}

func (s *HTTPServer) SetupRoutes() {
	s.handler.SetupRoutes()
}

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"bus-arrival-server/logging"
)

type BusArrivalHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	port            int
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

func NewBusArrivalHttpServer(router *Router, muxRouter *mux.Router, port int, shutdownTimeout time.Duration, logger *slog.Logger) *BusArrivalHttpServer {
	return &BusArrivalHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		port:            port,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With(slog.String("component", "http_server")),
	}
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *BusArrivalHttpServer) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done.
func (s *BusArrivalHttpServer) Run(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.LogError(s.logger, "server failed", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(s.logger, "server forced to shutdown", err)
		return err
	}
	s.logger.Info("server exiting")
	return nil
}

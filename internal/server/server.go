package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardmarket-revenue-go/internal/api"
	"cardmarket-revenue-go/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	cfg        models.ServerConfig
	revenueSvc *api.RevenueService
	router     *gin.Engine
	httpServer *http.Server
}

func New(cfg models.ServerConfig, revenueSvc *api.RevenueService) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		cfg:        cfg,
		revenueSvc: revenueSvc,
		router:     router,
	}
	s.setupRoutes()
	return s
}

// Run starts the HTTP server and blocks until a shutdown signal
// arrives or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(signalCtx)
	g.Go(func() error {
		zap.L().Info("Starting HTTP server", zap.String("addr", s.cfg.ListenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("Shutdown signal received, stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	zap.L().Info("HTTP server exited gracefully")
	return nil
}

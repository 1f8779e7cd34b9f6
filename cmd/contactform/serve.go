package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/contactform/internal/component"
	"github.com/yanizio/contactform/internal/config"
	"github.com/yanizio/contactform/internal/logger"
	"github.com/yanizio/contactform/internal/middleware"
	"github.com/yanizio/contactform/internal/requestinfo"
	"github.com/yanizio/contactform/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the contact form over HTTP",
	Long: `Starts the HTTP front-end.  Routes:

  GET  /              the form
  POST /              submit
  POST /api/contact   JSON events used by the live-validation script
  GET  /healthz       liveness check
  GET  /metrics       Prometheus metrics (metrics.enabled)

SIGINT or SIGTERM drains in-flight requests before exiting.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		return err
	}
	defer func() { _ = requestinfo.CloseGeo() }()

	handler, err := buildRouter(cfg, log)
	if err != nil {
		log.Errorw("router setup failed", "err", err)
		return err
	}
	srv := server.New(cfg.HTTP, handler)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("listening", "addr", srv.Addr, "force_https", cfg.HTTP.ForceHTTPS)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
		defer cancel()
		log.Infow("shutting down", "timeout", server.ShutdownTimeout)
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorw("serve stopped with error", "err", err)
		return err
	}
	log.Infow("serve stopped")
	return nil
}

// buildRouter wires middleware, health check, metrics, and every registered
// component.
func buildRouter(cfg *config.Config, log *zap.SugaredLogger) (http.Handler, error) {
	enrich, err := requestinfo.Middleware(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		middleware.RequestLog(log),
		chimw.Recoverer,
		middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS),
		middleware.Security(cfg.HTTP.ForceHTTPS),
		enrich,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	if err := component.Mount(r, component.Env{Config: cfg, Log: log}); err != nil {
		return nil, err
	}
	return r, nil
}

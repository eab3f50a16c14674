package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/sirupsen/logrus"

	hub "github.com/goliatone/go-contact-hub/components/hub"
	"github.com/goliatone/go-contact-hub/components/hub/gorouter"
	"github.com/goliatone/go-contact-hub/components/hub/httpapi"
)

type serveCmd struct {
	Engine        string `default:"fiber" enum:"fiber,stdlib" help:"HTTP engine: go-router over fiber or net/http."`
	Listen        string `help:"API listen address (overrides config)."`
	MetricsListen string `name:"metrics-listen" help:"Metrics listen address (overrides config, empty disables)."`
}

func (cmd *serveCmd) Run(a *app) error {
	listen := firstNonEmpty(cmd.Listen, a.cfg.Listen)
	metricsListen := firstNonEmpty(cmd.MetricsListen, a.cfg.MetricsListen)

	api := httpapi.NewHandlers(a.service, a.metrics)
	server, err := newAPIServer(cmd.Engine, listen, a.cfg.BasePath, api)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsSrv *http.Server
	if metricsListen != "" {
		metricsSrv = newMetricsServer(metricsListen, a)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.WithError(err).Error("hubctl: metrics server stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()
	a.logger.WithFields(logrus.Fields{
		"engine":    cmd.Engine,
		"listen":    listen,
		"metrics":   metricsListen,
		"base_path": a.cfg.BasePath,
		"store":     a.cfg.Store,
	}).Info("hubctl: serving contact hub")

	select {
	case err := <-errCh:
		if metricsSrv != nil {
			_ = metricsSrv.Close()
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	a.logger.Info("hubctl: shutting down")
	return server.Shutdown(shutdownCtx)
}

type apiServer interface {
	Serve() error
	Shutdown(ctx context.Context) error
}

type fiberServer struct {
	adapter router.Server[*fiber.App]
	addr    string
}

func (s fiberServer) Serve() error { return s.adapter.Serve(s.addr) }

func (s fiberServer) Shutdown(ctx context.Context) error { return s.adapter.Shutdown(ctx) }

type stdlibServer struct {
	srv *http.Server
}

func (s stdlibServer) Serve() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s stdlibServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func newAPIServer(engine, addr, basePath string, api *httpapi.Handlers) (apiServer, error) {
	switch engine {
	case "", "fiber":
		adapter := router.NewFiberAdapter(gorouter.FiberApp)
		if err := gorouter.Register(gorouter.Config[*fiber.App]{
			Router:   adapter.Router(),
			API:      api,
			BasePath: basePath,
		}); err != nil {
			return nil, fmt.Errorf("hubctl: register routes: %w", err)
		}
		return fiberServer{adapter: adapter, addr: addr}, nil
	case "stdlib":
		mux := http.NewServeMux()
		api.Register(mux, basePath)
		return stdlibServer{srv: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}}, nil
	default:
		return nil, fmt.Errorf("hubctl: unknown engine %q", engine)
	}
}

// newMetricsServer exposes Prometheus metrics and a health check.
func newMetricsServer(addr string, a *app) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := a.service.ListWidgets(r.Context()); err != nil {
			http.Error(w, hub.UserMessage(err), hub.StatusCode(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

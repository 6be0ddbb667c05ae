// Package server exposes the observability HTTP surface: Prometheus
// metrics and a health endpoint, with graceful shutdown.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-streamcount/pkg/logging"
	"github.com/dd0wney/cluso-streamcount/pkg/metrics"
)

// MetricsServer wraps an HTTP server with graceful shutdown.
type MetricsServer struct {
	server       *http.Server
	log          logging.Logger
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// NewMetricsServer creates a server exposing /metrics and /healthz on
// the given address.
func NewMetricsServer(addr string, reg *metrics.Registry, log logging.Logger) *MetricsServer {
	if log == nil {
		log = logging.DefaultLogger()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		reg.GetPrometheusRegistry(),
		promhttp.HandlerOpts{},
	))

	ms := &MetricsServer{
		server: &http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		log:        log.With(logging.Component("metrics-server")),
		shutdownCh: make(chan struct{}),
	}

	mux.HandleFunc("/healthz", ms.handleHealth)

	return ms
}

func (ms *MetricsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if ms.IsShuttingDown() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// Start serves until Shutdown is called. Blocks.
func (ms *MetricsServer) Start() error {
	ms.log.Info("serving metrics", logging.String("addr", ms.server.Addr))
	if err := ms.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains connections and stops the server. Idempotent.
func (ms *MetricsServer) Shutdown(timeout time.Duration) error {
	var err error
	ms.shutdownOnce.Do(func() {
		close(ms.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ms.log.Info("shutting down", logging.Duration("timeout", timeout))
		if shutdownErr := ms.server.Shutdown(ctx); shutdownErr != nil {
			err = shutdownErr
			ms.log.Error("shutdown failed", logging.Error(shutdownErr))
		}
	})
	return err
}

// IsShuttingDown returns true once shutdown has been initiated.
func (ms *MetricsServer) IsShuttingDown() bool {
	select {
	case <-ms.shutdownCh:
		return true
	default:
		return false
	}
}

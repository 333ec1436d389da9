// Package httpserver provides the status server for supervised entrypoints.
//
// The server only exists in supervise mode, where a wrapper process remains
// alive next to the downstream program. It reports liveness of the wrapper,
// readiness of the child, and a small status document for container log and
// orchestration debugging. Secret values never appear in any response; the
// status document lists exported slot names only.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/apexfleet/botstrap/common"
	"github.com/apexfleet/botstrap/metrics"
	"github.com/apexfleet/botstrap/runner"
)

// Config configures the status server.
type Config struct {
	ListenAddr  string
	MetricsAddr string
	EnablePprof bool
	Log         *slog.Logger

	GracefulShutdownDuration time.Duration
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
}

// Server serves liveness, readiness, and status endpoints for a supervised
// downstream process.
type Server struct {
	cfg *Config
	log *slog.Logger

	instance      string
	delaySeconds  int
	exportedSlots []string
	sup           *runner.Supervisor

	srv        *http.Server
	metricsSrv *metrics.MetricsServer
}

// New creates a status server reporting on the given supervisor. The
// instance name, applied delay, and exported slot names are baked into the
// status document at startup; they do not change after handoff.
func New(cfg *Config, sup *runner.Supervisor, instanceName string, delaySeconds int, exportedSlots []string) (*Server, error) {
	var metricsSrv *metrics.MetricsServer
	if cfg.MetricsAddr != "" {
		var err error
		metricsSrv, err = metrics.New(common.PackageName, cfg.MetricsAddr)
		if err != nil {
			return nil, err
		}
		metricsSrv.StartupDelaySeconds.Set(float64(delaySeconds))
		registerSupervisorMetrics(metricsSrv, sup)
	}

	srv := &Server{
		cfg:           cfg,
		log:           cfg.Log,
		instance:      instanceName,
		delaySeconds:  delaySeconds,
		exportedSlots: exportedSlots,
		sup:           sup,
		metricsSrv:    metricsSrv,
	}

	srv.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.getRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv, nil
}

func (srv *Server) getRouter() http.Handler {
	mux := chi.NewRouter()

	mux.With(srv.httpLogger).Get("/livez", srv.handleLivenessCheck)
	mux.With(srv.httpLogger).Get("/readyz", srv.handleReadinessCheck)
	mux.With(srv.httpLogger).Get("/status", srv.handleStatus)

	if srv.cfg.EnablePprof {
		srv.log.Info("pprof API enabled")
		mux.Mount("/debug", middleware.Profiler())
	}
	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

func (srv *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"alive"}`))
}

func (srv *Server) handleReadinessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !srv.sup.Running() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"child not running"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

type statusResponse struct {
	Instance         string    `json:"instance"`
	ChildPID         int       `json:"child_pid"`
	ChildRunning     bool      `json:"child_running"`
	ChildStartedAt   time.Time `json:"child_started_at"`
	DelaySeconds     int       `json:"delay_seconds"`
	ExportedSlots    []string  `json:"exported_slots"`
	SignalsForwarded int64     `json:"signals_forwarded"`
}

func (srv *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Instance:         srv.instance,
		ChildPID:         srv.sup.PID(),
		ChildRunning:     srv.sup.Running(),
		ChildStartedAt:   srv.sup.StartedAt(),
		DelaySeconds:     srv.delaySeconds,
		ExportedSlots:    srv.exportedSlots,
		SignalsForwarded: srv.sup.SignalsForwarded(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		srv.log.Error("Failed to encode status response", "err", err)
	}
}

// RunInBackground starts the status and metrics listeners.
func (srv *Server) RunInBackground() {
	if srv.metricsSrv != nil {
		go func() {
			srv.log.With("metricsAddress", srv.cfg.MetricsAddr).Info("Starting metrics server")
			err := srv.metricsSrv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				srv.log.Error("Metrics server failed", "err", err)
			}
		}()
	}

	if srv.cfg.ListenAddr != "" {
		go func() {
			srv.log.Info("Starting status server", "listenAddress", srv.cfg.ListenAddr)
			if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				srv.log.Error("Status server failed", "err", err)
			}
		}()
	}
}

// Shutdown gracefully stops both listeners.
func (srv *Server) Shutdown() {
	if srv.cfg.ListenAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
		defer cancel()
		if err := srv.srv.Shutdown(ctx); err != nil {
			srv.log.Error("Graceful status server shutdown failed", "err", err)
		} else {
			srv.log.Info("Status server gracefully stopped")
		}
	}

	if srv.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
		defer cancel()

		if err := srv.metricsSrv.Shutdown(ctx); err != nil {
			srv.log.Error("Graceful metrics server shutdown failed", "err", err)
		} else {
			srv.log.Info("Metrics server gracefully stopped")
		}
	}
}

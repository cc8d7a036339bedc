// Package server implements the onboarding REST API under /api.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"time"

	"github.com/balkashynov/onboard/internal/config"
	"github.com/balkashynov/onboard/internal/server/store"
)

// Server wires the store to the HTTP surface.
type Server struct {
	store     *store.Store
	jwtSecret []byte
	tokenTTL  time.Duration
	mux       *http.ServeMux
}

// New builds the server and registers every route.
func New(st *store.Store, jwtSecret string, tokenTTL time.Duration) *Server {
	s := &Server{
		store:     st,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler exposes the mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	mux := s.mux

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/users", s.authed(s.handleCreateUser, management...))

	mux.HandleFunc("GET /api/employees", s.authed(s.handleListEmployees, management...))
	mux.HandleFunc("GET /api/employees/{id}", s.authed(s.handleGetEmployee))
	mux.HandleFunc("GET /api/employees/{id}/tasks", s.authed(s.handleEmployeeTasks))
	mux.HandleFunc("GET /api/employees/{id}/activity", s.authed(s.handleEmployeeActivity))
	mux.HandleFunc("POST /api/employees/{id}/assign-template/{templateId}", s.authed(s.handleAssignTemplate, management...))

	mux.HandleFunc("GET /api/risks", s.authed(s.handleListRisks, management...))
	mux.HandleFunc("GET /api/risks/stats", s.authed(s.handleRiskStats, management...))

	mux.HandleFunc("POST /api/tasks/{id}/complete", s.authed(s.handleCompleteTask))
	mux.HandleFunc("POST /api/tasks/assign", s.authed(s.handleAssignTask, management...))
	mux.HandleFunc("PUT /api/tasks/{id}", s.authed(s.handleUpdateTask, management...))

	mux.HandleFunc("GET /api/alerts", s.authed(s.handleListAlerts, management...))
	mux.HandleFunc("POST /api/alerts", s.authed(s.handleCreateAlert, management...))

	mux.HandleFunc("GET /api/notifications", s.authed(s.handleListNotifications))
	mux.HandleFunc("PUT /api/notifications/{id}/read", s.authed(s.handleMarkNotificationRead))
	mux.HandleFunc("POST /api/notifications", s.authed(s.handleCreateNotification, management...))

	mux.HandleFunc("GET /api/templates", s.authed(s.handleListTemplates, management...))
	mux.HandleFunc("POST /api/templates", s.authed(s.handleCreateTemplate, management...))
	mux.HandleFunc("GET /api/templates/{id}", s.authed(s.handleGetTemplate, management...))
	mux.HandleFunc("PUT /api/templates/{id}", s.authed(s.handleUpdateTemplate, management...))
	mux.HandleFunc("DELETE /api/templates/{id}", s.authed(s.handleDeleteTemplate, management...))

	mux.HandleFunc("GET /api/reports/summary", s.authed(s.handleReportSummary, management...))
	mux.HandleFunc("GET /api/reports/weekly-risk-trend", s.authed(s.handleWeeklyRiskTrend, management...))
	mux.HandleFunc("GET /api/reports/download/pdf", s.authed(s.handleDownloadPDF, management...))
	mux.HandleFunc("GET /api/reports/download/csv", s.authed(s.handleDownloadCSV, management...))

	mux.HandleFunc("GET /api/dashboard/summary", s.authed(s.handleDashboardSummary, management...))
	mux.HandleFunc("GET /api/dashboard/risk-trend", s.authed(s.handleRiskTrend, management...))
	mux.HandleFunc("GET /api/dashboard/risk-heatmap", s.authed(s.handleRiskHeatmap, management...))
	mux.HandleFunc("GET /api/dashboard/top-improved", s.authed(s.handleTopImproved, management...))
	mux.HandleFunc("GET /api/dashboard/critical-focus", s.authed(s.handleCriticalFocus, management...))
}

// Run serves until SIGINT/SIGTERM, then drains within the grace
// period.
func Run(cfg config.Server) error {
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	s := New(st, cfg.JWTSecret, cfg.TokenTTL)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

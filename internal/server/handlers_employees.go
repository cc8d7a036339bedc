package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/server/store"
)

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Employees()
	if err != nil {
		slog.Error("list employees", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	out := make([]models.Employee, 0, len(users))
	for _, u := range users {
		out = append(out, employeeToWire(u, true))
	}
	writeJSON(w, http.StatusOK, out)
}

// selfOrManagement authorizes access to one employee's data: the
// employee themselves, or any HR/admin actor.
func selfOrManagement(actor store.User, id uint) bool {
	return actor.ID == id || models.IsManagement(actor.Role)
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	if !selfOrManagement(currentUser(r), id) {
		writeError(w, http.StatusForbidden, "")
		return
	}

	user, err := s.store.UserByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		slog.Error("get employee", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	// Risk assessment is an HR-facing field; employees see their own
	// record without it.
	includeRisk := models.IsManagement(currentUser(r).Role)
	writeJSON(w, http.StatusOK, employeeToWire(user, includeRisk))
}

func (s *Server) handleEmployeeTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	if !selfOrManagement(currentUser(r), id) {
		writeError(w, http.StatusForbidden, "")
		return
	}

	tasks, err := s.store.TasksForUser(id)
	if err != nil {
		slog.Error("employee tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, tasksToWire(tasks))
}

func (s *Server) handleEmployeeActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	if !selfOrManagement(currentUser(r), id) {
		writeError(w, http.StatusForbidden, "")
		return
	}

	entries, err := s.store.ActivityForUser(id)
	if err != nil {
		slog.Error("employee activity", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, activityToWire(entries))
}

func (s *Server) handleListRisks(w http.ResponseWriter, r *http.Request) {
	board, err := s.store.RiskBoard()
	if err != nil {
		slog.Error("risk board", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleRiskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.RiskStats()
	if err != nil {
		slog.Error("risk stats", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

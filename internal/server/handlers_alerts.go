package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/server/store"
)

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.store.Alerts()
	if err != nil {
		slog.Error("list alerts", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertToWire(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type         string `json:"type"`
		Message      string `json:"message"`
		TargetUserID *uint  `json:"target_user_id"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if payload.Type == "" {
		payload.Type = models.AlertInfo
	}

	alert, err := s.store.CreateAlert(payload.Type, payload.Message, currentUser(r).Name, payload.TargetUserID)
	if err != nil {
		slog.Error("create alert", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusCreated, alertToWire(alert))
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("user_id")
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || userID == 0 {
		writeError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	if !selfOrManagement(currentUser(r), uint(userID)) {
		writeError(w, http.StatusForbidden, "")
		return
	}

	notifications, err := s.store.NotificationsForUser(uint(userID))
	if err != nil {
		slog.Error("list notifications", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	out := make([]models.Notification, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationToWire(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := s.store.MarkNotificationRead(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		slog.Error("mark notification read", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCreateNotification(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID        uint   `json:"user_id"`
		Message       string `json:"message"`
		Type          string `json:"type"`
		RelatedTaskID *uint  `json:"related_task_id"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.UserID == 0 || payload.Message == "" {
		writeError(w, http.StatusBadRequest, "user_id and message are required")
		return
	}
	if payload.Type == "" {
		payload.Type = models.AlertInfo
	}
	if _, err := s.store.UserByID(payload.UserID); err != nil {
		writeError(w, http.StatusNotFound, "target user not found")
		return
	}

	notification, err := s.store.CreateNotification(payload.UserID, payload.Message, payload.Type, payload.RelatedTaskID)
	if err != nil {
		slog.Error("create notification", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusCreated, notificationToWire(notification))
}

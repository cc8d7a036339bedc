package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/server/store"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.Templates()
	if err != nil {
		slog.Error("list templates", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	out := make([]models.Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, templateToWire(t, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	template, err := s.store.TemplateByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		slog.Error("get template", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, templateToWire(template, true))
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string                `json:"name"`
		Tasks []models.TemplateTask `json:"tasks"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Name == "" {
		writeError(w, http.StatusBadRequest, "template name is required")
		return
	}

	template, err := s.store.CreateTemplate(payload.Name, currentUser(r).ID, payload.Tasks)
	if err != nil {
		slog.Error("create template", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusCreated, templateToWire(template, true))
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var payload struct {
		Name  string                `json:"name"`
		Tasks []models.TemplateTask `json:"tasks"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	template, err := s.store.UpdateTemplate(id, payload.Name, payload.Tasks)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		slog.Error("update template", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, templateToWire(template, true))
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := s.store.DeleteTemplate(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		slog.Error("delete template", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "template deleted"})
}

func (s *Server) handleAssignTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	templateID, ok := pathID(r, "templateId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	tasks, err := s.store.AssignTemplate(userID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "employee or template not found")
		case errors.Is(err, store.ErrTemplateEmpty):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("assign template", "error", err)
			writeError(w, http.StatusInternalServerError, "")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"tasks": tasksToWire(tasks)})
}

package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/balkashynov/onboard/internal/server/store"
)

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := s.store.TaskByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		slog.Error("load task", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	// Completion belongs to the assignee. HR marks progress through
	// the update endpoint instead.
	actor := currentUser(r)
	if task.AssignedTo != actor.ID {
		writeError(w, http.StatusForbidden, "only the assignee can complete a task")
		return
	}

	completed, err := s.store.CompleteTask(id)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyCompleted) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		slog.Error("complete task", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	_ = s.store.RecordActivity(actor.ID, "task_completed", completed.Title)
	writeJSON(w, http.StatusOK, taskToWire(completed))
}

func (s *Server) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		TaskType    string `json:"task_type"`
		DueDate     string `json:"due_date"`
		AssignedTo  uint   `json:"assigned_to"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Title == "" || payload.AssignedTo == 0 {
		writeError(w, http.StatusBadRequest, "title and assigned_to are required")
		return
	}
	if _, err := s.store.UserByID(payload.AssignedTo); err != nil {
		writeError(w, http.StatusNotFound, "assignee not found")
		return
	}

	var due *time.Time
	if payload.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", payload.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
			return
		}
		due = &parsed
	}

	task, err := s.store.CreateTask(payload.Title, payload.Description, payload.TaskType, due, payload.AssignedTo)
	if err != nil {
		slog.Error("assign task", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	_ = s.store.RecordActivity(payload.AssignedTo, "task_assigned", task.Title)
	writeJSON(w, http.StatusCreated, taskToWire(task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		DueDate     string `json:"due_date"`
		TimeSpent   int    `json:"time_spent"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd := store.TaskUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		TimeSpent:   payload.TimeSpent,
	}
	if payload.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", payload.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
			return
		}
		upd.DueDate = &parsed
	}

	task, err := s.store.UpdateTask(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "task not found")
		case errors.Is(err, store.ErrBackwardTransition):
			writeError(w, http.StatusConflict, err.Error())
		default:
			slog.Error("update task", "error", err)
			writeError(w, http.StatusInternalServerError, "")
		}
		return
	}
	writeJSON(w, http.StatusOK, taskToWire(task))
}

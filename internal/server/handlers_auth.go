package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/server/store"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.store.Authenticate(payload.Email, payload.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.signToken(user)
	if err != nil {
		slog.Error("sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	_ = s.store.RecordActivity(user.ID, "login", "")

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":     user.ID,
			"name":   user.Name,
			"role":   user.Role,
			"email":  user.Email,
			"avatar": user.Avatar,
		},
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		Role       string `json:"role"`
		Department string `json:"department"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	// Only admins can mint other admin or HR accounts.
	actor := currentUser(r)
	if models.IsManagement(payload.Role) && actor.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "only admins can create privileged accounts")
		return
	}

	user, err := s.store.CreateUser(payload.Name, payload.Email, payload.Password, payload.Role, payload.Department)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		slog.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	_ = s.store.RecordActivity(actor.ID, "user_created", user.Email)
	writeJSON(w, http.StatusCreated, employeeToWire(user, true))
}

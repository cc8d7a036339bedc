package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/server/store"
)

var (
	errEmptyToken   = errors.New("authorization token is required")
	errInvalidToken = errors.New("token is invalid")
)

type claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) signToken(user store.User) (string, error) {
	now := time.Now()
	c := claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.jwtSecret)
}

func (s *Server) parseToken(raw string) (claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return claims{}, errEmptyToken
	}

	parsed := &claims{}
	token, err := jwt.ParseWithClaims(raw, parsed, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return claims{}, fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if parsed.UserID == 0 && parsed.Subject != "" {
		if id, err := strconv.ParseUint(parsed.Subject, 10, 64); err == nil {
			parsed.UserID = uint(id)
		}
	}
	if parsed.UserID == 0 {
		return claims{}, fmt.Errorf("%w: user_id missing", errInvalidToken)
	}
	return *parsed, nil
}

type contextKey struct{}

var userKey contextKey

// currentUser returns the authenticated account stashed by authed.
func currentUser(r *http.Request) store.User {
	user, _ := r.Context().Value(userKey).(store.User)
	return user
}

// authed wraps a handler with bearer-token authentication. When roles
// are given, the account's role must be one of them; HR operations
// pass roles "hr", "admin".
func (s *Server) authed(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		c, err := s.parseToken(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "token is invalid or expired")
			return
		}

		// The account must still exist; a deleted user's token is dead.
		user, err := s.store.UserByID(c.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "account no longer exists")
			return
		}

		if len(roles) > 0 && !roleAllowed(user.Role, roles) {
			writeError(w, http.StatusForbidden, "insufficient privileges")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(role, a) {
			return true
		}
	}
	return false
}

// management is the role set for HR/admin-only operations.
var management = []string{models.RoleHR, models.RoleAdmin}

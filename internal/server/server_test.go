package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/server/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	t       *testing.T
	server  *Server
	store   *store.Store
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s := New(st, testSecret, time.Hour)
	return &testEnv{t: t, server: s, store: st, handler: s.Handler()}
}

func (e *testEnv) createUser(name, email, role string) store.User {
	e.t.Helper()
	user, err := e.store.CreateUser(name, email, "password123", role, "Engineering")
	if err != nil {
		e.t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (e *testEnv) login(email string) string {
	e.t.Helper()
	rec := e.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if rec.Code != http.StatusOK {
		e.t.Fatalf("login %s: status %d: %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		e.t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func (e *testEnv) request(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("Maya Chen", "maya@onboard.local", models.RoleEmployee)

	t.Run("wrong password", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "maya@onboard.local", "password": "nope",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "ghost@onboard.local", "password": "password123",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "maya@onboard.local", "password": "password123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		resp := decodeBody[struct {
			Token string `json:"token"`
			User  struct {
				Name string `json:"name"`
				Role string `json:"role"`
			} `json:"user"`
		}](t, rec)
		if resp.Token == "" {
			t.Fatal("expected a token")
		}
		if resp.User.Name != "Maya Chen" || resp.User.Role != models.RoleEmployee {
			t.Fatalf("unexpected user: %+v", resp.User)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("HR Person", "hr@onboard.local", models.RoleHR)
	emp := e.createUser("Maya Chen", "maya@onboard.local", models.RoleEmployee)

	t.Run("missing token", func(t *testing.T) {
		rec := e.request(http.MethodGet, "/api/employees", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := e.request(http.MethodGet, "/api/employees", "not-a-jwt", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})

	t.Run("employee blocked from management routes", func(t *testing.T) {
		token := e.login("maya@onboard.local")
		for _, path := range []string{
			"/api/employees",
			"/api/risks",
			"/api/risks/stats",
			"/api/alerts",
			"/api/templates",
			"/api/reports/summary",
			"/api/dashboard/summary",
		} {
			rec := e.request(http.MethodGet, path, token, nil)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("GET %s as employee: status %d, want 403", path, rec.Code)
			}
		}
	})

	t.Run("hr allowed on management routes", func(t *testing.T) {
		token := e.login("hr@onboard.local")
		rec := e.request(http.MethodGet, "/api/employees", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("employee reads own data only", func(t *testing.T) {
		token := e.login("maya@onboard.local")
		rec := e.request(http.MethodGet, fmt.Sprintf("/api/employees/%d/tasks", emp.ID), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("own tasks: status %d", rec.Code)
		}
		rec = e.request(http.MethodGet, fmt.Sprintf("/api/employees/%d/tasks", emp.ID+100), token, nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("other tasks: status %d, want 403", rec.Code)
		}
	})
}

func TestCompleteTask(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("HR Person", "hr@onboard.local", models.RoleHR)
	emp := e.createUser("Maya Chen", "maya@onboard.local", models.RoleEmployee)

	task, err := e.store.CreateTask("Sign NDA", "", models.TaskTypeForm, nil, emp.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	empToken := e.login("maya@onboard.local")
	hrToken := e.login("hr@onboard.local")

	t.Run("non-assignee forbidden", func(t *testing.T) {
		rec := e.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/complete", task.ID), hrToken, nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status %d, want 403", rec.Code)
		}
	})

	t.Run("assignee completes", func(t *testing.T) {
		rec := e.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/complete", task.ID), empToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		got := decodeBody[models.Task](t, rec)
		if got.Status != models.StatusCompleted {
			t.Fatalf("status %q, want Completed", got.Status)
		}
		if got.CompletedAt == nil {
			t.Fatal("expected completed_at to be set")
		}
	})

	t.Run("second completion conflicts", func(t *testing.T) {
		rec := e.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/complete", task.ID), empToken, nil)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status %d, want 409", rec.Code)
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/tasks/9999/complete", empToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status %d, want 404", rec.Code)
		}
	})
}

func TestUpdateTaskForwardOnly(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("HR Person", "hr@onboard.local", models.RoleHR)
	emp := e.createUser("Maya Chen", "maya@onboard.local", models.RoleEmployee)
	hrToken := e.login("hr@onboard.local")

	task, err := e.store.CreateTask("Watch training", "", models.TaskTypeVideo, nil, emp.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec := e.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), hrToken, map[string]any{
		"status": models.StatusInProgress,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("advance: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = e.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), hrToken, map[string]any{
		"status": models.StatusPending,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("backward transition: status %d, want 409", rec.Code)
	}
}

func TestAssignTask(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("HR Person", "hr@onboard.local", models.RoleHR)
	emp := e.createUser("Maya Chen", "maya@onboard.local", models.RoleEmployee)
	hrToken := e.login("hr@onboard.local")

	rec := e.request(http.MethodPost, "/api/tasks/assign", hrToken, map[string]any{
		"title":       "Set up laptop",
		"task_type":   models.TaskTypeForm,
		"due_date":    "2030-05-01",
		"assigned_to": emp.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeBody[models.Task](t, rec)
	if got.AssignedTo != emp.ID || got.Status != models.StatusPending {
		t.Fatalf("unexpected task: %+v", got)
	}
	if got.DueDate == nil || got.DueDate.Format("2006-01-02") != "2030-05-01" {
		t.Fatalf("unexpected due date: %v", got.DueDate)
	}

	rec = e.request(http.MethodPost, "/api/tasks/assign", hrToken, map[string]any{
		"title":       "Orphan task",
		"assigned_to": 9999,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown assignee: status %d, want 404", rec.Code)
	}
}

func TestTemplateLifecycle(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("HR Person", "hr@onboard.local", models.RoleHR)
	emp := e.createUser("Maya Chen", "maya@onboard.local", models.RoleEmployee)
	hrToken := e.login("hr@onboard.local")

	rec := e.request(http.MethodPost, "/api/templates", hrToken, map[string]any{
		"name": "Engineering Onboarding",
		"tasks": []map[string]any{
			{"task_name": "Sign NDA", "task_type": models.TaskTypeForm, "due_days": 1},
			{"task_name": "Watch security training", "task_type": models.TaskTypeVideo, "due_days": 5},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create template: status %d: %s", rec.Code, rec.Body.String())
	}
	tmpl := decodeBody[models.Template](t, rec)
	if len(tmpl.Tasks) != 2 {
		t.Fatalf("expected 2 blueprints, got %d", len(tmpl.Tasks))
	}

	rec = e.request(http.MethodPost, fmt.Sprintf("/api/employees/%d/assign-template/%d", emp.ID, tmpl.ID), hrToken, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("assign template: status %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[struct {
		Tasks []models.Task `json:"tasks"`
	}](t, rec)
	if len(resp.Tasks) != 2 {
		t.Fatalf("expected 2 instantiated tasks, got %d", len(resp.Tasks))
	}
	for _, task := range resp.Tasks {
		if task.AssignedTo != emp.ID {
			t.Fatalf("task assigned to %d, want %d", task.AssignedTo, emp.ID)
		}
		if task.DueDate == nil {
			t.Fatal("expected a due date from the blueprint offset")
		}
	}
	// Due dates follow the per-blueprint offsets.
	d0 := resp.Tasks[0].DueDate.Sub(time.Now())
	d1 := resp.Tasks[1].DueDate.Sub(time.Now())
	if d0 >= d1 {
		t.Fatalf("expected the 1-day task to be due before the 5-day task: %v vs %v", d0, d1)
	}

	rec = e.request(http.MethodDelete, fmt.Sprintf("/api/templates/%d", tmpl.ID), hrToken, nil)
	if rec.Code != http.StatusOK && rec.Code != http.StatusNoContent {
		t.Fatalf("delete template: status %d", rec.Code)
	}
	rec = e.request(http.MethodGet, fmt.Sprintf("/api/templates/%d", tmpl.ID), hrToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted template still served: status %d", rec.Code)
	}
}

func TestNotifications(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("HR Person", "hr@onboard.local", models.RoleHR)
	emp := e.createUser("Maya Chen", "maya@onboard.local", models.RoleEmployee)
	other := e.createUser("Liam Ortiz", "liam@onboard.local", models.RoleEmployee)
	hrToken := e.login("hr@onboard.local")
	empToken := e.login("maya@onboard.local")

	rec := e.request(http.MethodPost, "/api/notifications", hrToken, map[string]any{
		"user_id": emp.ID,
		"message": "Your NDA is overdue, please contact HR",
		"type":    models.AlertWarning,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create notification: status %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[models.Notification](t, rec)

	t.Run("employee cannot create", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/notifications", empToken, map[string]any{
			"user_id": emp.ID, "message": "hi",
		})
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status %d, want 403", rec.Code)
		}
	})

	t.Run("employee lists own", func(t *testing.T) {
		rec := e.request(http.MethodGet, fmt.Sprintf("/api/notifications?user_id=%d", emp.ID), empToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		list := decodeBody[[]models.Notification](t, rec)
		if len(list) != 1 || list[0].Message != created.Message {
			t.Fatalf("unexpected list: %+v", list)
		}
	})

	t.Run("employee cannot list another's", func(t *testing.T) {
		rec := e.request(http.MethodGet, fmt.Sprintf("/api/notifications?user_id=%d", other.ID), empToken, nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status %d, want 403", rec.Code)
		}
	})

	t.Run("mark read", func(t *testing.T) {
		rec := e.request(http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", created.ID), empToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		rec = e.request(http.MethodGet, fmt.Sprintf("/api/notifications?user_id=%d", emp.ID), empToken, nil)
		list := decodeBody[[]models.Notification](t, rec)
		if len(list) != 1 || !list[0].IsRead {
			t.Fatalf("expected the notification to be read: %+v", list)
		}
	})
}

func TestCreateUserPrivileges(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("Root Admin", "admin@onboard.local", models.RoleAdmin)
	e.createUser("HR Person", "hr@onboard.local", models.RoleHR)
	adminToken := e.login("admin@onboard.local")
	hrToken := e.login("hr@onboard.local")

	t.Run("hr cannot mint hr", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/users", hrToken, map[string]any{
			"name": "New HR", "email": "hr2@onboard.local", "password": "password123", "role": models.RoleHR,
		})
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status %d, want 403", rec.Code)
		}
	})

	t.Run("admin mints hr", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/users", adminToken, map[string]any{
			"name": "New HR", "email": "hr2@onboard.local", "password": "password123", "role": models.RoleHR,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("hr creates employee", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/users", hrToken, map[string]any{
			"name": "Noah Kim", "email": "noah@onboard.local", "password": "password123", "role": models.RoleEmployee,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := e.request(http.MethodPost, "/api/users", hrToken, map[string]any{
			"name": "Clone", "email": "noah@onboard.local", "password": "password123", "role": models.RoleEmployee,
		})
		if rec.Code != http.StatusConflict {
			t.Fatalf("status %d, want 409", rec.Code)
		}
	})
}

func TestReportsAndDashboard(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("HR Person", "hr@onboard.local", models.RoleHR)
	emp := e.createUser("Maya Chen", "maya@onboard.local", models.RoleEmployee)
	hrToken := e.login("hr@onboard.local")

	if _, err := e.store.CreateTask("Sign NDA", "", models.TaskTypeForm, nil, emp.ID); err != nil {
		t.Fatalf("create task: %v", err)
	}

	t.Run("summary", func(t *testing.T) {
		rec := e.request(http.MethodGet, "/api/reports/summary", hrToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		got := decodeBody[models.ReportSummary](t, rec)
		if got.TotalEmployees != 1 {
			t.Fatalf("total employees %d, want 1", got.TotalEmployees)
		}
	})

	t.Run("dashboard summary", func(t *testing.T) {
		rec := e.request(http.MethodGet, "/api/dashboard/summary", hrToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		got := decodeBody[models.DashboardSummary](t, rec)
		if got.TotalTasks != 1 || got.CompletedTasks != 0 {
			t.Fatalf("unexpected summary: %+v", got)
		}
	})

	t.Run("csv download", func(t *testing.T) {
		rec := e.request(http.MethodGet, "/api/reports/download/csv", hrToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
			t.Fatalf("content type %q, want text/csv", ct)
		}
		if rec.Body.Len() == 0 {
			t.Fatal("expected CSV bytes")
		}
	})

	t.Run("pdf download", func(t *testing.T) {
		rec := e.request(http.MethodGet, "/api/reports/download/pdf", hrToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("content type %q, want application/pdf", ct)
		}
		if rec.Body.Len() == 0 {
			t.Fatal("expected PDF bytes")
		}
	})

	t.Run("risk trend length", func(t *testing.T) {
		rec := e.request(http.MethodGet, "/api/reports/weekly-risk-trend", hrToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		got := decodeBody[[]models.RiskTrendPoint](t, rec)
		if len(got) != 7 {
			t.Fatalf("expected 7 days, got %d", len(got))
		}
	})
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/balkashynov/onboard/internal/models"
)

// The services below enumerate the whole remote operation catalog,
// one thin method+path mapping each. Views go through these and never
// build paths themselves.

// AuthService handles the public login operation.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a session. The avatar falls back to
// the name's initials when the backend has none on file.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID     uint   `json:"id"`
			Name   string `json:"name"`
			Role   string `json:"role"`
			Email  string `json:"email"`
			Avatar string `json:"avatar"`
		} `json:"user"`
	}
	if err := s.client.doPublic(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return models.Session{}, err
	}

	sess := models.Session{
		ID:     resp.User.ID,
		Name:   resp.User.Name,
		Role:   resp.User.Role,
		Email:  resp.User.Email,
		Avatar: resp.User.Avatar,
		Token:  resp.Token,
	}
	if sess.Avatar == "" {
		sess.Avatar = models.Initials(sess.Name)
	}
	return sess, nil
}

// UsersService creates accounts (admin surface).
type UsersService struct {
	client *Client
}

// CreateUserRequest is the payload for UsersService.Create.
type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

func (s *UsersService) Create(ctx context.Context, req CreateUserRequest) (models.Employee, error) {
	var out models.Employee
	err := s.client.do(ctx, http.MethodPost, "/users", req, &out)
	return out, err
}

// EmployeesService reads employee records and their task/activity
// feeds.
type EmployeesService struct {
	client *Client
}

func (s *EmployeesService) List(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := s.client.do(ctx, http.MethodGet, "/employees", nil, &out)
	return out, err
}

func (s *EmployeesService) Get(ctx context.Context, id uint) (models.Employee, error) {
	var out models.Employee
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d", id), nil, &out)
	return out, err
}

func (s *EmployeesService) Tasks(ctx context.Context, id uint) ([]models.Task, error) {
	var out []models.Task
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d/tasks", id), nil, &out)
	return out, err
}

func (s *EmployeesService) Activity(ctx context.Context, id uint) ([]models.ActivityEntry, error) {
	var out []models.ActivityEntry
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d/activity", id), nil, &out)
	return out, err
}

// RisksService reads the risk board. Values are served verbatim from
// the backend's stored assessment.
type RisksService struct {
	client *Client
}

func (s *RisksService) List(ctx context.Context) ([]models.RiskEntry, error) {
	var out []models.RiskEntry
	err := s.client.do(ctx, http.MethodGet, "/risks", nil, &out)
	return out, err
}

func (s *RisksService) Stats(ctx context.Context) (models.RiskStats, error) {
	var out models.RiskStats
	err := s.client.do(ctx, http.MethodGet, "/risks/stats", nil, &out)
	return out, err
}

// TasksService mutates onboarding tasks.
type TasksService struct {
	client *Client
}

// Complete marks a task done. The backend rejects re-completion;
// status only moves forward.
func (s *TasksService) Complete(ctx context.Context, id uint) (models.Task, error) {
	var out models.Task
	err := s.client.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/complete", id), nil, &out)
	return out, err
}

// AssignTaskRequest creates one ad-hoc task for an employee.
type AssignTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TaskType    string `json:"task_type"`
	DueDate     string `json:"due_date,omitempty"` // YYYY-MM-DD
	AssignedTo  uint   `json:"assigned_to"`
}

func (s *TasksService) Assign(ctx context.Context, req AssignTaskRequest) (models.Task, error) {
	var out models.Task
	err := s.client.do(ctx, http.MethodPost, "/tasks/assign", req, &out)
	return out, err
}

// UpdateTaskRequest edits task fields; a status change must be a
// forward transition.
type UpdateTaskRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	TimeSpent   int    `json:"time_spent,omitempty"`
}

func (s *TasksService) Update(ctx context.Context, id uint, req UpdateTaskRequest) (models.Task, error) {
	var out models.Task
	err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), req, &out)
	return out, err
}

// AlertsService reads and raises HR alerts.
type AlertsService struct {
	client *Client
}

func (s *AlertsService) List(ctx context.Context) ([]models.Alert, error) {
	var out []models.Alert
	err := s.client.do(ctx, http.MethodGet, "/alerts", nil, &out)
	return out, err
}

// CreateAlertRequest raises a manual alert.
type CreateAlertRequest struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	TargetUserID *uint  `json:"target_user_id,omitempty"`
}

func (s *AlertsService) Create(ctx context.Context, req CreateAlertRequest) (models.Alert, error) {
	var out models.Alert
	err := s.client.do(ctx, http.MethodPost, "/alerts", req, &out)
	return out, err
}

// NotificationsService reads and mutates employee notifications.
type NotificationsService struct {
	client *Client
}

func (s *NotificationsService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	var out []models.Notification
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/notifications?user_id=%d", userID), nil, &out)
	return out, err
}

func (s *NotificationsService) MarkRead(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

// CreateNotificationRequest sends a message to one employee,
// optionally tied to a task.
type CreateNotificationRequest struct {
	UserID        uint   `json:"user_id"`
	Message       string `json:"message"`
	Type          string `json:"type"`
	RelatedTaskID *uint  `json:"related_task_id,omitempty"`
}

func (s *NotificationsService) Create(ctx context.Context, req CreateNotificationRequest) (models.Notification, error) {
	var out models.Notification
	err := s.client.do(ctx, http.MethodPost, "/notifications", req, &out)
	return out, err
}

// TemplatesService manages onboarding templates and their assignment.
type TemplatesService struct {
	client *Client
}

func (s *TemplatesService) List(ctx context.Context) ([]models.Template, error) {
	var out []models.Template
	err := s.client.do(ctx, http.MethodGet, "/templates", nil, &out)
	return out, err
}

func (s *TemplatesService) Get(ctx context.Context, id uint) (models.Template, error) {
	var out models.Template
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/templates/%d", id), nil, &out)
	return out, err
}

// TemplateRequest creates or replaces a template definition.
type TemplateRequest struct {
	Name  string                `json:"name"`
	Tasks []models.TemplateTask `json:"tasks"`
}

func (s *TemplatesService) Create(ctx context.Context, req TemplateRequest) (models.Template, error) {
	var out models.Template
	err := s.client.do(ctx, http.MethodPost, "/templates", req, &out)
	return out, err
}

func (s *TemplatesService) Update(ctx context.Context, id uint, req TemplateRequest) (models.Template, error) {
	var out models.Template
	err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/templates/%d", id), req, &out)
	return out, err
}

func (s *TemplatesService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/templates/%d", id), nil, nil)
}

// Assign instantiates the template's blueprints as concrete tasks for
// one employee. The instantiation itself happens on the backend.
func (s *TemplatesService) Assign(ctx context.Context, employeeID, templateID uint) ([]models.Task, error) {
	var out struct {
		Tasks []models.Task `json:"tasks"`
	}
	path := fmt.Sprintf("/employees/%d/assign-template/%d", employeeID, templateID)
	err := s.client.do(ctx, http.MethodPost, path, nil, &out)
	return out.Tasks, err
}

// ReportsService reads report aggregates and file downloads.
type ReportsService struct {
	client *Client
}

func (s *ReportsService) Summary(ctx context.Context) (models.ReportSummary, error) {
	var out models.ReportSummary
	err := s.client.do(ctx, http.MethodGet, "/reports/summary", nil, &out)
	return out, err
}

func (s *ReportsService) WeeklyTrend(ctx context.Context) ([]models.RiskTrendPoint, error) {
	var out []models.RiskTrendPoint
	err := s.client.do(ctx, http.MethodGet, "/reports/weekly-risk-trend", nil, &out)
	return out, err
}

func (s *ReportsService) DownloadPDF(ctx context.Context) ([]byte, error) {
	return s.client.doRaw(ctx, http.MethodGet, "/reports/download/pdf")
}

func (s *ReportsService) DownloadCSV(ctx context.Context) ([]byte, error) {
	return s.client.doRaw(ctx, http.MethodGet, "/reports/download/csv")
}

// DashboardService reads the management dashboard aggregates.
type DashboardService struct {
	client *Client
}

func (s *DashboardService) Summary(ctx context.Context) (models.DashboardSummary, error) {
	var out models.DashboardSummary
	err := s.client.do(ctx, http.MethodGet, "/dashboard/summary", nil, &out)
	return out, err
}

func (s *DashboardService) RiskTrend(ctx context.Context) ([]models.RiskTrendPoint, error) {
	var out []models.RiskTrendPoint
	err := s.client.do(ctx, http.MethodGet, "/dashboard/risk-trend", nil, &out)
	return out, err
}

func (s *DashboardService) RiskHeatmap(ctx context.Context) ([]models.HeatmapCell, error) {
	var out []models.HeatmapCell
	err := s.client.do(ctx, http.MethodGet, "/dashboard/risk-heatmap", nil, &out)
	return out, err
}

func (s *DashboardService) TopImproved(ctx context.Context) ([]models.ImprovedEmployee, error) {
	var out []models.ImprovedEmployee
	err := s.client.do(ctx, http.MethodGet, "/dashboard/top-improved", nil, &out)
	return out, err
}

func (s *DashboardService) CriticalFocus(ctx context.Context) ([]models.CriticalFocus, error) {
	var out []models.CriticalFocus
	err := s.client.do(ctx, http.MethodGet, "/dashboard/critical-focus", nil, &out)
	return out, err
}

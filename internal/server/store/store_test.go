package store

import (
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/onboard/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	s := openTestStore(t)

	user, err := s.CreateUser("Maya Chen", "maya@onboard.local", "password123", models.RoleEmployee, "Engineering")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password must not be stored in plain text")
	}
	if user.Avatar != "MC" {
		t.Fatalf("expected initials avatar, got %q", user.Avatar)
	}

	if _, err := s.Authenticate("maya@onboard.local", "password123"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := s.Authenticate("maya@onboard.local", "wrong"); !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("expected ErrInvalidLogin, got %v", err)
	}
	if _, err := s.Authenticate("ghost@onboard.local", "password123"); !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("expected ErrInvalidLogin for unknown email, got %v", err)
	}

	if _, err := s.CreateUser("Clone", "maya@onboard.local", "password123", models.RoleEmployee, ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCompleteTaskIsTerminal(t *testing.T) {
	s := openTestStore(t)
	user, err := s.CreateUser("Maya Chen", "maya@onboard.local", "password123", models.RoleEmployee, "Engineering")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	task, err := s.CreateTask("Sign NDA", "", models.TaskTypeForm, nil, user.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	done, err := s.CompleteTask(task.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != models.StatusCompleted || done.CompletedAt == nil {
		t.Fatalf("unexpected completed task: %+v", done)
	}

	if _, err := s.CompleteTask(task.ID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}

	// The update path rejects backward transitions too.
	if _, err := s.UpdateTask(task.ID, TaskUpdate{Status: models.StatusPending}); !errors.Is(err, ErrBackwardTransition) {
		t.Fatalf("expected ErrBackwardTransition, got %v", err)
	}
}

func TestAssignTemplateOffsets(t *testing.T) {
	s := openTestStore(t)
	hr, err := s.CreateUser("HR Person", "hr@onboard.local", "password123", models.RoleHR, "People")
	if err != nil {
		t.Fatalf("create hr: %v", err)
	}
	emp, err := s.CreateUser("Maya Chen", "maya@onboard.local", "password123", models.RoleEmployee, "Engineering")
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	tmpl, err := s.CreateTemplate("Engineering Onboarding", hr.ID, []models.TemplateTask{
		{TaskName: "Sign NDA", TaskType: models.TaskTypeForm, DueDays: 1},
		{TaskName: "Watch training", TaskType: models.TaskTypeVideo, DueDays: 5},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	tasks, err := s.AssignTemplate(emp.ID, tmpl.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	now := time.Now()
	first := tasks[0].DueDate.Sub(now)
	second := tasks[1].DueDate.Sub(now)
	if first < 12*time.Hour || first > 36*time.Hour {
		t.Fatalf("first task due offset %v, want about 1 day", first)
	}
	if second < 4*24*time.Hour || second > 6*24*time.Hour {
		t.Fatalf("second task due offset %v, want about 5 days", second)
	}

	if _, err := s.AssignTemplate(9999, tmpl.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Seed(); !errors.Is(err, ErrAlreadySeeded) {
		t.Fatalf("expected ErrAlreadySeeded, got %v", err)
	}

	// Every demo account logs in with the shared demo password.
	for _, email := range []string{"admin@onboard.local", "hr@onboard.local", "maya@onboard.local"} {
		if _, err := s.Authenticate(email, "password123"); err != nil {
			t.Fatalf("authenticate %s: %v", email, err)
		}
	}

	stats, err := s.RiskStats()
	if err != nil {
		t.Fatalf("risk stats: %v", err)
	}
	if stats.TotalUsers == 0 {
		t.Fatal("expected seeded employees in the risk stats")
	}
}

func TestDashboardSummaryCounts(t *testing.T) {
	s := openTestStore(t)
	emp, err := s.CreateUser("Maya Chen", "maya@onboard.local", "password123", models.RoleEmployee, "Engineering")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t1, err := s.CreateTask("One", "", models.TaskTypeForm, nil, emp.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := s.CreateTask("Two", "", models.TaskTypeForm, nil, emp.ID); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := s.CompleteTask(t1.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	summary, err := s.DashboardSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalUsers != 1 || summary.TotalTasks != 2 || summary.CompletedTasks != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.AvgCompletion < 49 || summary.AvgCompletion > 51 {
		t.Fatalf("avg completion %.1f, want 50", summary.AvgCompletion)
	}
}

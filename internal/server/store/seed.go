package store

import (
	"errors"
	"time"

	"github.com/balkashynov/onboard/internal/models"
)

// ErrAlreadySeeded guards against doubling the demo data.
var ErrAlreadySeeded = errors.New("database already has users")

func ptr[T any](v T) *T { return &v }

// Seed loads a demo dataset: one account per role, an onboarding
// template, tasks in various states, alerts and notifications.
// Password for every demo account is "password123".
func (s *Store) Seed() error {
	var count int64
	if err := s.db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadySeeded
	}

	admin, err := s.CreateUser("Avery Quinn", "admin@onboard.local", "password123", models.RoleAdmin, "Operations")
	if err != nil {
		return err
	}
	hr, err := s.CreateUser("Harper Reyes", "hr@onboard.local", "password123", models.RoleHR, "People")
	if err != nil {
		return err
	}

	type seedEmployee struct {
		name, email, role, dept string
		score                   int
		risk                    string
		riskMessage             string
	}
	seedEmployees := []seedEmployee{
		{"Maya Chen", "maya@onboard.local", models.RoleEmployee, "Engineering", 80, models.RiskGood, "Ahead of schedule"},
		{"Liam Ortiz", "liam@onboard.local", models.RoleEmployee, "Engineering", 45, models.RiskWarning, "Two tasks overdue"},
		{"Sofia Novak", "sofia@onboard.local", models.RoleEmployee, "Sales", 20, models.RiskCritical, "No activity in 10 days"},
		{"Noah Kim", "noah@onboard.local", models.RoleIntern, "Design", 60, models.RiskNeutral, ""},
	}

	users := make([]User, 0, len(seedEmployees))
	for _, e := range seedEmployees {
		u, err := s.CreateUser(e.name, e.email, "password123", e.role, e.dept)
		if err != nil {
			return err
		}
		updates := map[string]any{"score": e.score, "risk": e.risk}
		if e.riskMessage != "" {
			updates["risk_message"] = e.riskMessage
		}
		if err := s.db.Model(&User{}).Where("id = ?", u.ID).Updates(updates).Error; err != nil {
			return err
		}
		users = append(users, u)
	}

	template, err := s.CreateTemplate("Engineering Onboarding", admin.ID, []models.TemplateTask{
		{TaskName: "Sign NDA", TaskType: models.TaskTypeForm, DueDays: 1, Description: "Legal paperwork"},
		{TaskName: "Watch security training", TaskType: models.TaskTypeVideo, DueDays: 3},
		{TaskName: "Upload ID document", TaskType: models.TaskTypeUpload, DueDays: 2},
		{TaskName: "Set up dev environment", TaskType: models.TaskTypeForm, DueDays: 5, Description: "Follow the team handbook"},
	})
	if err != nil {
		return err
	}
	if _, err := s.AssignTemplate(users[0].ID, template.ID); err != nil {
		return err
	}

	// A finished task, an in-progress one and an overdue one for the
	// at-risk accounts.
	now := time.Now()
	past := now.AddDate(0, 0, -5)
	soon := now.AddDate(0, 0, 2)
	done, err := s.CreateTask("Meet your buddy", "", models.TaskTypeForm, &soon, users[1].ID)
	if err != nil {
		return err
	}
	if _, err := s.CompleteTask(done.ID); err != nil {
		return err
	}
	if _, err := s.CreateTask("Complete HR paperwork", "", models.TaskTypeForm, &past, users[1].ID); err != nil {
		return err
	}
	if _, err := s.CreateTask("Watch company intro", "", models.TaskTypeVideo, &past, users[2].ID); err != nil {
		return err
	}
	if _, err := s.CreateTask("Portfolio review", "", models.TaskTypeUpload, &soon, users[3].ID); err != nil {
		return err
	}

	if _, err := s.CreateAlert(models.AlertCritical,
		"Sofia Novak has had no onboarding activity in 10 days", "System", ptr(users[2].ID)); err != nil {
		return err
	}
	if _, err := s.CreateAlert(models.AlertWarning,
		"Liam Ortiz has two overdue tasks", "System", ptr(users[1].ID)); err != nil {
		return err
	}
	if _, err := s.CreateAlert(models.AlertInfo,
		"Monitoring 4 employees for onboarding progress", "System", nil); err != nil {
		return err
	}

	if _, err := s.CreateNotification(users[1].ID,
		"Reminder: your HR paperwork is overdue", models.AlertWarning, nil); err != nil {
		return err
	}
	if _, err := s.CreateNotification(users[0].ID,
		"Welcome aboard! Your onboarding checklist is ready.", models.AlertInfo, nil); err != nil {
		return err
	}

	_ = s.RecordActivity(hr.ID, "seed", "demo dataset loaded")
	return nil
}

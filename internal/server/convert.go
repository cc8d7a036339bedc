package server

import (
	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/server/store"
)

// Wire converters. Risk fields are stripped unless the reader is
// allowed to see them.

func employeeToWire(u store.User, includeRisk bool) models.Employee {
	e := models.Employee{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		JoinedDate: u.JoinedDate.Format("2006-01-02"),
		Avatar:     u.Avatar,
	}
	if includeRisk {
		e.Score = u.Score
		e.Risk = u.Risk
		e.RiskMessage = u.RiskMessage
	}
	return e
}

func taskToWire(t store.Task) models.Task {
	return models.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Type:        t.TaskType,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		TimeSpent:   t.TimeSpent,
		AssignedTo:  t.AssignedTo,
	}
}

func tasksToWire(tasks []store.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToWire(t))
	}
	return out
}

func alertToWire(a store.Alert) models.Alert {
	return models.Alert{
		ID:           a.ID,
		Type:         a.Type,
		Message:      a.Message,
		TargetUserID: a.TargetUserID,
		Sender:       a.Sender,
		IsRead:       a.IsRead,
		CreatedAt:    a.CreatedAt,
	}
}

func notificationToWire(n store.Notification) models.Notification {
	return models.Notification{
		ID:            n.ID,
		UserID:        n.UserID,
		Message:       n.Message,
		Type:          n.Type,
		RelatedTaskID: n.RelatedTaskID,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}

func templateToWire(t store.Template, includeTasks bool) models.Template {
	out := models.Template{
		ID:        t.ID,
		Name:      t.Name,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt.Format("2006-01-02"),
		TaskCount: len(t.Tasks),
	}
	if includeTasks {
		for _, tt := range t.Tasks {
			out.Tasks = append(out.Tasks, models.TemplateTask{
				ID:          tt.ID,
				TaskName:    tt.TaskName,
				Description: tt.Description,
				TaskType:    tt.TaskType,
				DueDays:     tt.DueDays,
			})
		}
	}
	return out
}

func activityToWire(entries []store.Activity) []models.ActivityEntry {
	out := make([]models.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.ActivityEntry{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return out
}

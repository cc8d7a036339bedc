package models

import "time"

// Alert severities.
const (
	AlertInfo     = "Info"
	AlertWarning  = "Warning"
	AlertCritical = "Critical"
)

// Alert is an HR-facing event raised by an HR actor or by the backend
// risk evaluation. Alerts are append-only; the only mutation is the
// read flag.
type Alert struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	Message      string    `json:"message"`
	TargetUserID *uint     `json:"target_user_id"`
	Sender       string    `json:"sender"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// Notification is an employee-facing message, optionally tied to a
// task (e.g. an HR nudge about an overdue item).
type Notification struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Message       string    `json:"message"`
	Type          string    `json:"type"`
	RelatedTaskID *uint     `json:"related_task_id"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

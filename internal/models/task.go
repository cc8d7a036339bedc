package models

import "time"

// Task statuses. Transitions only move forward: Pending -> In Progress
// -> Completed. A completed task is never reopened.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task types mirror the onboarding content kinds.
const (
	TaskTypeVideo  = "Video"
	TaskTypeForm   = "Form"
	TaskTypeUpload = "Upload"
)

// Task is an onboarding checklist item assigned to one employee.
type Task struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"task_type"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	TimeSpent   int        `json:"time_spent,omitempty"` // minutes
	AssignedTo  uint       `json:"assigned_to"`
}

// Done reports whether the task reached its terminal status.
func (t Task) Done() bool {
	return t.Status == StatusCompleted
}

// Overdue reports whether an unfinished task's due date has passed.
// Overdue tasks get the "contact HR" affordance instead of
// self-service completion.
func (t Task) Overdue(now time.Time) bool {
	if t.Done() || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

// NextStatus validates a status transition. The empty string result
// means the transition is not allowed.
func NextStatus(from, to string) string {
	rank := map[string]int{StatusPending: 0, StatusInProgress: 1, StatusCompleted: 2}
	rf, okF := rank[from]
	rt, okT := rank[to]
	if !okF || !okT || rt <= rf {
		return ""
	}
	return to
}

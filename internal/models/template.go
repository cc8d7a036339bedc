package models

// TemplateTask is a task blueprint inside an onboarding template.
// DueDays is the offset from assignment date to due date.
type TemplateTask struct {
	ID          uint   `json:"id,omitempty"`
	TaskName    string `json:"task_name"`
	Description string `json:"description,omitempty"`
	TaskType    string `json:"task_type"`
	DueDays     int    `json:"due_days"`
}

// Template is an ordered set of task blueprints. Assigning a template
// to an employee instantiates each blueprint as a concrete Task on the
// backend.
type Template struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	CreatedBy uint           `json:"created_by,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	TaskCount int            `json:"task_count,omitempty"`
	Tasks     []TemplateTask `json:"tasks,omitempty"`
}

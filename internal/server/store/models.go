package store

import "time"

// User is an account: employees and interns being onboarded, plus the
// HR and admin actors. Risk fields are written by the seed or by an
// external risk process and served verbatim.
type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:employee"`
	Department   string
	JoinedDate   time.Time
	Avatar       string

	Score       *int
	Risk        *string
	RiskMessage *string
}

// Task is one onboarding checklist item. Status only moves forward:
// Pending -> In Progress -> Completed.
type Task struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string `gorm:"not null"`
	Description string
	TaskType    string `gorm:"default:Form"`
	Status      string `gorm:"default:Pending"`
	DueDate     *time.Time
	CompletedAt *time.Time
	TimeSpent   int
	AssignedTo  uint `gorm:"index;not null"`
}

// Alert is an HR-facing event, raised manually or by risk evaluation.
type Alert struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Type         string `gorm:"not null"`
	Message      string `gorm:"not null"`
	TargetUserID *uint
	Sender       string `gorm:"default:System"`
	IsRead       bool   `gorm:"default:false"`
}

// Notification is an employee-facing message.
type Notification struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	UserID        uint   `gorm:"index;not null"`
	Message       string `gorm:"not null"`
	Type          string `gorm:"default:Info"`
	RelatedTaskID *uint
	IsRead        bool `gorm:"default:false"`
}

// Template groups task blueprints for one onboarding track.
type Template struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Name      string `gorm:"not null"`
	CreatedBy uint

	Tasks []TemplateTask `gorm:"constraint:OnDelete:CASCADE;"`
}

// TemplateTask is a blueprint; DueDays offsets the due date from the
// assignment date.
type TemplateTask struct {
	ID         uint `gorm:"primarykey"`
	TemplateID uint `gorm:"index;not null"`

	TaskName    string `gorm:"not null"`
	Description string
	TaskType    string `gorm:"default:Form"`
	DueDays     int    `gorm:"default:3"`
	Position    int
}

// Activity is one row of a user's audit trail.
type Activity struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	UserID uint   `gorm:"index;not null"`
	Action string `gorm:"not null"`
	Detail string
}

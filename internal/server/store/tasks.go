package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/onboard/internal/models"
)

var (
	ErrAlreadyCompleted   = errors.New("task is already completed")
	ErrBackwardTransition = errors.New("task status cannot move backwards")
)

func (s *Store) TaskByID(id uint) (Task, error) {
	var task Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (s *Store) TasksForUser(userID uint) ([]Task, error) {
	var tasks []Task
	err := s.db.
		Where("assigned_to = ?", userID).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

// CreateTask adds one ad-hoc task.
func (s *Store) CreateTask(title, description, taskType string, dueDate *time.Time, assignedTo uint) (Task, error) {
	if taskType == "" {
		taskType = models.TaskTypeForm
	}
	task := Task{
		Title:       title,
		Description: description,
		TaskType:    taskType,
		Status:      models.StatusPending,
		DueDate:     dueDate,
		AssignedTo:  assignedTo,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return Task{}, err
	}
	return task, nil
}

// CompleteTask marks a task done. Completed tasks stay completed.
func (s *Store) CompleteTask(id uint) (Task, error) {
	task, err := s.TaskByID(id)
	if err != nil {
		return Task{}, err
	}
	if task.Status == models.StatusCompleted {
		return Task{}, ErrAlreadyCompleted
	}

	now := time.Now()
	task.Status = models.StatusCompleted
	task.CompletedAt = &now
	if err := s.db.Save(&task).Error; err != nil {
		return Task{}, err
	}
	return task, nil
}

// TaskUpdate carries the editable fields; zero values leave the field
// untouched.
type TaskUpdate struct {
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	TimeSpent   int
}

// UpdateTask edits a task. Status changes must be forward
// transitions.
func (s *Store) UpdateTask(id uint, upd TaskUpdate) (Task, error) {
	task, err := s.TaskByID(id)
	if err != nil {
		return Task{}, err
	}

	if upd.Status != "" && upd.Status != task.Status {
		if models.NextStatus(task.Status, upd.Status) == "" {
			return Task{}, ErrBackwardTransition
		}
		task.Status = upd.Status
		if upd.Status == models.StatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		}
	}
	if upd.Title != "" {
		task.Title = upd.Title
	}
	if upd.Description != "" {
		task.Description = upd.Description
	}
	if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}
	if upd.TimeSpent > 0 {
		task.TimeSpent = upd.TimeSpent
	}

	if err := s.db.Save(&task).Error; err != nil {
		return Task{}, err
	}
	return task, nil
}

// completionPercent is the share of a user's tasks that are done,
// 0-100. No tasks means 0.
func completionPercent(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}

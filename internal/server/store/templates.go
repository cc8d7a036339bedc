package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/onboard/internal/models"
)

var ErrTemplateEmpty = errors.New("template has no tasks")

func (s *Store) Templates() ([]Template, error) {
	var templates []Template
	err := s.db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("created_at").Find(&templates).Error
	return templates, err
}

func (s *Store) TemplateByID(id uint) (Template, error) {
	var template Template
	err := s.db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&template, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	return template, nil
}

// CreateTemplate stores a template and its ordered blueprints.
func (s *Store) CreateTemplate(name string, createdBy uint, tasks []models.TemplateTask) (Template, error) {
	template := Template{Name: name, CreatedBy: createdBy}
	for i, t := range tasks {
		dueDays := t.DueDays
		if dueDays <= 0 {
			dueDays = 3
		}
		taskType := t.TaskType
		if taskType == "" {
			taskType = models.TaskTypeForm
		}
		template.Tasks = append(template.Tasks, TemplateTask{
			TaskName:    t.TaskName,
			Description: t.Description,
			TaskType:    taskType,
			DueDays:     dueDays,
			Position:    i,
		})
	}
	if err := s.db.Create(&template).Error; err != nil {
		return Template{}, err
	}
	return template, nil
}

// UpdateTemplate replaces the template's name and blueprint list.
func (s *Store) UpdateTemplate(id uint, name string, tasks []models.TemplateTask) (Template, error) {
	template, err := s.TemplateByID(id)
	if err != nil {
		return Template{}, err
	}

	if name != "" {
		template.Name = name
		if err := s.db.Model(&Template{}).Where("id = ?", id).Update("name", name).Error; err != nil {
			return Template{}, err
		}
	}

	if tasks != nil {
		if err := s.db.Where("template_id = ?", id).Delete(&TemplateTask{}).Error; err != nil {
			return Template{}, err
		}
		for i, t := range tasks {
			dueDays := t.DueDays
			if dueDays <= 0 {
				dueDays = 3
			}
			row := TemplateTask{
				TemplateID:  id,
				TaskName:    t.TaskName,
				Description: t.Description,
				TaskType:    t.TaskType,
				DueDays:     dueDays,
				Position:    i,
			}
			if row.TaskType == "" {
				row.TaskType = models.TaskTypeForm
			}
			if err := s.db.Create(&row).Error; err != nil {
				return Template{}, err
			}
		}
	}

	return s.TemplateByID(id)
}

func (s *Store) DeleteTemplate(id uint) error {
	if _, err := s.TemplateByID(id); err != nil {
		return err
	}
	if err := s.db.Where("template_id = ?", id).Delete(&TemplateTask{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&Template{}, id).Error
}

// AssignTemplate instantiates every blueprint of the template as a
// concrete pending task for the user, due dates offset from now.
func (s *Store) AssignTemplate(userID, templateID uint) ([]Task, error) {
	if _, err := s.UserByID(userID); err != nil {
		return nil, err
	}
	template, err := s.TemplateByID(templateID)
	if err != nil {
		return nil, err
	}
	if len(template.Tasks) == 0 {
		return nil, ErrTemplateEmpty
	}

	start := time.Now()
	created := make([]Task, 0, len(template.Tasks))
	for _, tt := range template.Tasks {
		due := start.AddDate(0, 0, tt.DueDays)
		task := Task{
			Title:       tt.TaskName,
			Description: tt.Description,
			TaskType:    tt.TaskType,
			Status:      models.StatusPending,
			DueDate:     &due,
			AssignedTo:  userID,
		}
		if err := s.db.Create(&task).Error; err != nil {
			return nil, err
		}
		created = append(created, task)
	}

	_ = s.RecordActivity(userID, "template_assigned", template.Name)
	return created, nil
}

package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type GormTaskStor struct {
	db *gorm.DB
}

func NewGormTaskStor(db *gorm.DB) *GormTaskStor {
	return &GormTaskStor{db: db}
}

func (s *GormTaskStor) CreateTask(task *tfmodel.Task) (*tfmodel.Task, error) {
	var err error

	if task.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})

	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *GormTaskStor) GetTaskByID(taskID int) (*tfmodel.Task, error) {
	var task tfmodel.Task
	err := s.db.Preload("AssignedTo").Preload("Project").Preload("Creator").
		First(&task, taskID).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *GormTaskStor) GetTasksByAssignedUserID(userID int) ([]tfmodel.Task, error) {
	var tasks []tfmodel.Task
	result := s.db.Preload("AssignedTo").Preload("Creator").
		Where("assigned_to_user_id = ?", userID).
		Find(&tasks)
	return tasks, result.Error
}

func (s *GormTaskStor) GetAllTasks() ([]tfmodel.Task, error) {
	var tasks []tfmodel.Task
	result := s.db.Preload("AssignedTo").Preload("Creator").Find(&tasks)
	return tasks, result.Error
}

func (s *GormTaskStor) UpdateTask(task *tfmodel.Task) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		// A struct update would skip zero values, and a cleared assignee or
		// project needs to null out its column, so update by column map.
		return tx.Model(&tfmodel.Task{}).Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"title":               task.Title,
				"description":         task.Description,
				"due_date":            task.DueDate,
				"priority":            task.Priority,
				"status":              task.Status,
				"assigned_to_user_id": task.AssignedToUserID,
				"project_id":          task.ProjectID,
				"visibility":          task.Visibility,
			}).Error
	})
}

func (s *GormTaskStor) DeleteTask(taskID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&tfmodel.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", taskID).Delete(&tfmodel.Attachment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&tfmodel.Task{}, taskID).Error
	})
}

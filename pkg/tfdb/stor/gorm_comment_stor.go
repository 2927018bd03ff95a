package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type GormCommentStor struct {
	db *gorm.DB
}

func NewGormCommentStor(db *gorm.DB) *GormCommentStor {
	return &GormCommentStor{db: db}
}

func (s *GormCommentStor) CreateComment(comment *tfmodel.Comment) (*tfmodel.Comment, error) {
	var err error

	if comment.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(comment).Error
	})

	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *GormCommentStor) GetCommentsByTaskID(taskID int) ([]tfmodel.Comment, error) {
	var comments []tfmodel.Comment
	result := s.db.Preload("Author").Where("task_id = ?", taskID).Order("created_at").Find(&comments)
	return comments, result.Error
}

func (s *GormCommentStor) DeleteComment(commentID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Delete(&tfmodel.Comment{}, commentID).Error
	})
}

package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type GormAttachmentStor struct {
	db *gorm.DB
}

func NewGormAttachmentStor(db *gorm.DB) *GormAttachmentStor {
	return &GormAttachmentStor{db: db}
}

func (s *GormAttachmentStor) CreateAttachment(attachment *tfmodel.Attachment) (*tfmodel.Attachment, error) {
	var err error

	if attachment.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(attachment).Error
	})

	if err != nil {
		return nil, err
	}

	return attachment, nil
}

func (s *GormAttachmentStor) GetAttachmentByID(attachmentID int) (*tfmodel.Attachment, error) {
	var attachment tfmodel.Attachment
	if err := s.db.First(&attachment, attachmentID).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s *GormAttachmentStor) GetAttachmentsByTaskID(taskID int) ([]tfmodel.Attachment, error) {
	var attachments []tfmodel.Attachment
	result := s.db.Where("task_id = ?", taskID).Order("uploaded_at").Find(&attachments)
	return attachments, result.Error
}

func (s *GormAttachmentStor) DeleteAttachment(attachmentID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Delete(&tfmodel.Attachment{}, attachmentID).Error
	})
}

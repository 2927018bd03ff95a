package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type GormNotificationStor struct {
	db *gorm.DB
}

func NewGormNotificationStor(db *gorm.DB) *GormNotificationStor {
	return &GormNotificationStor{db: db}
}

func (s *GormNotificationStor) CreateNotification(notification *tfmodel.Notification) (*tfmodel.Notification, error) {
	var err error

	if notification.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(notification).Error
	})

	if err != nil {
		return nil, err
	}

	return notification, nil
}

func (s *GormNotificationStor) GetNotificationByID(notificationID int) (*tfmodel.Notification, error) {
	var notification tfmodel.Notification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

func (s *GormNotificationStor) GetNotificationsByUserID(userID int) ([]tfmodel.Notification, error) {
	var notifications []tfmodel.Notification
	result := s.db.Where("user_id = ?", userID).Order("sent_at desc").Find(&notifications)
	return notifications, result.Error
}

func (s *GormNotificationStor) MarkNotificationRead(notificationID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(&tfmodel.Notification{}).
			Where("id = ?", notificationID).
			Update("is_read", true).Error
	})
}

func (s *GormNotificationStor) DeleteNotification(notificationID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Delete(&tfmodel.Notification{}, notificationID).Error
	})
}

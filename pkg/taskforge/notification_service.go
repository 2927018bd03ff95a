package taskforge

import (
	"github.com/pkg/errors"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

// NotificationService lets a user read and manage their own notifications.
// Only the recipient may mark or delete a notification.
type NotificationService struct {
	notificationStor stor.NotificationStor
}

func NewNotificationService(notificationStor stor.NotificationStor) *NotificationService {
	return &NotificationService{notificationStor: notificationStor}
}

func (s *NotificationService) GetNotificationsForUser(userID int) ([]tfmodel.Notification, error) {
	notifications, err := s.notificationStor.GetNotificationsByUserID(userID)
	if err != nil {
		return nil, classifyStorErr(err, "notifications for user %d", userID)
	}
	return notifications, nil
}

func (s *NotificationService) MarkNotificationRead(notificationID, currentUserID int) error {
	notification, err := s.notificationStor.GetNotificationByID(notificationID)
	if err != nil {
		return classifyStorErr(err, "notification %d", notificationID)
	}

	if notification.UserID != currentUserID {
		return errors.Wrapf(ErrNotAuthorized, "user %d is not the recipient of notification %d", currentUserID, notificationID)
	}

	if err := s.notificationStor.MarkNotificationRead(notificationID); err != nil {
		return classifyStorErr(err, "marking notification %d read", notificationID)
	}

	return nil
}

func (s *NotificationService) DeleteNotification(notificationID, currentUserID int) error {
	notification, err := s.notificationStor.GetNotificationByID(notificationID)
	if err != nil {
		return classifyStorErr(err, "notification %d", notificationID)
	}

	if notification.UserID != currentUserID {
		return errors.Wrapf(ErrNotAuthorized, "user %d is not the recipient of notification %d", currentUserID, notificationID)
	}

	if err := s.notificationStor.DeleteNotification(notificationID); err != nil {
		return classifyStorErr(err, "deleting notification %d", notificationID)
	}

	return nil
}

package tfmodel

import "time"

type NotificationType string

const (
	NotificationGeneral        NotificationType = "GENERAL"
	NotificationTaskAssignment NotificationType = "TASK_ASSIGNMENT"
	NotificationTeamInvitation NotificationType = "TEAM_INVITATION"
)

// Notification is delivered to a single user. RelatedEntityID points at the
// entity the notification is about: the team for TEAM_INVITATION, the task
// for TASK_ASSIGNMENT.
type Notification struct {
	ID              int              `json:"id"`
	UUID            string           `json:"uuid"`
	UserID          int              `json:"user_id"`
	User            *User            `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Message         string           `json:"message"`
	SentAt          time.Time        `json:"sent_at"`
	IsRead          bool             `json:"is_read"`
	RelatedEntityID int              `json:"related_entity_id"`
	Type            NotificationType `json:"type"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

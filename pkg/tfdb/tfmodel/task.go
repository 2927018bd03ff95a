package tfmodel

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusBlocked    Status = "BLOCKED"
)

type Visibility string

const (
	VisibilityPublic     Visibility = "PUBLIC"
	VisibilityRestricted Visibility = "RESTRICTED"
	VisibilityPrivate    Visibility = "PRIVATE"
)

type Task struct {
	ID               int        `json:"id"`
	UUID             string     `json:"uuid"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	DueDate          *time.Time `json:"due_date"`
	Priority         Priority   `json:"priority"`
	Status           Status     `json:"status"`
	AssignedToUserID *int       `json:"assigned_to_user_id"`
	AssignedTo       *User      `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToUserID;references:ID"`
	ProjectID        *int       `json:"project_id"`
	Project          *Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
	Visibility       Visibility `json:"visibility"`
	CreatorID        int        `json:"creator_id"`
	Creator          *User      `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (t Task) IsAssignedTo(userID int) bool {
	return t.AssignedToUserID != nil && *t.AssignedToUserID == userID
}

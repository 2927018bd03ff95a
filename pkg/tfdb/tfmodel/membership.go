package tfmodel

import "time"

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleOwner  Role = "OWNER"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"

	// InvitationRejected is never persisted. Rejecting an invitation deletes
	// the membership row so the pair can be invited again later.
	InvitationRejected InvitationStatus = "REJECTED"
)

// UserTeamMembership is the edge between a user and a team. At most one row
// exists per (user, team) pair.
type UserTeamMembership struct {
	UserID           int              `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	TeamID           int              `json:"team_id" gorm:"primaryKey;autoIncrement:false"`
	User             *User            `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Team             *Team            `json:"team,omitempty" gorm:"foreignKey:TeamID;references:ID"`
	Role             Role             `json:"role"`
	InvitationStatus InvitationStatus `json:"invitation_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (UserTeamMembership) TableName() string {
	return "user_team_memberships"
}

func (m UserTeamMembership) IsAccepted() bool {
	return m.InvitationStatus == InvitationAccepted
}

func (m UserTeamMembership) IsAcceptedOwner() bool {
	return m.Role == RoleOwner && m.InvitationStatus == InvitationAccepted
}

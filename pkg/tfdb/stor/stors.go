package stor

import (
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type UserStor interface {
	CreateUser(user *tfmodel.User) (*tfmodel.User, error)
	GetUserByID(userID int) (*tfmodel.User, error)
	GetUserByUsername(username string) (*tfmodel.User, error)
	GetUserByEmail(email string) (*tfmodel.User, error)
	GetUserByAPIToken(apitoken string) (*tfmodel.User, error)
	GetAllUsers() ([]tfmodel.User, error)
	UpdateUser(user *tfmodel.User) error
	DeleteUser(userID int) error
}

type TeamStor interface {
	CreateTeam(team *tfmodel.Team) (*tfmodel.Team, error)
	CreateTeamWithOwner(team *tfmodel.Team, ownerID int) (*tfmodel.Team, error)
	GetTeamByID(teamID int) (*tfmodel.Team, error)
	GetTeamByName(name string) (*tfmodel.Team, error)
	GetAllTeams() ([]tfmodel.Team, error)
	UpdateTeam(team *tfmodel.Team) error
	DeleteTeam(teamID int) error
}

type MembershipStor interface {
	CreateMembership(membership *tfmodel.UserTeamMembership) (*tfmodel.UserTeamMembership, error)
	GetMembership(userID, teamID int) (*tfmodel.UserTeamMembership, error)
	GetMembershipsByUserID(userID int) ([]tfmodel.UserTeamMembership, error)
	GetMembershipsByTeamID(teamID int) ([]tfmodel.UserTeamMembership, error)
	UpdateMembership(membership *tfmodel.UserTeamMembership) error
	DeleteMembership(userID, teamID int) error
	CountAcceptedOwners(teamID int) (int64, error)
}

type ProjectStor interface {
	CreateProject(project *tfmodel.Project) (*tfmodel.Project, error)
	GetProjectByID(projectID int) (*tfmodel.Project, error)
	GetAllProjects() ([]tfmodel.Project, error)
	GetProjectsByTeamID(teamID int) ([]tfmodel.Project, error)
	UpdateProject(project *tfmodel.Project) error
	DeleteProject(projectID int) error
}

type TaskStor interface {
	CreateTask(task *tfmodel.Task) (*tfmodel.Task, error)
	GetTaskByID(taskID int) (*tfmodel.Task, error)
	GetTasksByAssignedUserID(userID int) ([]tfmodel.Task, error)
	GetAllTasks() ([]tfmodel.Task, error)
	UpdateTask(task *tfmodel.Task) error
	DeleteTask(taskID int) error
}

type NotificationStor interface {
	CreateNotification(notification *tfmodel.Notification) (*tfmodel.Notification, error)
	GetNotificationByID(notificationID int) (*tfmodel.Notification, error)
	GetNotificationsByUserID(userID int) ([]tfmodel.Notification, error)
	MarkNotificationRead(notificationID int) error
	DeleteNotification(notificationID int) error
}

type CommentStor interface {
	CreateComment(comment *tfmodel.Comment) (*tfmodel.Comment, error)
	GetCommentsByTaskID(taskID int) ([]tfmodel.Comment, error)
	DeleteComment(commentID int) error
}

type AttachmentStor interface {
	CreateAttachment(attachment *tfmodel.Attachment) (*tfmodel.Attachment, error)
	GetAttachmentByID(attachmentID int) (*tfmodel.Attachment, error)
	GetAttachmentsByTaskID(taskID int) ([]tfmodel.Attachment, error)
	DeleteAttachment(attachmentID int) error
}

type Stors struct {
	UserStor         UserStor
	TeamStor         TeamStor
	MembershipStor   MembershipStor
	ProjectStor      ProjectStor
	TaskStor         TaskStor
	NotificationStor NotificationStor
	CommentStor      CommentStor
	AttachmentStor   AttachmentStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		UserStor:         NewGormUserStor(db),
		TeamStor:         NewGormTeamStor(db),
		MembershipStor:   NewGormMembershipStor(db),
		ProjectStor:      NewGormProjectStor(db),
		TaskStor:         NewGormTaskStor(db),
		NotificationStor: NewGormNotificationStor(db),
		CommentStor:      NewGormCommentStor(db),
		AttachmentStor:   NewGormAttachmentStor(db),
	}
}

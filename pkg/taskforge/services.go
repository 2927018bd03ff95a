package taskforge

import (
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
)

// Services is the assembled service graph. Build it once at process start and
// pass the pieces down; every dependency is constructor-injected so tests can
// substitute stores freely.
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Teams         *TeamService
	Projects      *ProjectService
	Tasks         *TaskService
	Notifications *NotificationService
}

func NewServices(stors *stor.Stors) *Services {
	teams := NewTeamService(stors.UserStor, stors.TeamStor, stors.MembershipStor, stors.NotificationStor)

	return &Services{
		Auth:          NewAuthService(stors.UserStor),
		Users:         NewUserService(stors.UserStor),
		Teams:         teams,
		Projects:      NewProjectService(stors.ProjectStor, stors.TeamStor),
		Tasks:         NewTaskService(stors.TaskStor, stors.UserStor, stors.ProjectStor, stors.NotificationStor, stors.CommentStor, stors.AttachmentStor, teams),
		Notifications: NewNotificationService(stors.NotificationStor),
	}
}

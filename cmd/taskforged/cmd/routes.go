package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/taskforge/taskforge/pkg/taskforge"
	"github.com/taskforge/taskforge/pkg/taskforge/webapi"
	"github.com/taskforge/taskforge/pkg/taskforge/webapi/apimiddleware"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
)

type RouteOpts struct {
	services *taskforge.Services
	userStor stor.UserStor
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	authController := webapi.NewAuthController(opts.services.Auth)
	e.POST("/api/register", authController.Register)
	e.POST("/api/login", authController.Login)

	g := e.Group("/api")

	apikeyCache := apimiddleware.NewAPIKeyCache(opts.userStor)
	g.Use(apimiddleware.APIKeyAuth(apimiddleware.APIKeyConfig{
		Skipper:         func(c echo.Context) bool { return false },
		Keyname:         "apikey",
		GetUserByAPIKey: apikeyCache.GetUserByAPIKey,
	}))

	userController := webapi.NewUserController(opts.services.Users)
	g.GET("/users", userController.ListUsers)
	g.GET("/users/:id", userController.GetUser)
	g.PUT("/users/me", userController.UpdateCurrentUser)
	g.DELETE("/users/me", userController.DeleteCurrentUser)

	teamController := webapi.NewTeamController(opts.services.Teams)
	g.POST("/teams", teamController.CreateTeam)
	g.GET("/teams", teamController.ListTeams)
	g.GET("/teams/mine", teamController.ListMyTeams)
	g.GET("/teams/:id", teamController.GetTeam)
	g.PUT("/teams/:id", teamController.UpdateTeam)
	g.DELETE("/teams/:id", teamController.DeleteTeam)
	g.POST("/teams/:id/invitations", teamController.InviteUser)
	g.POST("/teams/:id/invitations/accept", teamController.AcceptInvitation)
	g.POST("/teams/:id/invitations/reject", teamController.RejectInvitation)
	g.GET("/teams/:id/members", teamController.ListMembers)
	g.GET("/teams/:id/memberships", teamController.ListMemberships)
	g.DELETE("/teams/:id/members/:userID", teamController.RemoveMember)
	g.PUT("/teams/:id/members/:userID/role", teamController.UpdateMemberRole)

	projectController := webapi.NewProjectController(opts.services.Projects)
	g.POST("/projects", projectController.CreateProject)
	g.GET("/projects", projectController.ListProjects)
	g.GET("/projects/:id", projectController.GetProject)
	g.GET("/teams/:teamID/projects", projectController.ListProjectsByTeam)
	g.PUT("/projects/:id", projectController.UpdateProject)
	g.DELETE("/projects/:id", projectController.DeleteProject)

	taskController := webapi.NewTaskController(opts.services.Tasks)
	g.POST("/tasks", taskController.CreateTask)
	g.GET("/tasks", taskController.ListVisibleTasks)
	g.GET("/tasks/:id", taskController.GetTask)
	g.GET("/users/:userID/tasks", taskController.ListAssignedTasks)
	g.PUT("/tasks/:id", taskController.UpdateTask)
	g.DELETE("/tasks/:id", taskController.DeleteTask)
	g.POST("/tasks/:id/comments", taskController.AddComment)
	g.GET("/tasks/:id/comments", taskController.ListComments)
	g.POST("/tasks/:id/attachments", taskController.AddAttachment)
	g.GET("/tasks/:id/attachments", taskController.ListAttachments)
	g.DELETE("/attachments/:id", taskController.DeleteAttachment)

	notificationController := webapi.NewNotificationController(opts.services.Notifications)
	g.GET("/notifications", notificationController.ListNotifications)
	g.POST("/notifications/:id/read", notificationController.MarkRead)
	g.DELETE("/notifications/:id", notificationController.DeleteNotification)
}

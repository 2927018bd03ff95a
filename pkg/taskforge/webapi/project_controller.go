package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/taskforge/pkg/taskforge"
)

type ProjectController struct {
	projectService *taskforge.ProjectService
}

func NewProjectController(projectService *taskforge.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

func (c *ProjectController) CreateProject(ctx echo.Context) error {
	var req struct {
		Name   string `json:"name" validate:"required"`
		TeamID int    `json:"team_id"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := c.projectService.CreateProject(req.Name, req.TeamID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, project)
}

func (c *ProjectController) GetProject(ctx echo.Context) error {
	projectID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	project, err := c.projectService.GetProjectByID(projectID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, project)
}

func (c *ProjectController) ListProjects(ctx echo.Context) error {
	projects, err := c.projectService.GetAllProjects()
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, projects)
}

func (c *ProjectController) ListProjectsByTeam(ctx echo.Context) error {
	teamID, err := pathID(ctx, "teamID")
	if err != nil {
		return err
	}

	projects, err := c.projectService.GetProjectsByTeam(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, projects)
}

func (c *ProjectController) UpdateProject(ctx echo.Context) error {
	projectID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req struct {
		Name   string `json:"name" validate:"required"`
		TeamID int    `json:"team_id"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.projectService.UpdateProject(projectID, req.Name, req.TeamID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *ProjectController) DeleteProject(ctx echo.Context) error {
	projectID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.projectService.DeleteProject(projectID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

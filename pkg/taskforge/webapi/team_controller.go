package webapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/taskforge/pkg/taskforge"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

type TeamController struct {
	teamService *taskforge.TeamService
}

func NewTeamController(teamService *taskforge.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := c.teamService.CreateTeam(req.Name, currentUser(ctx).ID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, team)
}

func (c *TeamController) GetTeam(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	team, err := c.teamService.GetTeamByID(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, team)
}

func (c *TeamController) ListTeams(ctx echo.Context) error {
	teams, err := c.teamService.GetAllTeams()
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, teams)
}

func (c *TeamController) ListMyTeams(ctx echo.Context) error {
	teams, err := c.teamService.GetTeamsForUser(currentUser(ctx).ID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, teams)
}

func (c *TeamController) UpdateTeam(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.requireOwner(ctx, teamID); err != nil {
		return err
	}

	if err := c.teamService.UpdateTeam(teamID, req.Name); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TeamController) DeleteTeam(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.requireOwner(ctx, teamID); err != nil {
		return err
	}

	if err := c.teamService.DeleteTeam(teamID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TeamController) InviteUser(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req struct {
		UserID int          `json:"user_id" validate:"required"`
		Role   tfmodel.Role `json:"role" validate:"required,oneof=MEMBER OWNER"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.requireOwner(ctx, teamID); err != nil {
		return err
	}

	if err := c.teamService.InviteUserToTeam(req.UserID, teamID, req.Role); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TeamController) AcceptInvitation(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.teamService.AcceptTeamInvitation(currentUser(ctx).ID, teamID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TeamController) RejectInvitation(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.teamService.RejectTeamInvitation(currentUser(ctx).ID, teamID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveMember removes a user from the team. An owner can remove anyone; any
// member can remove themselves to leave the team.
func (c *TeamController) RemoveMember(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	userID, err := pathID(ctx, "userID")
	if err != nil {
		return err
	}

	if userID != currentUser(ctx).ID {
		if err := c.requireOwner(ctx, teamID); err != nil {
			return err
		}
	}

	if err := c.teamService.RemoveUserFromTeam(userID, teamID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TeamController) UpdateMemberRole(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	userID, err := pathID(ctx, "userID")
	if err != nil {
		return err
	}

	var req struct {
		Role tfmodel.Role `json:"role" validate:"required,oneof=MEMBER OWNER"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.requireOwner(ctx, teamID); err != nil {
		return err
	}

	if err := c.teamService.UpdateTeamMemberRole(userID, teamID, req.Role); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TeamController) ListMembers(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	users, err := c.teamService.GetUsersInTeam(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, users)
}

func (c *TeamController) ListMemberships(ctx echo.Context) error {
	teamID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	memberships, err := c.teamService.GetTeamMemberships(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, memberships)
}

func (c *TeamController) requireOwner(ctx echo.Context, teamID int) error {
	isOwner, err := c.teamService.IsTeamOwner(currentUser(ctx).ID, teamID)
	if err != nil {
		return toHTTPError(err)
	}

	if !isOwner {
		return echo.NewHTTPError(http.StatusForbidden, "team owner required")
	}

	return nil
}

func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

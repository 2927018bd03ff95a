package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/taskforge/pkg/taskforge"
)

type UserController struct {
	userService *taskforge.UserService
}

func NewUserController(userService *taskforge.UserService) *UserController {
	return &UserController{userService: userService}
}

func (c *UserController) ListUsers(ctx echo.Context) error {
	users, err := c.userService.GetAllUsers()
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, users)
}

func (c *UserController) GetUser(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	user, err := c.userService.GetUserByID(userID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, user)
}

// UpdateCurrentUser updates the authenticated user's own account.
func (c *UserController) UpdateCurrentUser(ctx echo.Context) error {
	var req struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.userService.UpdateUser(currentUser(ctx).ID, req.Username, req.Email); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteCurrentUser deletes the authenticated user's own account.
func (c *UserController) DeleteCurrentUser(ctx echo.Context) error {
	if err := c.userService.DeleteUser(currentUser(ctx).ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

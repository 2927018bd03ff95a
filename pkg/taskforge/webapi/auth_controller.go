package webapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/taskforge/taskforge/pkg/taskforge"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

var validate = validator.New()

type AuthController struct {
	authService *taskforge.AuthService
}

func NewAuthController(authService *taskforge.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var req struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := c.authService.RegisterUser(req.Username, req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, registeredUser(user))
}

func (c *AuthController) Login(ctx echo.Context) error {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := c.authService.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, registeredUser(user))
}

// registeredUser includes the api token, which the User json tags otherwise
// hide. Only the register and login responses ever reveal it.
func registeredUser(user *tfmodel.User) map[string]interface{} {
	return map[string]interface{}{
		"id":        user.ID,
		"uuid":      user.UUID,
		"username":  user.Username,
		"email":     user.Email,
		"api_token": user.ApiToken,
	}
}

// currentUser returns the authenticated user the api key middleware stored on
// the request.
func currentUser(ctx echo.Context) tfmodel.User {
	return ctx.Get("User").(tfmodel.User)
}

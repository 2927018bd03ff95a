package webapi

import (
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/taskforge/taskforge/pkg/taskforge"
)

// toHTTPError maps a service failure onto an HTTP status. Infrastructure
// failures are logged here and surface as an opaque 500.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, taskforge.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, taskforge.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, taskforge.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, taskforge.ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, taskforge.ErrNotAuthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		log.Errorf("Internal error: %s", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

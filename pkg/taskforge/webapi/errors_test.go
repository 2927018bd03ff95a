package webapi

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/pkg/taskforge"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{taskforge.ErrValidation, http.StatusBadRequest},
		{taskforge.ErrNotFound, http.StatusNotFound},
		{taskforge.ErrConflict, http.StatusConflict},
		{taskforge.ErrInvalidState, http.StatusConflict},
		{taskforge.ErrNotAuthorized, http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, test := range tests {
		httpErr := toHTTPError(errors.Wrap(test.err, "doing something"))
		require.Equal(t, test.status, httpErr.Code, "wrong status for %s", test.err)
	}
}

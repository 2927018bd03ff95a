package taskforge

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	tc := newServiceTestCase(t)

	user, err := tc.services.Auth.RegisterUser("alice", "alice@example.com", "secret-password")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEmpty(t, user.UUID)
	require.NotEmpty(t, user.ApiToken)

	// The stored password is a bcrypt hash, never the plain text.
	require.NotEqual(t, "secret-password", user.Password)
}

func TestRegisterUserValidation(t *testing.T) {
	tc := newServiceTestCase(t)

	_, err := tc.services.Auth.RegisterUser("", "alice@example.com", "secret-password")
	require.True(t, errors.Is(err, ErrValidation))

	_, err = tc.services.Auth.RegisterUser("alice", "", "secret-password")
	require.True(t, errors.Is(err, ErrValidation))

	_, err = tc.services.Auth.RegisterUser("alice", "alice@example.com", "  ")
	require.True(t, errors.Is(err, ErrValidation))
}

func TestRegisterUserConflicts(t *testing.T) {
	tc := newServiceTestCase(t)
	tc.createUser("alice")

	_, err := tc.services.Auth.RegisterUser("alice", "other@example.com", "secret-password")
	require.True(t, errors.Is(err, ErrConflict))

	_, err = tc.services.Auth.RegisterUser("alice2", "alice@example.com", "secret-password")
	require.True(t, errors.Is(err, ErrConflict))
}

func TestAuthenticateUser(t *testing.T) {
	tc := newServiceTestCase(t)
	registered := tc.createUser("alice")

	user, err := tc.services.Auth.AuthenticateUser("alice", "test-password")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	// A wrong password and an unknown username both read the same.
	_, err = tc.services.Auth.AuthenticateUser("alice", "wrong-password")
	require.True(t, errors.Is(err, ErrNotAuthorized))

	_, err = tc.services.Auth.AuthenticateUser("nobody", "test-password")
	require.True(t, errors.Is(err, ErrNotAuthorized))
}

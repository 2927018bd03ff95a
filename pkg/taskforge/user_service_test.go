package taskforge

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

// failingLookupUserStor fails username lookups to stand in for a storage
// outage during the uniqueness check.
type failingLookupUserStor struct {
	stor.UserStor
	err error
}

func (s failingLookupUserStor) GetUserByUsername(string) (*tfmodel.User, error) {
	return nil, s.err
}

func TestUpdateUser(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	tc.createUser("bob")

	require.NoError(t, tc.services.Users.UpdateUser(alice.ID, "alice2", "alice2@example.com"))

	user, err := tc.services.Users.GetUserByID(alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice2", user.Username)
	require.Equal(t, "alice2@example.com", user.Email)

	// Colliding with another user's name or email is refused.
	err = tc.services.Users.UpdateUser(alice.ID, "bob", "alice2@example.com")
	require.True(t, errors.Is(err, ErrConflict))

	err = tc.services.Users.UpdateUser(alice.ID, "alice2", "bob@example.com")
	require.True(t, errors.Is(err, ErrConflict))

	// Keeping its own values is not a collision.
	require.NoError(t, tc.services.Users.UpdateUser(alice.ID, "alice2", "alice2@example.com"))

	err = tc.services.Users.UpdateUser(9999, "ghost", "ghost@example.com")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateUserLookupFailureSurfaces(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")

	users := NewUserService(failingLookupUserStor{
		UserStor: tc.stors.UserStor,
		err:      errors.New("connection reset"),
	})

	// A failed uniqueness lookup must abort the update, not pass as
	// "no conflict".
	err := users.UpdateUser(alice.ID, "alice2", "alice2@example.com")
	require.True(t, errors.Is(err, ErrInfrastructure))

	user, err := tc.services.Users.GetUserByID(alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}

func TestDeleteUser(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", bob.ID)
	tc.addMember(alice.ID, team.ID, tfmodel.RoleMember)
	tc.createTask(taskReq("Alice's task"), alice.ID)

	require.NoError(t, tc.services.Users.DeleteUser(alice.ID))

	_, err := tc.services.Users.GetUserByID(alice.ID)
	require.True(t, errors.Is(err, ErrNotFound))

	// Her membership and created tasks went with her.
	_, err = tc.services.Teams.GetMembership(alice.ID, team.ID)
	require.True(t, errors.Is(err, ErrNotFound))

	tasks, err := tc.services.Tasks.GetAllVisibleTasks(bob.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)

	require.True(t, errors.Is(tc.services.Users.DeleteUser(9999), ErrNotFound))
}

func TestGetAllUsers(t *testing.T) {
	tc := newServiceTestCase(t)
	tc.createUser("alice")
	tc.createUser("bob")

	users, err := tc.services.Users.GetAllUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
}

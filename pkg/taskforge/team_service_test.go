package taskforge

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

// failingLookupTeamStor fails name lookups to stand in for a storage outage
// during the uniqueness check.
type failingLookupTeamStor struct {
	stor.TeamStor
	err error
}

func (s failingLookupTeamStor) GetTeamByName(string) (*tfmodel.Team, error) {
	return nil, s.err
}

func TestCreateTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	creator := tc.createUser("alice")

	team, err := tc.services.Teams.CreateTeam("Engineering", creator.ID)
	require.NoError(t, err)
	require.Equal(t, "Engineering", team.Name)

	// The creator becomes an accepted owner in the same operation.
	membership, err := tc.services.Teams.GetMembership(creator.ID, team.ID)
	require.NoError(t, err)
	require.Equal(t, tfmodel.RoleOwner, membership.Role)
	require.Equal(t, tfmodel.InvitationAccepted, membership.InvitationStatus)
}

func TestCreateTeamValidation(t *testing.T) {
	tc := newServiceTestCase(t)
	creator := tc.createUser("alice")

	_, err := tc.services.Teams.CreateTeam("", creator.ID)
	require.True(t, errors.Is(err, ErrValidation))

	_, err = tc.services.Teams.CreateTeam("   ", creator.ID)
	require.True(t, errors.Is(err, ErrValidation))

	_, err = tc.services.Teams.CreateTeam("Ghost Team", 9999)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateTeamDuplicateName(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")

	_, err := tc.services.Teams.CreateTeam("Dup", alice.ID)
	require.NoError(t, err)

	_, err = tc.services.Teams.CreateTeam("Dup", bob.ID)
	require.True(t, errors.Is(err, ErrConflict))

	teams, err := tc.services.Teams.GetAllTeams()
	require.NoError(t, err)
	require.Len(t, teams, 1)
}

func TestInviteUserToTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	err := tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleMember)
	require.NoError(t, err)

	membership, err := tc.services.Teams.GetMembership(bob.ID, team.ID)
	require.NoError(t, err)
	require.Equal(t, tfmodel.InvitationPending, membership.InvitationStatus)
	require.Equal(t, tfmodel.RoleMember, membership.Role)

	// The invitee gets a TEAM_INVITATION notification pointing at the team.
	notifications := tc.notificationsFor(bob.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, tfmodel.NotificationTeamInvitation, notifications[0].Type)
	require.Equal(t, team.ID, notifications[0].RelatedEntityID)
}

func TestInviteUserToTeamConflicts(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	require.True(t, errors.Is(tc.services.Teams.InviteUserToTeam(9999, team.ID, tfmodel.RoleMember), ErrNotFound))
	require.True(t, errors.Is(tc.services.Teams.InviteUserToTeam(bob.ID, 9999, tfmodel.RoleMember), ErrNotFound))

	require.NoError(t, tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleMember))

	// A second invite is refused while the pending record exists.
	err := tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleMember)
	require.True(t, errors.Is(err, ErrConflict))

	// Still refused once accepted.
	require.NoError(t, tc.services.Teams.AcceptTeamInvitation(bob.ID, team.ID))
	err = tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleMember)
	require.True(t, errors.Is(err, ErrConflict))

	// The creator's own membership blocks inviting them too.
	err = tc.services.Teams.InviteUserToTeam(alice.ID, team.ID, tfmodel.RoleOwner)
	require.True(t, errors.Is(err, ErrConflict))
}

func TestAcceptTeamInvitation(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	require.True(t, errors.Is(tc.services.Teams.AcceptTeamInvitation(bob.ID, team.ID), ErrNotFound))

	require.NoError(t, tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleOwner))
	require.NoError(t, tc.services.Teams.AcceptTeamInvitation(bob.ID, team.ID))

	// The role chosen at invite time sticks.
	membership, err := tc.services.Teams.GetMembership(bob.ID, team.ID)
	require.NoError(t, err)
	require.Equal(t, tfmodel.RoleOwner, membership.Role)
	require.Equal(t, tfmodel.InvitationAccepted, membership.InvitationStatus)

	// Accepting twice is an invalid state transition.
	err = tc.services.Teams.AcceptTeamInvitation(bob.ID, team.ID)
	require.True(t, errors.Is(err, ErrInvalidState))
}

func TestRejectTeamInvitation(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	require.True(t, errors.Is(tc.services.Teams.RejectTeamInvitation(bob.ID, team.ID), ErrNotFound))

	require.NoError(t, tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleMember))
	require.NoError(t, tc.services.Teams.RejectTeamInvitation(bob.ID, team.ID))

	// Rejection deletes the record entirely.
	_, err := tc.services.Teams.GetMembership(bob.ID, team.ID)
	require.True(t, errors.Is(err, ErrNotFound))

	// Which means the user can be invited again.
	require.NoError(t, tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleMember))
}

func TestRejectAcceptedMembership(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	tc.addMember(bob.ID, team.ID, tfmodel.RoleMember)

	err := tc.services.Teams.RejectTeamInvitation(bob.ID, team.ID)
	require.True(t, errors.Is(err, ErrInvalidState))
}

func TestRemoveUserFromTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	tc.addMember(bob.ID, team.ID, tfmodel.RoleMember)

	require.True(t, errors.Is(tc.services.Teams.RemoveUserFromTeam(9999, team.ID), ErrNotFound))

	require.NoError(t, tc.services.Teams.RemoveUserFromTeam(bob.ID, team.ID))
	_, err := tc.services.Teams.GetMembership(bob.ID, team.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestRemoveLastOwnerRefused(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	err := tc.services.Teams.RemoveUserFromTeam(alice.ID, team.ID)
	require.True(t, errors.Is(err, ErrInvalidState))

	// With a second owner in place the removal goes through.
	tc.addMember(bob.ID, team.ID, tfmodel.RoleOwner)
	require.NoError(t, tc.services.Teams.RemoveUserFromTeam(alice.ID, team.ID))
}

func TestUpdateTeamMemberRole(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	tc.addMember(bob.ID, team.ID, tfmodel.RoleMember)

	require.NoError(t, tc.services.Teams.UpdateTeamMemberRole(bob.ID, team.ID, tfmodel.RoleOwner))

	isOwner, err := tc.services.Teams.IsTeamOwner(bob.ID, team.ID)
	require.NoError(t, err)
	require.True(t, isOwner)

	// Two owners now, so either may be demoted.
	require.NoError(t, tc.services.Teams.UpdateTeamMemberRole(alice.ID, team.ID, tfmodel.RoleMember))

	// Bob is the only owner left; demoting him would orphan the team.
	err = tc.services.Teams.UpdateTeamMemberRole(bob.ID, team.ID, tfmodel.RoleMember)
	require.True(t, errors.Is(err, ErrInvalidState))
}

func TestIsTeamOwner(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	isOwner, err := tc.services.Teams.IsTeamOwner(alice.ID, team.ID)
	require.NoError(t, err)
	require.True(t, isOwner)

	// No membership at all reads as not-owner, not as a failure.
	isOwner, err = tc.services.Teams.IsTeamOwner(bob.ID, team.ID)
	require.NoError(t, err)
	require.False(t, isOwner)

	// A pending owner invitation doesn't confer ownership.
	require.NoError(t, tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleOwner))
	isOwner, err = tc.services.Teams.IsTeamOwner(bob.ID, team.ID)
	require.NoError(t, err)
	require.False(t, isOwner)

	// Repeated reads with no mutation in between agree.
	for i := 0; i < 3; i++ {
		again, err := tc.services.Teams.IsTeamOwner(alice.ID, team.ID)
		require.NoError(t, err)
		require.True(t, again)
	}
}

func TestIsUserMemberOfTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	team := tc.createTeam("Engineering", alice.ID)

	isMember, err := tc.services.Teams.IsUserMemberOfTeam(bob.ID, team.ID)
	require.NoError(t, err)
	require.False(t, isMember)

	require.NoError(t, tc.services.Teams.InviteUserToTeam(bob.ID, team.ID, tfmodel.RoleMember))

	// Pending isn't membership yet.
	isMember, err = tc.services.Teams.IsUserMemberOfTeam(bob.ID, team.ID)
	require.NoError(t, err)
	require.False(t, isMember)

	require.NoError(t, tc.services.Teams.AcceptTeamInvitation(bob.ID, team.ID))
	isMember, err = tc.services.Teams.IsUserMemberOfTeam(bob.ID, team.ID)
	require.NoError(t, err)
	require.True(t, isMember)
}

func TestAreUsersInSameTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	carol := tc.createUser("carol")
	team := tc.createTeam("Engineering", alice.ID)

	same, err := tc.services.Teams.AreUsersInSameTeam(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, same)

	tc.addMember(bob.ID, team.ID, tfmodel.RoleMember)

	same, err = tc.services.Teams.AreUsersInSameTeam(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, same)

	// A pending invitation doesn't put carol on the team.
	require.NoError(t, tc.services.Teams.InviteUserToTeam(carol.ID, team.ID, tfmodel.RoleMember))
	same, err = tc.services.Teams.AreUsersInSameTeam(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, same)
}

func TestGetTeamsForUserAndUsersInTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	bob := tc.createUser("bob")
	engineering := tc.createTeam("Engineering", alice.ID)
	design := tc.createTeam("Design", bob.ID)

	tc.addMember(bob.ID, engineering.ID, tfmodel.RoleMember)

	teams, err := tc.services.Teams.GetTeamsForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	users, err := tc.services.Teams.GetUsersInTeam(engineering.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = tc.services.Teams.GetUsersInTeam(design.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, bob.ID, users[0].ID)
}

func TestUpdateTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	engineering := tc.createTeam("Engineering", alice.ID)
	tc.createTeam("Design", alice.ID)

	require.True(t, errors.Is(tc.services.Teams.UpdateTeam(9999, "X"), ErrNotFound))
	require.True(t, errors.Is(tc.services.Teams.UpdateTeam(engineering.ID, ""), ErrValidation))
	require.True(t, errors.Is(tc.services.Teams.UpdateTeam(engineering.ID, "Design"), ErrConflict))

	// Renaming to its own current name is fine.
	require.NoError(t, tc.services.Teams.UpdateTeam(engineering.ID, "Engineering"))

	require.NoError(t, tc.services.Teams.UpdateTeam(engineering.ID, "Platform"))
	team, err := tc.services.Teams.GetTeamByID(engineering.ID)
	require.NoError(t, err)
	require.Equal(t, "Platform", team.Name)
}

func TestUpdateTeamLookupFailureSurfaces(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	team := tc.createTeam("Engineering", alice.ID)

	teams := NewTeamService(tc.stors.UserStor, failingLookupTeamStor{
		TeamStor: tc.stors.TeamStor,
		err:      errors.New("connection reset"),
	}, tc.stors.MembershipStor, tc.stors.NotificationStor)

	// A failed uniqueness lookup must abort the rename, not pass as
	// "no conflict".
	err := teams.UpdateTeam(team.ID, "Platform")
	require.True(t, errors.Is(err, ErrInfrastructure))

	unchanged, err := tc.services.Teams.GetTeamByID(team.ID)
	require.NoError(t, err)
	require.Equal(t, "Engineering", unchanged.Name)
}

func TestDeleteTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	team := tc.createTeam("Engineering", alice.ID)

	require.True(t, errors.Is(tc.services.Teams.DeleteTeam(9999), ErrNotFound))

	require.NoError(t, tc.services.Teams.DeleteTeam(team.ID))
	_, err := tc.services.Teams.GetTeamByID(team.ID)
	require.True(t, errors.Is(err, ErrNotFound))

	// Memberships went with the team.
	_, err = tc.services.Teams.GetMembership(alice.ID, team.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

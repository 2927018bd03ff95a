package taskforge

import (
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

// TeamService owns the team membership and invitation rules: who belongs to a
// team, how invitations move through their lifecycle, and the ownership
// invariant that every team keeps at least one accepted owner.
type TeamService struct {
	userStor         stor.UserStor
	teamStor         stor.TeamStor
	membershipStor   stor.MembershipStor
	notificationStor stor.NotificationStor
}

func NewTeamService(userStor stor.UserStor, teamStor stor.TeamStor, membershipStor stor.MembershipStor,
	notificationStor stor.NotificationStor) *TeamService {
	return &TeamService{
		userStor:         userStor,
		teamStor:         teamStor,
		membershipStor:   membershipStor,
		notificationStor: notificationStor,
	}
}

// CreateTeam creates a team and makes the creator its owner. Both writes
// happen in one transaction so a team can never exist without an owner.
func (s *TeamService) CreateTeam(name string, creatorID int) (*tfmodel.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Wrap(ErrValidation, "team name cannot be empty")
	}

	if _, err := s.teamStor.GetTeamByName(name); err == nil {
		return nil, errors.Wrapf(ErrConflict, "team name '%s' already exists", name)
	} else if !isStorNotFound(err) {
		return nil, classifyStorErr(err, "looking up team name '%s'", name)
	}

	if _, err := s.userStor.GetUserByID(creatorID); err != nil {
		return nil, classifyStorErr(err, "creator user %d", creatorID)
	}

	team, err := s.teamStor.CreateTeamWithOwner(&tfmodel.Team{Name: name}, creatorID)
	if err != nil {
		return nil, classifyStorErr(err, "creating team '%s'", name)
	}

	return team, nil
}

// UpdateTeam renames a team. The new name must not collide with a different
// team.
func (s *TeamService) UpdateTeam(teamID int, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return errors.Wrap(ErrValidation, "team name cannot be empty")
	}

	team, err := s.teamStor.GetTeamByID(teamID)
	if err != nil {
		return classifyStorErr(err, "team %d", teamID)
	}

	if existing, err := s.teamStor.GetTeamByName(newName); err == nil && existing.ID != teamID {
		return errors.Wrapf(ErrConflict, "team name '%s' already exists", newName)
	} else if err != nil && !isStorNotFound(err) {
		return classifyStorErr(err, "looking up team name '%s'", newName)
	}

	team.Name = newName
	if err := s.teamStor.UpdateTeam(team); err != nil {
		return classifyStorErr(err, "updating team %d", teamID)
	}

	return nil
}

func (s *TeamService) DeleteTeam(teamID int) error {
	if _, err := s.teamStor.GetTeamByID(teamID); err != nil {
		return classifyStorErr(err, "team %d", teamID)
	}

	if err := s.teamStor.DeleteTeam(teamID); err != nil {
		return classifyStorErr(err, "deleting team %d", teamID)
	}

	return nil
}

func (s *TeamService) GetTeamByID(teamID int) (*tfmodel.Team, error) {
	team, err := s.teamStor.GetTeamByID(teamID)
	if err != nil {
		return nil, classifyStorErr(err, "team %d", teamID)
	}
	return team, nil
}

func (s *TeamService) GetAllTeams() ([]tfmodel.Team, error) {
	teams, err := s.teamStor.GetAllTeams()
	if err != nil {
		return nil, classifyStorErr(err, "listing teams")
	}
	return teams, nil
}

// InviteUserToTeam creates a PENDING membership for the pair and notifies the
// invitee. A second invite is rejected while any membership record exists for
// the pair; a rejected invitation deletes its record, so a rejected user can
// be invited again.
func (s *TeamService) InviteUserToTeam(userID, teamID int, role tfmodel.Role) error {
	user, err := s.userStor.GetUserByID(userID)
	if err != nil {
		return classifyStorErr(err, "user %d", userID)
	}

	team, err := s.teamStor.GetTeamByID(teamID)
	if err != nil {
		return classifyStorErr(err, "team %d", teamID)
	}

	if _, err := s.membershipStor.GetMembership(userID, teamID); err == nil {
		return errors.Wrapf(ErrConflict, "user %d already has a membership or pending invitation for team %d", userID, teamID)
	} else if !isStorNotFound(err) {
		return classifyStorErr(err, "looking up membership (%d, %d)", userID, teamID)
	}

	membership := &tfmodel.UserTeamMembership{
		UserID:           userID,
		TeamID:           teamID,
		Role:             role,
		InvitationStatus: tfmodel.InvitationPending,
	}

	if _, err := s.membershipStor.CreateMembership(membership); err != nil {
		return classifyStorErr(err, "creating membership (%d, %d)", userID, teamID)
	}

	s.notify(&tfmodel.Notification{
		UserID:          user.ID,
		Message:         fmt.Sprintf("You have been invited to join the team '%s' as a %s.", team.Name, strings.ToLower(string(role))),
		SentAt:          time.Now(),
		RelatedEntityID: teamID,
		Type:            tfmodel.NotificationTeamInvitation,
	})

	return nil
}

// AcceptTeamInvitation moves a PENDING membership to ACCEPTED. The role set
// at invite time is kept.
func (s *TeamService) AcceptTeamInvitation(userID, teamID int) error {
	membership, err := s.membershipStor.GetMembership(userID, teamID)
	if err != nil {
		return classifyStorErr(err, "membership (%d, %d)", userID, teamID)
	}

	if membership.InvitationStatus != tfmodel.InvitationPending {
		return errors.Wrapf(ErrInvalidState, "membership (%d, %d) is %s, not PENDING", userID, teamID, membership.InvitationStatus)
	}

	membership.InvitationStatus = tfmodel.InvitationAccepted
	if err := s.membershipStor.UpdateMembership(membership); err != nil {
		return classifyStorErr(err, "accepting invitation (%d, %d)", userID, teamID)
	}

	return nil
}

// RejectTeamInvitation deletes a PENDING membership. No REJECTED row is kept;
// the pair can be invited again afterward.
func (s *TeamService) RejectTeamInvitation(userID, teamID int) error {
	membership, err := s.membershipStor.GetMembership(userID, teamID)
	if err != nil {
		return classifyStorErr(err, "membership (%d, %d)", userID, teamID)
	}

	if membership.InvitationStatus != tfmodel.InvitationPending {
		return errors.Wrapf(ErrInvalidState, "membership (%d, %d) is %s, not PENDING", userID, teamID, membership.InvitationStatus)
	}

	if err := s.membershipStor.DeleteMembership(userID, teamID); err != nil {
		return classifyStorErr(err, "rejecting invitation (%d, %d)", userID, teamID)
	}

	return nil
}

// RemoveUserFromTeam deletes the membership. Removing the only accepted owner
// of a team is refused; ownership must be handed off first.
func (s *TeamService) RemoveUserFromTeam(userID, teamID int) error {
	membership, err := s.membershipStor.GetMembership(userID, teamID)
	if err != nil {
		return classifyStorErr(err, "membership (%d, %d)", userID, teamID)
	}

	if membership.IsAcceptedOwner() {
		if err := s.requireAnotherOwner(teamID); err != nil {
			return err
		}
	}

	if err := s.membershipStor.DeleteMembership(userID, teamID); err != nil {
		return classifyStorErr(err, "removing membership (%d, %d)", userID, teamID)
	}

	return nil
}

// UpdateTeamMemberRole changes a member's role. Demoting the only accepted
// owner of a team is refused.
func (s *TeamService) UpdateTeamMemberRole(userID, teamID int, newRole tfmodel.Role) error {
	membership, err := s.membershipStor.GetMembership(userID, teamID)
	if err != nil {
		return classifyStorErr(err, "membership (%d, %d)", userID, teamID)
	}

	if membership.IsAcceptedOwner() && newRole != tfmodel.RoleOwner {
		if err := s.requireAnotherOwner(teamID); err != nil {
			return err
		}
	}

	membership.Role = newRole
	if err := s.membershipStor.UpdateMembership(membership); err != nil {
		return classifyStorErr(err, "updating role for membership (%d, %d)", userID, teamID)
	}

	return nil
}

func (s *TeamService) requireAnotherOwner(teamID int) error {
	count, err := s.membershipStor.CountAcceptedOwners(teamID)
	if err != nil {
		return classifyStorErr(err, "counting owners of team %d", teamID)
	}

	if count <= 1 {
		return errors.Wrapf(ErrInvalidState, "team %d would be left without an owner", teamID)
	}

	return nil
}

// IsTeamOwner reports whether the user holds an ACCEPTED membership with role
// OWNER in the team.
func (s *TeamService) IsTeamOwner(userID, teamID int) (bool, error) {
	membership, err := s.membershipStor.GetMembership(userID, teamID)
	switch {
	case isStorNotFound(err):
		return false, nil
	case err != nil:
		return false, classifyStorErr(err, "membership (%d, %d)", userID, teamID)
	}

	return membership.IsAcceptedOwner(), nil
}

// IsUserMemberOfTeam reports whether the user holds an ACCEPTED membership in
// the team, at any role.
func (s *TeamService) IsUserMemberOfTeam(userID, teamID int) (bool, error) {
	membership, err := s.membershipStor.GetMembership(userID, teamID)
	switch {
	case isStorNotFound(err):
		return false, nil
	case err != nil:
		return false, classifyStorErr(err, "membership (%d, %d)", userID, teamID)
	}

	return membership.IsAccepted(), nil
}

// AreUsersInSameTeam reports whether the two users share at least one team in
// which both hold ACCEPTED memberships.
func (s *TeamService) AreUsersInSameTeam(userID1, userID2 int) (bool, error) {
	teams1, err := s.GetTeamsForUser(userID1)
	if err != nil {
		return false, err
	}

	teams2, err := s.GetTeamsForUser(userID2)
	if err != nil {
		return false, err
	}

	inFirst := make(map[int]bool, len(teams1))
	for _, team := range teams1 {
		inFirst[team.ID] = true
	}

	for _, team := range teams2 {
		if inFirst[team.ID] {
			return true, nil
		}
	}

	return false, nil
}

// GetTeamsForUser returns the teams in which the user holds an ACCEPTED
// membership.
func (s *TeamService) GetTeamsForUser(userID int) ([]tfmodel.Team, error) {
	memberships, err := s.membershipStor.GetMembershipsByUserID(userID)
	if err != nil {
		return nil, classifyStorErr(err, "memberships for user %d", userID)
	}

	var teams []tfmodel.Team
	for _, membership := range memberships {
		if membership.IsAccepted() && membership.Team != nil {
			teams = append(teams, *membership.Team)
		}
	}

	return teams, nil
}

// GetUsersInTeam returns the users holding an ACCEPTED membership in the team.
func (s *TeamService) GetUsersInTeam(teamID int) ([]tfmodel.User, error) {
	memberships, err := s.membershipStor.GetMembershipsByTeamID(teamID)
	if err != nil {
		return nil, classifyStorErr(err, "memberships for team %d", teamID)
	}

	var users []tfmodel.User
	for _, membership := range memberships {
		if membership.IsAccepted() && membership.User != nil {
			users = append(users, *membership.User)
		}
	}

	return users, nil
}

// GetTeamMemberships returns every membership record for the team, including
// pending invitations.
func (s *TeamService) GetTeamMemberships(teamID int) ([]tfmodel.UserTeamMembership, error) {
	memberships, err := s.membershipStor.GetMembershipsByTeamID(teamID)
	if err != nil {
		return nil, classifyStorErr(err, "memberships for team %d", teamID)
	}
	return memberships, nil
}

func (s *TeamService) GetMembership(userID, teamID int) (*tfmodel.UserTeamMembership, error) {
	membership, err := s.membershipStor.GetMembership(userID, teamID)
	if err != nil {
		return nil, classifyStorErr(err, "membership (%d, %d)", userID, teamID)
	}
	return membership, nil
}

// notify is fire-and-forget. A failed notification write is logged and never
// surfaced to the caller of the operation that produced it.
func (s *TeamService) notify(notification *tfmodel.Notification) {
	if _, err := s.notificationStor.CreateNotification(notification); err != nil {
		log.Errorf("Failed to create notification for user %d: %s", notification.UserID, err)
	}
}

package taskforge

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

// UserService covers user account maintenance outside of registration and
// login.
type UserService struct {
	userStor stor.UserStor
}

func NewUserService(userStor stor.UserStor) *UserService {
	return &UserService{userStor: userStor}
}

// UpdateUser changes a user's username and email. Both must stay unique
// across all other users.
func (s *UserService) UpdateUser(userID int, newUsername, newEmail string) error {
	if strings.TrimSpace(newUsername) == "" || strings.TrimSpace(newEmail) == "" {
		return errors.Wrap(ErrValidation, "username and email cannot be empty")
	}

	user, err := s.userStor.GetUserByID(userID)
	if err != nil {
		return classifyStorErr(err, "user %d", userID)
	}

	if existing, err := s.userStor.GetUserByUsername(newUsername); err == nil && existing.ID != userID {
		return errors.Wrapf(ErrConflict, "username '%s' already taken", newUsername)
	} else if err != nil && !isStorNotFound(err) {
		return classifyStorErr(err, "looking up username '%s'", newUsername)
	}

	if existing, err := s.userStor.GetUserByEmail(newEmail); err == nil && existing.ID != userID {
		return errors.Wrapf(ErrConflict, "email '%s' already taken", newEmail)
	} else if err != nil && !isStorNotFound(err) {
		return classifyStorErr(err, "looking up email '%s'", newEmail)
	}

	user.Username = newUsername
	user.Email = newEmail

	if err := s.userStor.UpdateUser(user); err != nil {
		return classifyStorErr(err, "updating user %d", userID)
	}

	return nil
}

// DeleteUser deletes the user. The storage layer cascades to the user's
// created tasks, memberships, and notifications.
func (s *UserService) DeleteUser(userID int) error {
	if _, err := s.userStor.GetUserByID(userID); err != nil {
		return classifyStorErr(err, "user %d", userID)
	}

	if err := s.userStor.DeleteUser(userID); err != nil {
		return classifyStorErr(err, "deleting user %d", userID)
	}

	return nil
}

func (s *UserService) GetUserByID(userID int) (*tfmodel.User, error) {
	user, err := s.userStor.GetUserByID(userID)
	if err != nil {
		return nil, classifyStorErr(err, "user %d", userID)
	}
	return user, nil
}

func (s *UserService) GetAllUsers() ([]tfmodel.User, error) {
	users, err := s.userStor.GetAllUsers()
	if err != nil {
		return nil, classifyStorErr(err, "listing users")
	}
	return users, nil
}

package taskforge

import (
	"strings"

	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login. Passwords are stored as bcrypt
// hashes; each user gets an API token at registration for authenticating API
// calls.
type AuthService struct {
	userStor stor.UserStor
}

func NewAuthService(userStor stor.UserStor) *AuthService {
	return &AuthService{userStor: userStor}
}

// RegisterUser creates a user with a unique username and email.
func (s *AuthService) RegisterUser(username, email, plainPassword string) (*tfmodel.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(plainPassword) == "" {
		return nil, errors.Wrap(ErrValidation, "username, email, and password cannot be empty")
	}

	if _, err := s.userStor.GetUserByUsername(username); err == nil {
		return nil, errors.Wrapf(ErrConflict, "username '%s' already exists", username)
	} else if !isStorNotFound(err) {
		return nil, classifyStorErr(err, "looking up username '%s'", username)
	}

	if _, err := s.userStor.GetUserByEmail(email); err == nil {
		return nil, errors.Wrapf(ErrConflict, "email '%s' already exists", email)
	} else if !isStorNotFound(err) {
		return nil, classifyStorErr(err, "looking up email '%s'", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrapf(ErrInfrastructure, "hashing password: %s", err)
	}

	apiToken, err := uuid.GenerateUUID()
	if err != nil {
		return nil, errors.Wrapf(ErrInfrastructure, "generating api token: %s", err)
	}

	user := &tfmodel.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		ApiToken: apiToken,
	}

	created, err := s.userStor.CreateUser(user)
	if err != nil {
		return nil, classifyStorErr(err, "creating user '%s'", username)
	}

	return created, nil
}

// AuthenticateUser checks a username and plain password pair. A wrong
// password and an unknown username both come back as ErrNotAuthorized, so a
// caller can't probe which usernames exist.
func (s *AuthService) AuthenticateUser(username, plainPassword string) (*tfmodel.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(plainPassword) == "" {
		return nil, errors.Wrap(ErrValidation, "username and password cannot be empty")
	}

	user, err := s.userStor.GetUserByUsername(username)
	switch {
	case isStorNotFound(err):
		return nil, errors.Wrap(ErrNotAuthorized, "invalid username or password")
	case err != nil:
		return nil, classifyStorErr(err, "looking up username '%s'", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword)); err != nil {
		return nil, errors.Wrap(ErrNotAuthorized, "invalid username or password")
	}

	return user, nil
}

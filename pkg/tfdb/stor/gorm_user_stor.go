package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

// CreateUser creates a new user. Deleting a user cascades to their created
// tasks and memberships (see DeleteUser).
func (s *GormUserStor) CreateUser(user *tfmodel.User) (*tfmodel.User, error) {
	var err error

	if user.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	user.Slug = slug.Make(user.Username)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *GormUserStor) GetUserByID(userID int) (*tfmodel.User, error) {
	var user tfmodel.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStor) GetUserByUsername(username string) (*tfmodel.User, error) {
	var user tfmodel.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStor) GetUserByEmail(email string) (*tfmodel.User, error) {
	var user tfmodel.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByAPIToken(apitoken string) (*tfmodel.User, error) {
	var user tfmodel.User
	if err := s.db.Where("api_token = ?", apitoken).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *GormUserStor) GetAllUsers() ([]tfmodel.User, error) {
	var users []tfmodel.User
	result := s.db.Find(&users)
	return users, result.Error
}

func (s *GormUserStor) UpdateUser(user *tfmodel.User) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Save(user).Error
	})
}

func (s *GormUserStor) DeleteUser(userID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&tfmodel.UserTeamMembership{}).Error; err != nil {
			return err
		}

		if err := tx.Where("creator_id = ?", userID).Delete(&tfmodel.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&tfmodel.Notification{}).Error; err != nil {
			return err
		}

		return tx.Delete(&tfmodel.User{}, userID).Error
	})
}

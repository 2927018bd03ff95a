package stor

import (
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type GormMembershipStor struct {
	db *gorm.DB
}

func NewGormMembershipStor(db *gorm.DB) *GormMembershipStor {
	return &GormMembershipStor{db: db}
}

func (s *GormMembershipStor) CreateMembership(membership *tfmodel.UserTeamMembership) (*tfmodel.UserTeamMembership, error) {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(membership).Error
	})

	if err != nil {
		return nil, err
	}

	return membership, nil
}

func (s *GormMembershipStor) GetMembership(userID, teamID int) (*tfmodel.UserTeamMembership, error) {
	var membership tfmodel.UserTeamMembership
	err := s.db.Where("user_id = ?", userID).
		Where("team_id = ?", teamID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}

	return &membership, nil
}

func (s *GormMembershipStor) GetMembershipsByUserID(userID int) ([]tfmodel.UserTeamMembership, error) {
	var memberships []tfmodel.UserTeamMembership
	result := s.db.Preload("Team").Where("user_id = ?", userID).Find(&memberships)
	return memberships, result.Error
}

func (s *GormMembershipStor) GetMembershipsByTeamID(teamID int) ([]tfmodel.UserTeamMembership, error) {
	var memberships []tfmodel.UserTeamMembership
	result := s.db.Preload("User").Where("team_id = ?", teamID).Find(&memberships)
	return memberships, result.Error
}

func (s *GormMembershipStor) UpdateMembership(membership *tfmodel.UserTeamMembership) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(&tfmodel.UserTeamMembership{}).
			Where("user_id = ?", membership.UserID).
			Where("team_id = ?", membership.TeamID).
			Updates(map[string]interface{}{
				"role":              membership.Role,
				"invitation_status": membership.InvitationStatus,
			}).Error
	})
}

func (s *GormMembershipStor) DeleteMembership(userID, teamID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).
			Where("team_id = ?", teamID).
			Delete(&tfmodel.UserTeamMembership{}).Error
	})
}

func (s *GormMembershipStor) CountAcceptedOwners(teamID int) (int64, error) {
	var count int64
	err := s.db.Model(&tfmodel.UserTeamMembership{}).
		Where("team_id = ?", teamID).
		Where("role = ?", tfmodel.RoleOwner).
		Where("invitation_status = ?", tfmodel.InvitationAccepted).
		Count(&count).Error
	return count, err
}

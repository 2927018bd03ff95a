package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type GormTeamStor struct {
	db *gorm.DB
}

func NewGormTeamStor(db *gorm.DB) *GormTeamStor {
	return &GormTeamStor{db: db}
}

func (s *GormTeamStor) CreateTeam(team *tfmodel.Team) (*tfmodel.Team, error) {
	var err error

	if team.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	team.Slug = slug.Make(team.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(team).Error
	})

	if err != nil {
		return nil, err
	}

	return team, nil
}

// CreateTeamWithOwner creates the team and the creator's ACCEPTED/OWNER
// membership in a single transaction so a failed membership insert never
// leaves an ownerless team behind.
func (s *GormTeamStor) CreateTeamWithOwner(team *tfmodel.Team, ownerID int) (*tfmodel.Team, error) {
	var err error

	if team.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	team.Slug = slug.Make(team.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		membership := &tfmodel.UserTeamMembership{
			UserID:           ownerID,
			TeamID:           team.ID,
			Role:             tfmodel.RoleOwner,
			InvitationStatus: tfmodel.InvitationAccepted,
		}

		return tx.Create(membership).Error
	})

	if err != nil {
		return nil, err
	}

	return team, nil
}

func (s *GormTeamStor) GetTeamByID(teamID int) (*tfmodel.Team, error) {
	var team tfmodel.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *GormTeamStor) GetTeamByName(name string) (*tfmodel.Team, error) {
	var team tfmodel.Team
	if err := s.db.Where("name = ?", name).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *GormTeamStor) GetAllTeams() ([]tfmodel.Team, error) {
	var teams []tfmodel.Team
	result := s.db.Find(&teams)
	return teams, result.Error
}

func (s *GormTeamStor) UpdateTeam(team *tfmodel.Team) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Save(team).Error
	})
}

func (s *GormTeamStor) DeleteTeam(teamID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&tfmodel.UserTeamMembership{}).Error; err != nil {
			return err
		}

		// Projects keep existing without a team.
		if err := tx.Model(&tfmodel.Project{}).Where("team_id = ?", teamID).Update("team_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&tfmodel.Team{}, teamID).Error
	})
}

package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

type GormProjectStor struct {
	db *gorm.DB
}

func NewGormProjectStor(db *gorm.DB) *GormProjectStor {
	return &GormProjectStor{db: db}
}

func (s *GormProjectStor) CreateProject(project *tfmodel.Project) (*tfmodel.Project, error) {
	var err error

	if project.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	project.Slug = slug.Make(project.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(project).Error
	})

	if err != nil {
		return nil, err
	}

	return project, nil
}

func (s *GormProjectStor) GetProjectByID(projectID int) (*tfmodel.Project, error) {
	var project tfmodel.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (s *GormProjectStor) GetAllProjects() ([]tfmodel.Project, error) {
	var projects []tfmodel.Project
	result := s.db.Find(&projects)
	return projects, result.Error
}

func (s *GormProjectStor) GetProjectsByTeamID(teamID int) ([]tfmodel.Project, error) {
	var projects []tfmodel.Project
	result := s.db.Where("team_id = ?", teamID).Find(&projects)
	return projects, result.Error
}

func (s *GormProjectStor) UpdateProject(project *tfmodel.Project) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Save(project).Error
	})
}

func (s *GormProjectStor) DeleteProject(projectID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		// Tasks keep existing without a project.
		if err := tx.Model(&tfmodel.Task{}).Where("project_id = ?", projectID).Update("project_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&tfmodel.Project{}, projectID).Error
	})
}

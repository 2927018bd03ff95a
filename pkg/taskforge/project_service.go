package taskforge

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

// ProjectService covers project maintenance. A project optionally belongs to
// a team; a team id of zero or less means no team.
type ProjectService struct {
	projectStor stor.ProjectStor
	teamStor    stor.TeamStor
}

func NewProjectService(projectStor stor.ProjectStor, teamStor stor.TeamStor) *ProjectService {
	return &ProjectService{projectStor: projectStor, teamStor: teamStor}
}

func (s *ProjectService) CreateProject(name string, teamID int) (*tfmodel.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Wrap(ErrValidation, "project name cannot be empty")
	}

	resolvedTeamID, err := s.resolveTeam(teamID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectStor.CreateProject(&tfmodel.Project{Name: name, TeamID: resolvedTeamID})
	if err != nil {
		return nil, classifyStorErr(err, "creating project '%s'", name)
	}

	return project, nil
}

func (s *ProjectService) GetProjectByID(projectID int) (*tfmodel.Project, error) {
	project, err := s.projectStor.GetProjectByID(projectID)
	if err != nil {
		return nil, classifyStorErr(err, "project %d", projectID)
	}
	return project, nil
}

func (s *ProjectService) GetAllProjects() ([]tfmodel.Project, error) {
	projects, err := s.projectStor.GetAllProjects()
	if err != nil {
		return nil, classifyStorErr(err, "listing projects")
	}
	return projects, nil
}

func (s *ProjectService) GetProjectsByTeam(teamID int) ([]tfmodel.Project, error) {
	projects, err := s.projectStor.GetProjectsByTeamID(teamID)
	if err != nil {
		return nil, classifyStorErr(err, "projects for team %d", teamID)
	}
	return projects, nil
}

func (s *ProjectService) UpdateProject(projectID int, newName string, newTeamID int) error {
	if strings.TrimSpace(newName) == "" {
		return errors.Wrap(ErrValidation, "project name cannot be empty")
	}

	project, err := s.projectStor.GetProjectByID(projectID)
	if err != nil {
		return classifyStorErr(err, "project %d", projectID)
	}

	resolvedTeamID, err := s.resolveTeam(newTeamID)
	if err != nil {
		return err
	}

	project.Name = newName
	project.TeamID = resolvedTeamID

	if err := s.projectStor.UpdateProject(project); err != nil {
		return classifyStorErr(err, "updating project %d", projectID)
	}

	return nil
}

func (s *ProjectService) DeleteProject(projectID int) error {
	if _, err := s.projectStor.GetProjectByID(projectID); err != nil {
		return classifyStorErr(err, "project %d", projectID)
	}

	if err := s.projectStor.DeleteProject(projectID); err != nil {
		return classifyStorErr(err, "deleting project %d", projectID)
	}

	return nil
}

func (s *ProjectService) resolveTeam(teamID int) (*int, error) {
	if teamID <= 0 {
		return nil, nil
	}

	team, err := s.teamStor.GetTeamByID(teamID)
	if err != nil {
		return nil, classifyStorErr(err, "team %d", teamID)
	}

	return &team.ID, nil
}

package taskforge

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	team := tc.createTeam("Engineering", alice.ID)

	project, err := tc.services.Projects.CreateProject("Storage rewrite", team.ID)
	require.NoError(t, err)
	require.NotNil(t, project.TeamID)
	require.Equal(t, team.ID, *project.TeamID)

	// A team id of zero means a free-standing project.
	standalone, err := tc.services.Projects.CreateProject("Side quest", 0)
	require.NoError(t, err)
	require.Nil(t, standalone.TeamID)

	_, err = tc.services.Projects.CreateProject("", team.ID)
	require.True(t, errors.Is(err, ErrValidation))

	_, err = tc.services.Projects.CreateProject("Ghost", 9999)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateProject(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	team := tc.createTeam("Engineering", alice.ID)

	project, err := tc.services.Projects.CreateProject("Storage rewrite", team.ID)
	require.NoError(t, err)

	// Renaming and detaching from the team in one update.
	require.NoError(t, tc.services.Projects.UpdateProject(project.ID, "Storage rewrite v2", 0))

	updated, err := tc.services.Projects.GetProjectByID(project.ID)
	require.NoError(t, err)
	require.Equal(t, "Storage rewrite v2", updated.Name)
	require.Nil(t, updated.TeamID)

	require.True(t, errors.Is(tc.services.Projects.UpdateProject(project.ID, "", 0), ErrValidation))
	require.True(t, errors.Is(tc.services.Projects.UpdateProject(9999, "X", 0), ErrNotFound))
	require.True(t, errors.Is(tc.services.Projects.UpdateProject(project.ID, "X", 9999), ErrNotFound))
}

func TestDeleteProject(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	team := tc.createTeam("Engineering", alice.ID)

	project, err := tc.services.Projects.CreateProject("Doomed", team.ID)
	require.NoError(t, err)

	require.NoError(t, tc.services.Projects.DeleteProject(project.ID))

	_, err = tc.services.Projects.GetProjectByID(project.ID)
	require.True(t, errors.Is(err, ErrNotFound))

	require.True(t, errors.Is(tc.services.Projects.DeleteProject(9999), ErrNotFound))
}

func TestGetProjectsByTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	alice := tc.createUser("alice")
	engineering := tc.createTeam("Engineering", alice.ID)
	design := tc.createTeam("Design", alice.ID)

	_, err := tc.services.Projects.CreateProject("Eng one", engineering.ID)
	require.NoError(t, err)
	_, err = tc.services.Projects.CreateProject("Eng two", engineering.ID)
	require.NoError(t, err)
	_, err = tc.services.Projects.CreateProject("Design one", design.ID)
	require.NoError(t, err)

	projects, err := tc.services.Projects.GetProjectsByTeam(engineering.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
}

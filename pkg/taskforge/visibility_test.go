package taskforge

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

func TestTaskVisibleTo(t *testing.T) {
	const (
		creatorID  = 1
		assigneeID = 2
		teammateID = 3
		strangerID = 4
	)

	sameTeam := func(userID1, userID2 int) (bool, error) {
		return userID1 == teammateID || userID2 == teammateID, nil
	}

	assignee := assigneeID

	tests := []struct {
		name       string
		visibility tfmodel.Visibility
		viewerID   int
		visible    bool
	}{
		{"creator sees own private task", tfmodel.VisibilityPrivate, creatorID, true},
		{"assignee sees private task", tfmodel.VisibilityPrivate, assigneeID, true},
		{"teammate cannot see private task", tfmodel.VisibilityPrivate, teammateID, false},
		{"stranger cannot see private task", tfmodel.VisibilityPrivate, strangerID, false},
		{"teammate sees restricted task", tfmodel.VisibilityRestricted, teammateID, true},
		{"stranger cannot see restricted task", tfmodel.VisibilityRestricted, strangerID, false},
		{"stranger sees public task", tfmodel.VisibilityPublic, strangerID, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			task := &tfmodel.Task{
				CreatorID:        creatorID,
				AssignedToUserID: &assignee,
				Visibility:       test.visibility,
			}

			visible, err := TaskVisibleTo(task, test.viewerID, sameTeam)
			require.NoError(t, err)
			require.Equal(t, test.visible, visible)
		})
	}
}

func TestTaskVisibleToUnknownVisibility(t *testing.T) {
	task := &tfmodel.Task{CreatorID: 1, Visibility: "MYSTERY"}

	// An unrecognized visibility hides the task from everyone but the
	// creator and assignee.
	visible, err := TaskVisibleTo(task, 2, func(int, int) (bool, error) { return true, nil })
	require.NoError(t, err)
	require.False(t, visible)

	visible, err = TaskVisibleTo(task, 1, nil)
	require.NoError(t, err)
	require.True(t, visible)
}

func TestTaskVisibleToUnassignedTask(t *testing.T) {
	task := &tfmodel.Task{CreatorID: 1, Visibility: tfmodel.VisibilityPrivate}

	// No assignee set; a viewer whose id happens to be zero gets no match.
	visible, err := TaskVisibleTo(task, 0, func(int, int) (bool, error) { return false, nil })
	require.NoError(t, err)
	require.False(t, visible)
}

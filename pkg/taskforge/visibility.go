package taskforge

import (
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

// SameTeamFN reports whether two users share a team in which both hold
// accepted memberships.
type SameTeamFN func(userID1, userID2 int) (bool, error)

// TaskVisibleTo decides whether a viewer may see a task. The creator and the
// assignee always may; beyond that the task's visibility decides: PUBLIC is
// open to everyone, RESTRICTED requires the viewer to share a team with the
// creator, and PRIVATE is creator-only.
func TaskVisibleTo(task *tfmodel.Task, viewerID int, sameTeam SameTeamFN) (bool, error) {
	if task.CreatorID == viewerID {
		return true, nil
	}

	if task.IsAssignedTo(viewerID) {
		return true, nil
	}

	switch task.Visibility {
	case tfmodel.VisibilityPublic:
		return true, nil
	case tfmodel.VisibilityRestricted:
		return sameTeam(viewerID, task.CreatorID)
	case tfmodel.VisibilityPrivate:
		return false, nil
	default:
		// Unknown visibility values hide the task rather than leak it.
		return false, nil
	}
}

// filterTasksByVisibility keeps the tasks the viewer may see.
func filterTasksByVisibility(tasks []tfmodel.Task, viewerID int, sameTeam SameTeamFN) ([]tfmodel.Task, error) {
	var visible []tfmodel.Task

	for i := range tasks {
		ok, err := TaskVisibleTo(&tasks[i], viewerID, sameTeam)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, tasks[i])
		}
	}

	return visible, nil
}

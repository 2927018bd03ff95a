package taskforge

import (
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

// TaskService owns the task lifecycle: creation, creator-only mutation and
// deletion, and the visibility filtering applied to task listings.
type TaskService struct {
	taskStor         stor.TaskStor
	userStor         stor.UserStor
	projectStor      stor.ProjectStor
	notificationStor stor.NotificationStor
	commentStor      stor.CommentStor
	attachmentStor   stor.AttachmentStor
	teamService      *TeamService
}

func NewTaskService(taskStor stor.TaskStor, userStor stor.UserStor, projectStor stor.ProjectStor,
	notificationStor stor.NotificationStor, commentStor stor.CommentStor, attachmentStor stor.AttachmentStor,
	teamService *TeamService) *TaskService {
	return &TaskService{
		taskStor:         taskStor,
		userStor:         userStor,
		projectStor:      projectStor,
		notificationStor: notificationStor,
		commentStor:      commentStor,
		attachmentStor:   attachmentStor,
		teamService:      teamService,
	}
}

// TaskRequest carries the caller-settable task fields. AssignedToUserID and
// ProjectID of zero or less mean unassigned and no project.
type TaskRequest struct {
	Title            string
	Description      string
	DueDate          *time.Time
	Priority         tfmodel.Priority
	Status           tfmodel.Status
	AssignedToUserID int
	ProjectID        int
	Visibility       tfmodel.Visibility
}

// CreateTask creates a task for creatorID. New tasks always start PENDING, no
// matter what status the request carries. Assigning the task to someone other
// than the creator notifies the assignee.
func (s *TaskService) CreateTask(req TaskRequest, creatorID int) (*tfmodel.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.Wrap(ErrValidation, "task title cannot be empty")
	}
	if req.Priority == "" {
		return nil, errors.Wrap(ErrValidation, "task priority cannot be empty")
	}
	if req.Visibility == "" {
		return nil, errors.Wrap(ErrValidation, "task visibility cannot be empty")
	}

	creator, err := s.userStor.GetUserByID(creatorID)
	if err != nil {
		return nil, classifyStorErr(err, "creator user %d", creatorID)
	}

	assigneeID, err := s.resolveAssignee(req.AssignedToUserID)
	if err != nil {
		return nil, err
	}

	projectID, err := s.resolveProject(req.ProjectID)
	if err != nil {
		return nil, err
	}

	task := &tfmodel.Task{
		Title:            req.Title,
		Description:      req.Description,
		DueDate:          req.DueDate,
		Priority:         req.Priority,
		Status:           tfmodel.StatusPending,
		AssignedToUserID: assigneeID,
		ProjectID:        projectID,
		Visibility:       req.Visibility,
		CreatorID:        creator.ID,
	}

	created, err := s.taskStor.CreateTask(task)
	if err != nil {
		return nil, classifyStorErr(err, "creating task '%s'", req.Title)
	}

	if assigneeID != nil && *assigneeID != creatorID {
		s.notifyAssignment(*assigneeID, created.ID,
			fmt.Sprintf("You have been assigned to a new task: '%s' by %s.", created.Title, creator.Username))
	}

	return created, nil
}

// GetTaskByID returns the task without visibility filtering. Listing paths
// filter; single-task reads leave that to the caller.
func (s *TaskService) GetTaskByID(taskID int) (*tfmodel.Task, error) {
	task, err := s.taskStor.GetTaskByID(taskID)
	if err != nil {
		return nil, classifyStorErr(err, "task %d", taskID)
	}
	return task, nil
}

// GetTasksByAssignedUser returns the tasks assigned to assignedUserID that
// viewerID may see.
func (s *TaskService) GetTasksByAssignedUser(assignedUserID, viewerID int) ([]tfmodel.Task, error) {
	tasks, err := s.taskStor.GetTasksByAssignedUserID(assignedUserID)
	if err != nil {
		return nil, classifyStorErr(err, "tasks assigned to user %d", assignedUserID)
	}

	return filterTasksByVisibility(tasks, viewerID, s.teamService.AreUsersInSameTeam)
}

// SameTeam returns the team-sharing check the listing paths filter with, so
// callers applying TaskVisibleTo to single-task reads use the same rule.
func (s *TaskService) SameTeam() SameTeamFN {
	return s.teamService.AreUsersInSameTeam
}

// GetAllVisibleTasks returns every task viewerID may see.
func (s *TaskService) GetAllVisibleTasks(viewerID int) ([]tfmodel.Task, error) {
	tasks, err := s.taskStor.GetAllTasks()
	if err != nil {
		return nil, classifyStorErr(err, "listing tasks")
	}

	return filterTasksByVisibility(tasks, viewerID, s.teamService.AreUsersInSameTeam)
}

// UpdateTask overwrites the task's mutable fields. Only the creator may
// update a task, not even the assignee. Changing the assignee to a different
// user notifies the new assignee; unassigning or reassigning to the same user
// does not.
func (s *TaskService) UpdateTask(taskID int, req TaskRequest, currentUserID int) error {
	task, err := s.taskStor.GetTaskByID(taskID)
	if err != nil {
		return classifyStorErr(err, "task %d", taskID)
	}

	if task.CreatorID != currentUserID {
		return errors.Wrapf(ErrNotAuthorized, "user %d is not the creator of task %d", currentUserID, taskID)
	}

	newAssigneeID, err := s.resolveAssignee(req.AssignedToUserID)
	if err != nil {
		return err
	}

	newProjectID, err := s.resolveProject(req.ProjectID)
	if err != nil {
		return err
	}

	oldAssigneeID := task.AssignedToUserID

	task.Title = req.Title
	task.Description = req.Description
	task.DueDate = req.DueDate
	task.Priority = req.Priority
	task.Status = req.Status
	task.Visibility = req.Visibility
	task.AssignedToUserID = newAssigneeID
	task.ProjectID = newProjectID

	if err := s.taskStor.UpdateTask(task); err != nil {
		return classifyStorErr(err, "updating task %d", taskID)
	}

	if newAssigneeID != nil && (oldAssigneeID == nil || *oldAssigneeID != *newAssigneeID) {
		updater, err := s.userStor.GetUserByID(currentUserID)
		if err != nil {
			return classifyStorErr(err, "user %d", currentUserID)
		}

		s.notifyAssignment(*newAssigneeID, task.ID,
			fmt.Sprintf("You have been assigned to task: '%s' by %s.", task.Title, updater.Username))
	}

	return nil
}

// DeleteTask deletes a task. Only the creator may delete it.
func (s *TaskService) DeleteTask(taskID, currentUserID int) error {
	task, err := s.taskStor.GetTaskByID(taskID)
	if err != nil {
		return classifyStorErr(err, "task %d", taskID)
	}

	if task.CreatorID != currentUserID {
		return errors.Wrapf(ErrNotAuthorized, "user %d is not the creator of task %d", currentUserID, taskID)
	}

	if err := s.taskStor.DeleteTask(taskID); err != nil {
		return classifyStorErr(err, "deleting task %d", taskID)
	}

	return nil
}

// AddComment attaches a comment to a task. The author must be able to see
// the task.
func (s *TaskService) AddComment(taskID, authorID int, text string) (*tfmodel.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Wrap(ErrValidation, "comment text cannot be empty")
	}

	task, err := s.taskStor.GetTaskByID(taskID)
	if err != nil {
		return nil, classifyStorErr(err, "task %d", taskID)
	}

	visible, err := TaskVisibleTo(task, authorID, s.teamService.AreUsersInSameTeam)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errors.Wrapf(ErrNotAuthorized, "user %d cannot see task %d", authorID, taskID)
	}

	comment, err := s.commentStor.CreateComment(&tfmodel.Comment{
		TaskID:   taskID,
		AuthorID: authorID,
		Text:     text,
	})
	if err != nil {
		return nil, classifyStorErr(err, "creating comment on task %d", taskID)
	}

	return comment, nil
}

// GetComments lists a task's comments, gated by the same visibility rule as
// the task itself.
func (s *TaskService) GetComments(taskID, viewerID int) ([]tfmodel.Comment, error) {
	task, err := s.taskStor.GetTaskByID(taskID)
	if err != nil {
		return nil, classifyStorErr(err, "task %d", taskID)
	}

	visible, err := TaskVisibleTo(task, viewerID, s.teamService.AreUsersInSameTeam)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errors.Wrapf(ErrNotAuthorized, "user %d cannot see task %d", viewerID, taskID)
	}

	comments, err := s.commentStor.GetCommentsByTaskID(taskID)
	if err != nil {
		return nil, classifyStorErr(err, "comments for task %d", taskID)
	}

	return comments, nil
}

// AddAttachment records a file attached to a task. The file itself is assumed
// to already exist at filePath; only the metadata is stored. The uploader must
// be able to see the task.
func (s *TaskService) AddAttachment(taskID, uploaderID int, fileName, filePath string) (*tfmodel.Attachment, error) {
	if strings.TrimSpace(fileName) == "" || strings.TrimSpace(filePath) == "" {
		return nil, errors.Wrap(ErrValidation, "attachment file name and path cannot be empty")
	}

	task, err := s.taskStor.GetTaskByID(taskID)
	if err != nil {
		return nil, classifyStorErr(err, "task %d", taskID)
	}

	visible, err := TaskVisibleTo(task, uploaderID, s.teamService.AreUsersInSameTeam)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errors.Wrapf(ErrNotAuthorized, "user %d cannot see task %d", uploaderID, taskID)
	}

	attachment, err := s.attachmentStor.CreateAttachment(&tfmodel.Attachment{
		TaskID:     taskID,
		FileName:   fileName,
		FilePath:   filePath,
		UploadedAt: time.Now(),
	})
	if err != nil {
		return nil, classifyStorErr(err, "creating attachment on task %d", taskID)
	}

	return attachment, nil
}

// GetAttachments lists a task's attachments, gated by the same visibility rule
// as the task itself.
func (s *TaskService) GetAttachments(taskID, viewerID int) ([]tfmodel.Attachment, error) {
	task, err := s.taskStor.GetTaskByID(taskID)
	if err != nil {
		return nil, classifyStorErr(err, "task %d", taskID)
	}

	visible, err := TaskVisibleTo(task, viewerID, s.teamService.AreUsersInSameTeam)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errors.Wrapf(ErrNotAuthorized, "user %d cannot see task %d", viewerID, taskID)
	}

	attachments, err := s.attachmentStor.GetAttachmentsByTaskID(taskID)
	if err != nil {
		return nil, classifyStorErr(err, "attachments for task %d", taskID)
	}

	return attachments, nil
}

// DeleteAttachment removes an attachment record. Only the creator of the
// owning task may delete attachments, matching the task mutation rule.
func (s *TaskService) DeleteAttachment(attachmentID, currentUserID int) error {
	attachment, err := s.attachmentStor.GetAttachmentByID(attachmentID)
	if err != nil {
		return classifyStorErr(err, "attachment %d", attachmentID)
	}

	task, err := s.taskStor.GetTaskByID(attachment.TaskID)
	if err != nil {
		return classifyStorErr(err, "task %d", attachment.TaskID)
	}

	if task.CreatorID != currentUserID {
		return errors.Wrapf(ErrNotAuthorized, "user %d is not the creator of task %d", currentUserID, task.ID)
	}

	if err := s.attachmentStor.DeleteAttachment(attachmentID); err != nil {
		return classifyStorErr(err, "deleting attachment %d", attachmentID)
	}

	return nil
}

func (s *TaskService) resolveAssignee(assignedToUserID int) (*int, error) {
	if assignedToUserID <= 0 {
		return nil, nil
	}

	user, err := s.userStor.GetUserByID(assignedToUserID)
	if err != nil {
		return nil, classifyStorErr(err, "assigned user %d", assignedToUserID)
	}

	return &user.ID, nil
}

func (s *TaskService) resolveProject(projectID int) (*int, error) {
	if projectID <= 0 {
		return nil, nil
	}

	project, err := s.projectStor.GetProjectByID(projectID)
	if err != nil {
		return nil, classifyStorErr(err, "project %d", projectID)
	}

	return &project.ID, nil
}

// notifyAssignment is fire-and-forget. A failed notification write never
// fails the task operation that produced it.
func (s *TaskService) notifyAssignment(assigneeID, taskID int, message string) {
	notification := &tfmodel.Notification{
		UserID:          assigneeID,
		Message:         message,
		SentAt:          time.Now(),
		RelatedEntityID: taskID,
		Type:            tfmodel.NotificationTaskAssignment,
	}

	if _, err := s.notificationStor.CreateNotification(notification); err != nil {
		log.Errorf("Failed to create assignment notification for user %d: %s", assigneeID, err)
	}
}

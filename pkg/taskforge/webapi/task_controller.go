package webapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/taskforge/pkg/taskforge"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

type TaskController struct {
	taskService *taskforge.TaskService
}

func NewTaskController(taskService *taskforge.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

type taskRequestBody struct {
	Title            string             `json:"title" validate:"required"`
	Description      string             `json:"description"`
	DueDate          *time.Time         `json:"due_date"`
	Priority         tfmodel.Priority   `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	Status           tfmodel.Status     `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED BLOCKED"`
	AssignedToUserID int                `json:"assigned_to_user_id"`
	ProjectID        int                `json:"project_id"`
	Visibility       tfmodel.Visibility `json:"visibility" validate:"required,oneof=PUBLIC RESTRICTED PRIVATE"`
}

func (b taskRequestBody) toRequest() taskforge.TaskRequest {
	return taskforge.TaskRequest{
		Title:            b.Title,
		Description:      b.Description,
		DueDate:          b.DueDate,
		Priority:         b.Priority,
		Status:           b.Status,
		AssignedToUserID: b.AssignedToUserID,
		ProjectID:        b.ProjectID,
		Visibility:       b.Visibility,
	}
}

func (c *TaskController) CreateTask(ctx echo.Context) error {
	var req taskRequestBody

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := c.taskService.CreateTask(req.toRequest(), currentUser(ctx).ID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, task)
}

func (c *TaskController) GetTask(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	task, err := c.taskService.GetTaskByID(taskID)
	if err != nil {
		return toHTTPError(err)
	}

	// Single-task reads come back unfiltered from the service, so the
	// visibility check happens here.
	visible, err := taskforge.TaskVisibleTo(task, currentUser(ctx).ID, c.taskService.SameTeam())
	if err != nil {
		return toHTTPError(err)
	}
	if !visible {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	return ctx.JSON(http.StatusOK, task)
}

func (c *TaskController) ListVisibleTasks(ctx echo.Context) error {
	tasks, err := c.taskService.GetAllVisibleTasks(currentUser(ctx).ID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, tasks)
}

func (c *TaskController) ListAssignedTasks(ctx echo.Context) error {
	userID, err := pathID(ctx, "userID")
	if err != nil {
		return err
	}

	tasks, err := c.taskService.GetTasksByAssignedUser(userID, currentUser(ctx).ID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, tasks)
}

func (c *TaskController) UpdateTask(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req taskRequestBody

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.taskService.UpdateTask(taskID, req.toRequest(), currentUser(ctx).ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TaskController) AddComment(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req struct {
		Text string `json:"text" validate:"required"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := c.taskService.AddComment(taskID, currentUser(ctx).ID, req.Text)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, comment)
}

func (c *TaskController) ListComments(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	comments, err := c.taskService.GetComments(taskID, currentUser(ctx).ID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, comments)
}

func (c *TaskController) AddAttachment(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req struct {
		FileName string `json:"file_name" validate:"required"`
		FilePath string `json:"file_path" validate:"required"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	attachment, err := c.taskService.AddAttachment(taskID, currentUser(ctx).ID, req.FileName, req.FilePath)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, attachment)
}

func (c *TaskController) ListAttachments(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	attachments, err := c.taskService.GetAttachments(taskID, currentUser(ctx).ID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, attachments)
}

func (c *TaskController) DeleteAttachment(ctx echo.Context) error {
	attachmentID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.taskService.DeleteAttachment(attachmentID, currentUser(ctx).ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TaskController) DeleteTask(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.taskService.DeleteTask(taskID, currentUser(ctx).ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

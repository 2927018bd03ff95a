package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/taskforge/pkg/taskforge"
)

type NotificationController struct {
	notificationService *taskforge.NotificationService
}

func NewNotificationController(notificationService *taskforge.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

func (c *NotificationController) ListNotifications(ctx echo.Context) error {
	notifications, err := c.notificationService.GetNotificationsForUser(currentUser(ctx).ID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, notifications)
}

func (c *NotificationController) MarkRead(ctx echo.Context) error {
	notificationID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.notificationService.MarkNotificationRead(notificationID, currentUser(ctx).ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *NotificationController) DeleteNotification(ctx echo.Context) error {
	notificationID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.notificationService.DeleteNotification(notificationID, currentUser(ctx).ID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

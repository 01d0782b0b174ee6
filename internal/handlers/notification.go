package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krmayoral/Agenda-WF/internal/dto"
	"github.com/krmayoral/Agenda-WF/internal/duestatus"
	apierrors "github.com/krmayoral/Agenda-WF/internal/errors"
	"github.com/krmayoral/Agenda-WF/internal/notify"
	"github.com/krmayoral/Agenda-WF/internal/registry"
)

// NotificationHandler serves the due-soon notification panel.
type NotificationHandler struct {
	registry *registry.Registry
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(reg *registry.Registry) *NotificationHandler {
	return &NotificationHandler{registry: reg}
}

// ListNotifications returns the tasks that are due soon and not yet
// acknowledged in this session.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	acknowledged := notify.AcknowledgedIDs(c)
	now := time.Now()

	notifications := []dto.TaskDTO{}
	for _, task := range h.registry.ListTasks(registry.TaskFilter{}) {
		if !duestatus.IsDueSoon(task, now) {
			continue
		}
		if _, acked := acknowledged[task.ID]; acked {
			continue
		}
		notifications = append(notifications, dto.ToTaskDTO(task, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// Acknowledge suppresses a task's due-soon notification for the remainder of
// the session. The task record itself is untouched.
func (h *NotificationHandler) Acknowledge(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, found := h.registry.FindTask(id); !found {
		apierrors.NotFound(c, "Task not found")
		return
	}

	if err := notify.Acknowledge(c, id); err != nil {
		apierrors.InternalError(c, "Failed to record acknowledgement")
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krmayoral/Agenda-WF/internal/dto"
	"github.com/krmayoral/Agenda-WF/internal/duestatus"
	apierrors "github.com/krmayoral/Agenda-WF/internal/errors"
	"github.com/krmayoral/Agenda-WF/internal/models"
	"github.com/krmayoral/Agenda-WF/internal/notify"
	"github.com/krmayoral/Agenda-WF/internal/registry"
)

const kindTask = "task"

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	registry      *registry.Registry
	confirmations *DeleteConfirmations
	tickInterval  time.Duration
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(reg *registry.Registry, confirmations *DeleteConfirmations) *TaskHandler {
	return &TaskHandler{
		registry:      reg,
		confirmations: confirmations,
		tickInterval:  time.Second,
	}
}

// ListTasks returns tasks in due-date order, optionally filtered by status.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks := h.registry.ListTasks(registry.TaskFilter{
		Status: models.TaskStatus(c.Query("status")),
	})
	c.JSON(http.StatusOK, dto.ToTaskListResponse(registry.SortedByDueDate(tasks), time.Now()))
}

// GetTask returns a single task by id with its derived status.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, found := h.registry.FindTask(id)
	if !found {
		apierrors.NotFound(c, "Task not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, time.Now()))
}

// TaskRequest is the request body for creating or replacing a task.
type TaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	AssignedTo  string            `json:"assignedTo"`
	StartDate   string            `json:"startDate"`
	DueDate     string            `json:"dueDate"`
	Status      models.TaskStatus `json:"status"`
	IsPriority  bool              `json:"isPriority"`
}

func (req TaskRequest) toModel() models.Task {
	return models.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Status:      req.Status,
		IsPriority:  req.IsPriority,
	}
}

// CreateTask adds a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.registry.AddTask(req.toModel())
	if err != nil {
		if errors.Is(err, registry.ErrTitleRequired) ||
			errors.Is(err, registry.ErrAssigneeRequired) ||
			errors.Is(err, registry.ErrInvalidStatus) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to save task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, time.Now()))
}

// UpdateTask replaces a task record verbatim.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.registry.UpdateTask(id, req.toModel())
	if err != nil {
		if errors.Is(err, registry.ErrInvalidStatus) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to save task")
		return
	}
	if task == nil {
		apierrors.NotFound(c, "Task not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, time.Now()))
}

// CycleStatus advances a task one step through the status cycle.
func (h *TaskHandler) CycleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.registry.CycleTaskStatus(id)
	if err != nil {
		apierrors.InternalError(c, "Failed to save task")
		return
	}
	if task == nil {
		apierrors.NotFound(c, "Task not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, time.Now()))
}

// RequestDelete registers a task deletion for confirmation.
func (h *TaskHandler) RequestDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, found := h.registry.FindTask(id); !found {
		apierrors.NotFound(c, "Task not found")
		return
	}

	token := h.confirmations.Request(kindTask, id)
	c.JSON(http.StatusAccepted, gin.H{"token": token})
}

// CancelDelete discards a pending task deletion.
func (h *TaskHandler) CancelDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !h.confirmations.Cancel(kindTask, id) {
		apierrors.NotFound(c, "No deletion pending for this task")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTask removes a task once the pending deletion is confirmed.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !h.confirmations.Confirm(kindTask, id, c.Query("token")) {
		apierrors.Conflict(c, "Deletion has not been confirmed")
		return
	}

	removed, err := h.registry.DeleteTask(id)
	if err != nil {
		apierrors.InternalError(c, "Failed to save tasks")
		return
	}
	if !removed {
		apierrors.NotFound(c, "Task not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary returns the per-status task counts.
func (h *TaskHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.StatusCounts())
}

// Countdown returns the point-in-time countdown for a task.
func (h *TaskHandler) Countdown(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, found := h.registry.FindTask(id)
	if !found {
		apierrors.NotFound(c, "Task not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToCountdownDTO(duestatus.TimeRemaining(*task, time.Now())))
}

// StreamCountdown streams the task's countdown over server-sent events at a
// one-second period. The stream ends when the countdown expires, the task
// disappears, or the client goes away; the ticker is released either way.
func (h *TaskHandler) StreamCountdown(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, found := h.registry.FindTask(id); !found {
		apierrors.NotFound(c, "Task not found")
		return
	}

	ticker := notify.NewTicker(h.tickInterval)
	defer ticker.Stop()
	ticks := ticker.Start(c.Request.Context())

	c.Stream(func(w io.Writer) bool {
		now, open := <-ticks
		if !open {
			return false
		}

		task, found := h.registry.FindTask(id)
		if !found {
			return false
		}

		remaining := duestatus.TimeRemaining(*task, now)
		c.SSEvent("countdown", dto.ToCountdownDTO(remaining))
		return !remaining.Expired && !remaining.NoDueDate
	})
}

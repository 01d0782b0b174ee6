package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krmayoral/Agenda-WF/internal/dto"
	apierrors "github.com/krmayoral/Agenda-WF/internal/errors"
	"github.com/krmayoral/Agenda-WF/internal/models"
	"github.com/krmayoral/Agenda-WF/internal/registry"
)

const kindEmployee = "employee"

// EmployeeHandler coordinates employee-related HTTP handlers.
type EmployeeHandler struct {
	registry      *registry.Registry
	confirmations *DeleteConfirmations
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(reg *registry.Registry, confirmations *DeleteConfirmations) *EmployeeHandler {
	return &EmployeeHandler{
		registry:      reg,
		confirmations: confirmations,
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

// ListEmployees returns the employees matching the degree/position filters.
// Filters compose with AND; empty filters return everything.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees := h.registry.ListEmployees(registry.EmployeeFilter{
		Degree:   c.Query("degree"),
		Position: c.Query("position"),
	})
	c.JSON(http.StatusOK, dto.ToEmployeeListResponse(employees))
}

// GetEmployee returns a single employee by id.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	employee, found := h.registry.FindEmployee(id)
	if !found {
		apierrors.NotFound(c, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// EmployeeRequest is the request body for creating or replacing an employee.
type EmployeeRequest struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Degree     string `json:"degree"`
	Activities string `json:"activities"`
}

func (req EmployeeRequest) toModel() models.Employee {
	return models.Employee{
		Name:       req.Name,
		Position:   req.Position,
		Degree:     req.Degree,
		Activities: req.Activities,
	}
}

// CreateEmployee adds a new employee.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.registry.AddEmployee(req.toModel())
	if err != nil {
		if errors.Is(err, registry.ErrNameRequired) || errors.Is(err, registry.ErrPositionRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to save employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee replaces an employee record verbatim.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.registry.UpdateEmployee(id, req.toModel())
	if err != nil {
		apierrors.InternalError(c, "Failed to save employee")
		return
	}
	if employee == nil {
		apierrors.NotFound(c, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// RequestDelete registers a deletion for confirmation and returns the token
// the confirm call must present.
func (h *EmployeeHandler) RequestDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, found := h.registry.FindEmployee(id); !found {
		apierrors.NotFound(c, "Employee not found")
		return
	}

	token := h.confirmations.Request(kindEmployee, id)
	c.JSON(http.StatusAccepted, gin.H{"token": token})
}

// CancelDelete discards a pending deletion.
func (h *EmployeeHandler) CancelDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !h.confirmations.Cancel(kindEmployee, id) {
		apierrors.NotFound(c, "No deletion pending for this employee")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteEmployee removes an employee once the pending deletion is confirmed
// with its token.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !h.confirmations.Confirm(kindEmployee, id, c.Query("token")) {
		apierrors.Conflict(c, "Deletion has not been confirmed")
		return
	}

	removed, err := h.registry.DeleteEmployee(id)
	if err != nil {
		apierrors.InternalError(c, "Failed to save employees")
		return
	}
	if !removed {
		apierrors.NotFound(c, "Employee not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDegrees returns the distinct employee degrees in first-seen order.
func (h *EmployeeHandler) ListDegrees(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"degrees": h.registry.UniqueDegrees()})
}

// ListPositions returns the distinct employee positions in first-seen order.
func (h *EmployeeHandler) ListPositions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"positions": h.registry.UniquePositions()})
}

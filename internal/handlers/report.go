package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/krmayoral/Agenda-WF/internal/errors"
	"github.com/krmayoral/Agenda-WF/internal/registry"
	"github.com/krmayoral/Agenda-WF/internal/report"
)

// ReportHandler serves exported agenda documents.
type ReportHandler struct {
	registry *registry.Registry
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reg *registry.Registry) *ReportHandler {
	return &ReportHandler{registry: reg}
}

// AgendaPDF exports the current roster and task list as a PDF.
func (h *ReportHandler) AgendaPDF(c *gin.Context) {
	employees := h.registry.ListEmployees(registry.EmployeeFilter{})
	tasks := h.registry.ListTasks(registry.TaskFilter{})

	data, err := report.Agenda(employees, tasks, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to render report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agenda.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

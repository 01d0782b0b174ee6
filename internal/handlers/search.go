package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krmayoral/Agenda-WF/internal/dto"
	"github.com/krmayoral/Agenda-WF/internal/models"
	"github.com/krmayoral/Agenda-WF/internal/registry"
)

// SearchHandler serves the explicit-trigger search over employee names and
// task titles.
type SearchHandler struct {
	registry *registry.Registry
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(reg *registry.Registry) *SearchHandler {
	return &SearchHandler{registry: reg}
}

// Search runs a case-insensitive substring search. A blank term yields a
// not-performed result with empty sets, which callers must distinguish from
// a performed search that matched nothing.
func (h *SearchHandler) Search(c *gin.Context) {
	result := h.registry.Search(c.Query("q"))

	now := time.Now()
	tasks := make([]dto.TaskDTO, 0, len(result.Tasks))
	for _, task := range registry.SortedByDueDate(result.Tasks) {
		tasks = append(tasks, dto.ToTaskDTO(task, now))
	}

	employees := result.Employees
	if employees == nil {
		employees = []models.Employee{}
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Performed: result.Performed,
		Employees: employees,
		Tasks:     tasks,
	})
}

package dto

import "github.com/krmayoral/Agenda-WF/internal/models"

// EmployeeListResponse represents a list of employees.
type EmployeeListResponse struct {
	Employees []models.Employee `json:"employees"`
	Count     int               `json:"count"`
}

// SearchResponse represents the outcome of a search. Performed is false when
// the term was blank; an empty result for a performed search means nothing
// matched.
type SearchResponse struct {
	Performed bool              `json:"performed"`
	Employees []models.Employee `json:"employees"`
	Tasks     []TaskDTO         `json:"tasks"`
}

// ToEmployeeListResponse converts a slice of employees to its response shape.
func ToEmployeeListResponse(employees []models.Employee) EmployeeListResponse {
	if employees == nil {
		employees = []models.Employee{}
	}
	return EmployeeListResponse{
		Employees: employees,
		Count:     len(employees),
	}
}

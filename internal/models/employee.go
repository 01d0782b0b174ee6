package models

// Employee is a member of the workforce roster. AssignedTo on tasks copies
// the Name field at assignment time; renaming an employee does not rewrite
// existing tasks.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Degree     string `json:"degree"`
	Activities string `json:"activities"`
}

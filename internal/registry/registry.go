package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/krmayoral/Agenda-WF/internal/models"
	"github.com/krmayoral/Agenda-WF/internal/store"
)

// Snapshot keys in the backing store.
const (
	employeesKey = "employees"
	tasksKey     = "tasks"
)

var (
	ErrNameRequired     = errors.New("employee name is required")
	ErrPositionRequired = errors.New("employee position is required")
	ErrTitleRequired    = errors.New("task title is required")
	ErrAssigneeRequired = errors.New("task assignee is required")
	ErrInvalidStatus    = errors.New("task status must be Pending, InProgress or Completed")
)

// Registry holds the employee and task collections in memory and writes a
// full snapshot of the affected collection to the backing store after every
// mutation. Unknown-id mutations are no-ops. The mutex exists because the
// HTTP layer serves requests concurrently; each operation still runs to
// completion on its own.
type Registry struct {
	mu        sync.Mutex
	kv        store.KVStore
	employees []models.Employee
	tasks     []models.Task
	now       func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the clock used for id generation.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// Load constructs a Registry from the snapshots in kv. A missing or
// unreadable snapshot degrades to an empty collection rather than failing
// the whole session.
func Load(kv store.KVStore, opts ...Option) (*Registry, error) {
	r := &Registry{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	if err := loadSnapshot(kv, employeesKey, &r.employees); err != nil {
		return nil, err
	}
	if err := loadSnapshot(kv, tasksKey, &r.tasks); err != nil {
		return nil, err
	}
	return r, nil
}

func loadSnapshot[T any](kv store.KVStore, key string, dst *[]T) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("failed to load %s snapshot: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("Discarding unreadable %s snapshot: %v", key, err)
		*dst = nil
	}
	return nil
}

func saveSnapshot[T any](kv store.KVStore, key string, collection []T) error {
	if collection == nil {
		collection = []T{}
	}
	raw, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", key, err)
	}
	if err := kv.Set(key, string(raw)); err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", key, err)
	}
	return nil
}

func (r *Registry) saveEmployees() error {
	return saveSnapshot(r.kv, employeesKey, r.employees)
}

func (r *Registry) saveTasks() error {
	return saveSnapshot(r.kv, tasksKey, r.tasks)
}

// AddEmployee validates the draft, assigns a fresh id and appends it.
func (r *Registry) AddEmployee(draft models.Employee) (*models.Employee, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(draft.Position) == "" {
		return nil, ErrPositionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	draft.ID = r.now().UnixMilli()
	r.employees = append(r.employees, draft)
	if err := r.saveEmployees(); err != nil {
		return nil, err
	}

	stored := r.employees[len(r.employees)-1]
	return &stored, nil
}

// UpdateEmployee replaces the record matching id verbatim. An unknown id is
// a no-op and returns nil.
func (r *Registry) UpdateEmployee(id int64, full models.Employee) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.employees {
		if r.employees[i].ID != id {
			continue
		}
		full.ID = id
		r.employees[i] = full
		if err := r.saveEmployees(); err != nil {
			return nil, err
		}
		stored := r.employees[i]
		return &stored, nil
	}
	return nil, nil
}

// DeleteEmployee removes the employee with the given id. The boolean reports
// whether anything was removed.
func (r *Registry) DeleteEmployee(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.employees {
		if r.employees[i].ID != id {
			continue
		}
		r.employees = append(r.employees[:i], r.employees[i+1:]...)
		if err := r.saveEmployees(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// normalizeStatus defaults an unset status to Pending and rejects values
// outside the enum, keeping the stored collection inside the status cycle.
func normalizeStatus(status models.TaskStatus) (models.TaskStatus, error) {
	if status == "" {
		return models.TaskStatusPending, nil
	}
	if !status.Known() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// AddTask validates the draft, assigns a fresh id, defaults the status to
// Pending and appends it.
func (r *Registry) AddTask(draft models.Task) (*models.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(draft.AssignedTo) == "" {
		return nil, ErrAssigneeRequired
	}

	status, err := normalizeStatus(draft.Status)
	if err != nil {
		return nil, err
	}
	draft.Status = status

	r.mu.Lock()
	defer r.mu.Unlock()

	draft.ID = r.now().UnixMilli()
	r.tasks = append(r.tasks, draft)
	if err := r.saveTasks(); err != nil {
		return nil, err
	}

	stored := r.tasks[len(r.tasks)-1]
	return &stored, nil
}

// UpdateTask replaces the record matching id verbatim, apart from the
// status, which is defaulted when unset and must stay inside the enum. An
// unknown id is a no-op and returns nil.
func (r *Registry) UpdateTask(id int64, full models.Task) (*models.Task, error) {
	status, err := normalizeStatus(full.Status)
	if err != nil {
		return nil, err
	}
	full.Status = status

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		full.ID = id
		r.tasks[i] = full
		if err := r.saveTasks(); err != nil {
			return nil, err
		}
		stored := r.tasks[i]
		return &stored, nil
	}
	return nil, nil
}

// DeleteTask removes the task with the given id. The boolean reports whether
// anything was removed.
func (r *Registry) DeleteTask(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
		if err := r.saveTasks(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// CycleTaskStatus advances the task's status one step through
// Pending, InProgress, Completed, wrapping after Completed. An unknown id is
// a no-op and returns nil.
func (r *Registry) CycleTaskStatus(id int64) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		r.tasks[i].Status = r.tasks[i].Status.Next()
		if err := r.saveTasks(); err != nil {
			return nil, err
		}
		stored := r.tasks[i]
		return &stored, nil
	}
	return nil, nil
}

// EmployeeFilter narrows ListEmployees. Empty fields match everything;
// provided fields compose with AND by exact string equality.
type EmployeeFilter struct {
	Degree   string
	Position string
}

// TaskFilter narrows ListTasks. An empty status matches everything.
type TaskFilter struct {
	Status models.TaskStatus
}

// ListEmployees returns the employees matching the filter, in insertion
// order.
func (r *Registry) ListEmployees(filter EmployeeFilter) []models.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		if filter.Degree != "" && emp.Degree != filter.Degree {
			continue
		}
		if filter.Position != "" && emp.Position != filter.Position {
			continue
		}
		out = append(out, emp)
	}
	return out
}

// ListTasks returns the tasks matching the filter, in insertion order.
func (r *Registry) ListTasks(filter TaskFilter) []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		out = append(out, task)
	}
	return out
}

// FindEmployee returns the employee with the given id.
func (r *Registry) FindEmployee(id int64) (*models.Employee, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, emp := range r.employees {
		if emp.ID == id {
			found := emp
			return &found, true
		}
	}
	return nil, false
}

// FindTask returns the task with the given id.
func (r *Registry) FindTask(id int64) (*models.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		if task.ID == id {
			found := task
			return &found, true
		}
	}
	return nil, false
}

// SortedByDueDate returns a copy of tasks stable-sorted ascending by due
// date. Tasks without a usable due date sort after every dated task and keep
// their relative order among themselves.
func SortedByDueDate(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		di, iDated := out[i].DueAt()
		dj, jDated := out[j].DueAt()
		if !iDated {
			return false
		}
		if !jDated {
			return true
		}
		return di.Before(dj)
	})
	return out
}

// SearchResult carries the outcome of a Search call. Performed is false when
// the term was blank, which is distinct from a performed search that matched
// nothing.
type SearchResult struct {
	Performed bool
	Employees []models.Employee
	Tasks     []models.Task
}

// Search matches term case-insensitively as a substring of employee names
// and task titles. A blank or whitespace-only term clears the search instead
// of matching everything.
func (r *Registry) Search(term string) SearchResult {
	if strings.TrimSpace(term) == "" {
		return SearchResult{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(term)
	result := SearchResult{
		Performed: true,
		Employees: []models.Employee{},
		Tasks:     []models.Task{},
	}
	for _, emp := range r.employees {
		if strings.Contains(strings.ToLower(emp.Name), needle) {
			result.Employees = append(result.Employees, emp)
		}
	}
	for _, task := range r.tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) {
			result.Tasks = append(result.Tasks, task)
		}
	}
	return result
}

// UniqueDegrees returns the distinct, non-empty, trimmed degree values
// across current employees in first-seen order.
func (r *Registry) UniqueDegrees() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]string, 0, len(r.employees))
	for _, emp := range r.employees {
		values = append(values, emp.Degree)
	}
	return uniqueTrimmed(values)
}

// UniquePositions returns the distinct, non-empty, trimmed position values
// across current employees in first-seen order.
func (r *Registry) UniquePositions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]string, 0, len(r.employees))
	for _, emp := range r.employees {
		values = append(values, emp.Position)
	}
	return uniqueTrimmed(values)
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// StatusCounts summarizes tasks per status. Statuses outside the enum count
// toward the total only.
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// StatusCounts tallies the current tasks by status.
func (r *Registry) StatusCounts() StatusCounts {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := StatusCounts{Total: len(r.tasks)}
	for _, task := range r.tasks {
		switch task.Status {
		case models.TaskStatusPending:
			counts.Pending++
		case models.TaskStatusInProgress:
			counts.InProgress++
		case models.TaskStatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

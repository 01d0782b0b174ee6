package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// statusCycle is the fixed order a task's status advances through.
var statusCycle = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

// Known reports whether the status is one of the three defined values.
func (s TaskStatus) Known() bool {
	for _, known := range statusCycle {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the status that follows s in the cycle, wrapping after
// Completed. A value outside the cycle advances to Pending.
func (s TaskStatus) Next() TaskStatus {
	idx := -1
	for i, known := range statusCycle {
		if s == known {
			idx = i
			break
		}
	}
	return statusCycle[(idx+1)%len(statusCycle)]
}

// Task is a unit of work assigned to an employee by display name. Dates are
// kept as the calendar-date strings they were entered as; an empty or
// unparseable date behaves as "no date" everywhere it is consumed.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assignedTo"`
	StartDate   string     `json:"startDate"`
	DueDate     string     `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	IsPriority  bool       `json:"isPriority"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a stored calendar-date string. The second return value is
// false for empty or unparseable input.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DueAt returns the parsed due date, if the task has a usable one.
func (t Task) DueAt() (time.Time, bool) {
	return ParseDate(t.DueDate)
}

// StartAt returns the parsed start date, if the task has a usable one.
func (t Task) StartAt() (time.Time, bool) {
	return ParseDate(t.StartDate)
}

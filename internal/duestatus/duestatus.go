// Package duestatus derives display status from a task's stored due date and
// the current wall-clock time. Every function is pure; callers supply now.
package duestatus

import (
	"math"
	"time"

	"github.com/krmayoral/Agenda-WF/internal/models"
)

const dayMillis = 24 * 60 * 60 * 1000

// IsOverdue reports whether the task's due date has passed and the task is
// not completed. Tasks without a usable due date are never overdue.
func IsOverdue(task models.Task, now time.Time) bool {
	due, ok := task.DueAt()
	if !ok || task.Status == models.TaskStatusCompleted {
		return false
	}
	return due.Before(now)
}

// IsDueSoon reports whether the task falls in the 0-2 day warning window.
// The window is measured in ceiling-rounded days, so a task overdue by less
// than a day still counts as due soon.
func IsDueSoon(task models.Task, now time.Time) bool {
	due, ok := task.DueAt()
	if !ok || task.Status == models.TaskStatusCompleted {
		return false
	}
	days := math.Ceil(float64(due.Sub(now).Milliseconds()) / dayMillis)
	return days >= 0 && days <= 2
}

// Remaining is a countdown decomposition of the time until a due date.
// Exactly one of NoDueDate, Expired, or the day/hour/minute/second fields is
// meaningful.
type Remaining struct {
	NoDueDate bool
	Expired   bool
	Days      int
	Hours     int
	Minutes   int
	Seconds   int
}

// TimeRemaining decomposes the time from now until the task's due date into
// whole days, hours within the day, minutes within the hour and seconds
// within the minute.
func TimeRemaining(task models.Task, now time.Time) Remaining {
	due, ok := task.DueAt()
	if !ok {
		return Remaining{NoDueDate: true}
	}

	diff := due.Sub(now)
	if diff <= 0 {
		return Remaining{Expired: true}
	}

	millis := diff.Milliseconds()
	return Remaining{
		Days:    int(millis / dayMillis),
		Hours:   int(millis / (60 * 60 * 1000) % 24),
		Minutes: int(millis / (60 * 1000) % 60),
		Seconds: int(millis / 1000 % 60),
	}
}

// StatusColor maps a task status to its display color. Values outside the
// enum fall back to a green, not an error.
func StatusColor(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusPending:
		return "#7f8c8d"
	case models.TaskStatusInProgress:
		return "#f1c40f"
	case models.TaskStatusCompleted:
		return "#27ae60"
	default:
		return "#2ecc71"
	}
}

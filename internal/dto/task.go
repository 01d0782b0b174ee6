package dto

import (
	"time"

	"github.com/krmayoral/Agenda-WF/internal/duestatus"
	"github.com/krmayoral/Agenda-WF/internal/models"
)

// CountdownDTO represents a countdown in API responses.
type CountdownDTO struct {
	NoDueDate bool `json:"noDueDate,omitempty"`
	Expired   bool `json:"expired,omitempty"`
	Days      int  `json:"days"`
	Hours     int  `json:"hours"`
	Minutes   int  `json:"minutes"`
	Seconds   int  `json:"seconds"`
}

// TaskDTO represents a task in API responses, including the status derived
// from the due date at response time.
type TaskDTO struct {
	models.Task
	Overdue   bool         `json:"overdue"`
	DueSoon   bool         `json:"dueSoon"`
	Color     string       `json:"color"`
	Remaining CountdownDTO `json:"remaining"`
}

// TaskListResponse represents a list of tasks.
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	Count int       `json:"count"`
}

// ToCountdownDTO converts a duestatus.Remaining to its response shape.
func ToCountdownDTO(remaining duestatus.Remaining) CountdownDTO {
	return CountdownDTO{
		NoDueDate: remaining.NoDueDate,
		Expired:   remaining.Expired,
		Days:      remaining.Days,
		Hours:     remaining.Hours,
		Minutes:   remaining.Minutes,
		Seconds:   remaining.Seconds,
	}
}

// ToTaskDTO converts a Task model to TaskDTO, deriving due-date status
// against now.
func ToTaskDTO(task models.Task, now time.Time) TaskDTO {
	return TaskDTO{
		Task:      task,
		Overdue:   duestatus.IsOverdue(task, now),
		DueSoon:   duestatus.IsDueSoon(task, now),
		Color:     duestatus.StatusColor(task.Status),
		Remaining: ToCountdownDTO(duestatus.TimeRemaining(task, now)),
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse.
func ToTaskListResponse(tasks []models.Task, now time.Time) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task, now)
	}
	return TaskListResponse{
		Tasks: items,
		Count: len(items),
	}
}

// Package report renders the agenda as an exportable document.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"

	"github.com/krmayoral/Agenda-WF/internal/models"
	"github.com/krmayoral/Agenda-WF/internal/registry"
)

// Agenda renders the employee roster and the task list (in due-date order)
// as a PDF document.
func Agenda(employees []models.Employee, tasks []models.Task, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Agenda WF")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employees (%d)", len(employees)))
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	for _, emp := range employees {
		line := fmt.Sprintf("%s - %s", emp.Name, emp.Position)
		if emp.Degree != "" {
			line += fmt.Sprintf(" (%s)", emp.Degree)
		}
		if emp.Activities != "" {
			line += ": " + emp.Activities
		}
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}
	if len(employees) == 0 {
		pdf.MultiCell(0, 6, "No employees registered.", "0", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Tasks (%d)", len(tasks)))
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	for _, task := range registry.SortedByDueDate(tasks) {
		pdf.MultiCell(0, 6, taskLine(task, now), "0", "L", false)
	}
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks registered.", "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render agenda report: %w", err)
	}
	return buf.Bytes(), nil
}

// taskLine formats one task entry. The start date is shown only when it
// parses; a garbled date is dropped rather than printed.
func taskLine(task models.Task, now time.Time) string {
	marker := ""
	if task.IsPriority {
		marker = "[priority] "
	}
	line := fmt.Sprintf("%s%s - %s (%s)", marker, task.Title, task.AssignedTo, task.Status)
	if _, ok := task.StartAt(); ok {
		line += fmt.Sprintf(", started %s", task.StartDate)
	}
	return line + ", due " + duePhrase(task, now)
}

func duePhrase(task models.Task, now time.Time) string {
	due, ok := task.DueAt()
	if !ok {
		return "no due date"
	}
	return fmt.Sprintf("%s (%s)", task.DueDate, humanize.RelTime(due, now, "ago", "from now"))
}

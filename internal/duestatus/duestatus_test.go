package duestatus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/krmayoral/Agenda-WF/internal/models"
)

func dateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{
			name: "past due date pending",
			task: models.Task{DueDate: dateString(now.AddDate(0, 0, -1)), Status: models.TaskStatusPending},
			want: true,
		},
		{
			name: "past due date completed",
			task: models.Task{DueDate: dateString(now.AddDate(0, 0, -1)), Status: models.TaskStatusCompleted},
			want: false,
		},
		{
			name: "future due date",
			task: models.Task{DueDate: dateString(now.AddDate(0, 0, 3)), Status: models.TaskStatusPending},
			want: false,
		},
		{
			name: "no due date",
			task: models.Task{Status: models.TaskStatusPending},
			want: false,
		},
		{
			name: "unparseable due date",
			task: models.Task{DueDate: "someday", Status: models.TaskStatusPending},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.task, now))
		})
	}
}

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{
			name: "due tomorrow",
			task: models.Task{DueDate: dateString(now.AddDate(0, 0, 1)), Status: models.TaskStatusPending},
			want: true,
		},
		{
			name: "due in two days",
			task: models.Task{DueDate: dateString(now.AddDate(0, 0, 2)), Status: models.TaskStatusInProgress},
			want: true,
		},
		{
			name: "due in three days",
			task: models.Task{DueDate: dateString(now.AddDate(0, 0, 3)), Status: models.TaskStatusPending},
			want: false,
		},
		{
			// Less than a day past due still rounds up to zero days out.
			name: "overdue by hours",
			task: models.Task{DueDate: "2026-09-01", Status: models.TaskStatusPending},
			want: true,
		},
		{
			name: "overdue by days",
			task: models.Task{DueDate: dateString(now.AddDate(0, 0, -4)), Status: models.TaskStatusPending},
			want: false,
		},
		{
			name: "due tomorrow but completed",
			task: models.Task{DueDate: dateString(now.AddDate(0, 0, 1)), Status: models.TaskStatusCompleted},
			want: false,
		},
		{
			name: "no due date",
			task: models.Task{Status: models.TaskStatusPending},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDueSoon(tt.task, now))
		})
	}
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("decomposes the difference", func(t *testing.T) {
		due := now.Add(49*time.Hour + 30*time.Minute + 10*time.Second)
		task := models.Task{DueDate: due.Format(time.RFC3339)}

		remaining := TimeRemaining(task, now)

		assert.False(t, remaining.NoDueDate)
		assert.False(t, remaining.Expired)
		assert.Equal(t, 2, remaining.Days)
		assert.Equal(t, 1, remaining.Hours)
		assert.Equal(t, 30, remaining.Minutes)
		assert.Equal(t, 10, remaining.Seconds)
	})

	t.Run("expired", func(t *testing.T) {
		task := models.Task{DueDate: dateString(now.AddDate(0, 0, -1))}
		assert.True(t, TimeRemaining(task, now).Expired)
	})

	t.Run("exactly due counts as expired", func(t *testing.T) {
		task := models.Task{DueDate: now.Format(time.RFC3339)}
		assert.True(t, TimeRemaining(task, now).Expired)
	})

	t.Run("no due date", func(t *testing.T) {
		assert.True(t, TimeRemaining(models.Task{}, now).NoDueDate)
	})

	t.Run("unparseable date behaves as no due date", func(t *testing.T) {
		task := models.Task{DueDate: "next friday"}
		assert.True(t, TimeRemaining(task, now).NoDueDate)
	})
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#7f8c8d", StatusColor(models.TaskStatusPending))
	assert.Equal(t, "#f1c40f", StatusColor(models.TaskStatusInProgress))
	assert.Equal(t, "#27ae60", StatusColor(models.TaskStatusCompleted))
	assert.Equal(t, "#2ecc71", StatusColor(models.TaskStatus("Archived")))
}

// Package view projects the task sequence into rendering-agnostic models and
// drives the new-task form.
package view

import (
	"strings"

	"todo-web/models"
	"todo-web/store"
)

const (
	starMarker        = "⭐️"
	emptyDescription  = "(no details)"
	completedRowClass = "completed"
)

// ListRow is one visible entry of the task list.
type ListRow struct {
	ID               int64
	Title            string
	DueLabel         string
	PriorityLabel    string
	DescriptionLabel string
	Completed        bool
	Class            string

	// Toggle is sent when the row is clicked, Delete by the row's delete
	// button. The two never fire together.
	Toggle store.Command
	Delete store.Command
}

// ListRows maps tasks to rows in sequence order.
func ListRows(tasks []models.Task) []ListRow {
	rows := make([]ListRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, newListRow(t))
	}
	return rows
}

func newListRow(t models.Task) ListRow {
	row := ListRow{
		ID:               t.ID,
		Title:            t.Title,
		DueLabel:         "Due:🗓️ " + t.DueDate,
		PriorityLabel:    PriorityLabel(t.Priority),
		DescriptionLabel: t.Description,
		Completed:        t.Completed,
		Toggle:           store.Command{Kind: store.CommandToggle, ID: t.ID},
		Delete:           store.Command{Kind: store.CommandRemove, ID: t.ID},
	}
	if row.DescriptionLabel == "" {
		row.DescriptionLabel = emptyDescription
	}
	if t.Completed {
		row.Class = completedRowClass
	}
	return row
}

// PriorityLabel renders e.g. "Priority:⭐️⭐️⭐️ High".
func PriorityLabel(p models.Priority) string {
	return "Priority:" + strings.Repeat(starMarker, p.Stars()) + " " + string(p)
}

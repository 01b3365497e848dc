package view

import (
	"todo-web/models"
)

const (
	completedEventColor = "#9e9e9e"
	completedEventClass = "task-completed"
)

// CalendarEvent is the event shape the calendar widget consumes.
type CalendarEvent struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Start         string        `json:"start"`
	AllDay        bool          `json:"allDay"`
	Color         string        `json:"color,omitempty"`
	ClassNames    []string      `json:"classNames,omitempty"`
	ExtendedProps EventMetadata `json:"extendedProps"`
}

type EventMetadata struct {
	Completed bool `json:"completed"`
}

// CalendarConfig is handed to the widget when it mounts. The dayGrid and
// interaction plugins come with the FullCalendar bundle the page loads.
type CalendarConfig struct {
	InitialView string          `json:"initialView"`
	Events      []CalendarEvent `json:"events"`
}

func CalendarEvents(tasks []models.Task) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(tasks))
	for _, t := range tasks {
		ev := CalendarEvent{
			ID:            t.ID,
			Title:         t.Title,
			Start:         t.DueDate,
			AllDay:        true,
			ExtendedProps: EventMetadata{Completed: t.Completed},
		}
		if t.Completed {
			ev.Color = completedEventColor
			ev.ClassNames = []string{completedEventClass}
		}
		events = append(events, ev)
	}
	return events
}

func CalendarOptions(tasks []models.Task) CalendarConfig {
	return CalendarConfig{
		InitialView: "dayGridMonth",
		Events:      CalendarEvents(tasks),
	}
}

// DayView lists the tasks due on one calendar date.
type DayView struct {
	Date    string        `json:"date"`
	Rows    []ListRow     `json:"-"`
	Tasks   []models.Task `json:"tasks"`
	Message string        `json:"message,omitempty"`
}

// DayTasks returns tasks whose due date equals date exactly. No date
// normalization happens, so "2024-01-05" does not match "2024-1-5".
func DayTasks(tasks []models.Task, date string) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if t.DueDate == date {
			out = append(out, t)
		}
	}
	return out
}

func NewDayView(tasks []models.Task, date string) DayView {
	due := DayTasks(tasks, date)
	v := DayView{Date: date, Tasks: due, Rows: ListRows(due)}
	if len(due) == 0 {
		v.Message = "No tasks for " + date
	}
	return v
}

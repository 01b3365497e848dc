package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DueDateLayout is the format produced by the browser date input.
const DueDateLayout = "2006-01-02"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank orders priorities for sorting: High(1) < Medium(2) < Low(3).
// Unknown values rank after Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Stars is the number of emphasis markers shown next to the priority.
func (p Priority) Stars() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	}
	return 1
}

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.TrimSpace(s))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// Task is a single to-do record. The JSON shape is the persisted slot format.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"duedate"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// Validate checks the invariants every stored record must hold.
func (t Task) Validate() error {
	var fields []string
	if strings.TrimSpace(t.Title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(t.DueDate) == "" {
		fields = append(fields, "duedate")
	}
	if !t.Priority.Valid() {
		fields = append(fields, "priority")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ParseDueDate accepts YYYY-MM-DD and RFC 3339 timestamps.
func ParseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(DueDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// NewTaskInput carries the raw fields of the new-task form.
type NewTaskInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	DueDate     string `json:"duedate" form:"duedate"`
	Priority    string `json:"priority" form:"priority"`
}

// Normalize trims surrounding whitespace from every field.
func (in NewTaskInput) Normalize() NewTaskInput {
	return NewTaskInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		DueDate:     strings.TrimSpace(in.DueDate),
		Priority:    strings.TrimSpace(in.Priority),
	}
}

// Validate checks the required fields of a normalized input.
func (in NewTaskInput) Validate() error {
	var fields []string
	if in.Title == "" {
		fields = append(fields, "title")
	}
	if in.DueDate == "" {
		fields = append(fields, "duedate")
	} else if _, err := time.Parse(DueDateLayout, in.DueDate); err != nil {
		fields = append(fields, "duedate")
	}
	if !Priority(in.Priority).Valid() {
		fields = append(fields, "priority")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

var ErrValidation = errors.New("validation failed")

// ValidationError lists the fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

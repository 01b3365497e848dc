// Package store owns the in-memory task sequence and keeps it in step with the
// persistent slot.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"todo-web/models"
	"todo-web/storage"
)

// Store is the single owner of the task list. Every mutation rewrites the whole
// sequence to the slot before it becomes visible in memory.
type Store struct {
	mu     sync.Mutex
	slot   *storage.TaskSlot
	ids    *IDSource
	logger *log.Logger
	tasks  []models.Task
}

type Option func(*Store)

// WithClock replaces the clock used for new ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids = NewIDSource(now) }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New loads the sequence once from slot.
func New(ctx context.Context, slot *storage.TaskSlot, opts ...Option) (*Store, error) {
	s := &Store{
		slot:   slot,
		ids:    NewIDSource(nil),
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	for _, t := range tasks {
		s.ids.Observe(t.ID)
	}
	s.tasks = tasks
	s.logger.WithFields(log.Fields{"slot": slot.Key(), "tasks": len(tasks)}).Debug("task list loaded")
	return s, nil
}

// Tasks returns a copy of the current sequence.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Add validates input and appends a new incomplete task.
func (s *Store) Add(ctx context.Context, input models.NewTaskInput) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, input)
}

// Remove drops the task with id. A missing id leaves the sequence unchanged.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, id)
}

// ToggleComplete flips the completed flag of the task with id, if present.
func (s *Store) ToggleComplete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggleComplete(ctx, id)
}

// SortByDate orders incomplete tasks by due date and moves completed ones to
// the end in their existing order.
func (s *Store) SortByDate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortByDate(ctx)
}

// SortByPriority orders incomplete tasks High, Medium, Low and moves completed
// ones to the end in their existing order.
func (s *Store) SortByPriority(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortByPriority(ctx)
}

// The lower-case operations below expect s.mu to be held.

func (s *Store) add(ctx context.Context, input models.NewTaskInput) (models.Task, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          s.ids.Next(),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    models.Priority(input.Priority),
	}
	next := make([]models.Task, 0, len(s.tasks)+1)
	next = append(next, s.tasks...)
	next = append(next, task)
	if err := s.commit(ctx, next); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *Store) remove(ctx context.Context, id int64) error {
	next := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	return s.commit(ctx, next)
}

func (s *Store) toggleComplete(ctx context.Context, id int64) error {
	next := make([]models.Task, len(s.tasks))
	copy(next, s.tasks)
	for i := range next {
		if next[i].ID == id {
			next[i].Completed = !next[i].Completed
		}
	}
	return s.commit(ctx, next)
}

func (s *Store) sortByDate(ctx context.Context) error {
	incomplete, complete := partition(s.tasks)
	sort.SliceStable(incomplete, func(i, j int) bool {
		return dueBefore(incomplete[i].DueDate, incomplete[j].DueDate)
	})
	return s.commit(ctx, append(incomplete, complete...))
}

func (s *Store) sortByPriority(ctx context.Context) error {
	incomplete, complete := partition(s.tasks)
	sort.SliceStable(incomplete, func(i, j int) bool {
		return incomplete[i].Priority.Rank() < incomplete[j].Priority.Rank()
	})
	return s.commit(ctx, append(incomplete, complete...))
}

// commit persists next and then installs it. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []models.Task) error {
	if err := s.slot.Save(ctx, next); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	s.tasks = next
	return nil
}

// partition splits tasks into fresh incomplete and completed slices, keeping
// relative order inside each.
func partition(tasks []models.Task) (incomplete, complete []models.Task) {
	incomplete = make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			complete = append(complete, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, complete
}

// dueBefore reports whether due date a sorts strictly before b. Dates that do
// not parse go after every parsed date and compare lexically among themselves.
func dueBefore(a, b string) bool {
	ta, errA := models.ParseDueDate(a)
	tb, errB := models.ParseDueDate(b)
	switch {
	case errA == nil && errB == nil:
		return ta.Before(tb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

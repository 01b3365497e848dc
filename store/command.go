package store

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"todo-web/models"
)

type CommandKind string

const (
	CommandAdd          CommandKind = "add"
	CommandRemove       CommandKind = "remove"
	CommandToggle       CommandKind = "toggle"
	CommandSortDate     CommandKind = "sort-date"
	CommandSortPriority CommandKind = "sort-priority"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is a user action addressed to the store. ID is used by remove and
// toggle, Input by add.
type Command struct {
	Kind  CommandKind         `json:"kind"`
	ID    int64               `json:"id,omitempty"`
	Input models.NewTaskInput `json:"input"`
}

// Result is what a dispatched command produced.
type Result struct {
	Task  *models.Task  `json:"task,omitempty"`
	Tasks []models.Task `json:"tasks"`
}

// Dispatcher accepts commands. *Store implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd Command) (Result, error)
}

// Dispatch runs cmd and returns the sequence as it stood right after cmd was
// applied, before any other command could run.
func (s *Store) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		res Result
		err error
	)
	switch cmd.Kind {
	case CommandAdd:
		var task models.Task
		task, err = s.add(ctx, cmd.Input)
		if err == nil {
			res.Task = &task
		}
	case CommandRemove:
		err = s.remove(ctx, cmd.ID)
	case CommandToggle:
		err = s.toggleComplete(ctx, cmd.ID)
	case CommandSortDate:
		err = s.sortByDate(ctx)
	case CommandSortPriority:
		err = s.sortByPriority(ctx)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
	if err != nil {
		return Result{}, err
	}
	res.Tasks = s.snapshot()
	s.logger.WithFields(log.Fields{"command": cmd.Kind, "id": cmd.ID, "tasks": len(res.Tasks)}).Debug("command applied")
	return res, nil
}

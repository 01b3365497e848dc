package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"todo-web/models"
)

// TaskSlot reads and writes the whole task sequence as one JSON array.
type TaskSlot struct {
	slot   Slot
	key    string
	logger *log.Logger
}

func NewTaskSlot(slot Slot, key string, logger *log.Logger) *TaskSlot {
	if slot == nil {
		panic("storage.NewTaskSlot: slot is nil")
	}
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TaskSlot{slot: slot, key: key, logger: logger}
}

func (s *TaskSlot) Key() string { return s.key }

// Load returns the stored sequence. An empty slot or a payload that does not
// decode yields an empty sequence, and records that fail Task.Validate are
// dropped. Only backend failures are errors.
func (s *TaskSlot) Load(ctx context.Context) ([]models.Task, error) {
	data, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrSlotEmpty) {
		return []models.Task{}, nil
	}
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := sonic.Unmarshal(data, &tasks); err != nil {
		s.logger.WithFields(log.Fields{"slot": s.key, "error": err}).Warn("discarding malformed task list")
		return []models.Task{}, nil
	}
	valid := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			s.logger.WithFields(log.Fields{"slot": s.key, "id": t.ID, "error": err}).Warn("skipping invalid task record")
			continue
		}
		valid = append(valid, t)
	}
	return valid, nil
}

// Save overwrites the slot with the full sequence.
func (s *TaskSlot) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := sonic.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return s.slot.Set(ctx, s.key, data)
}

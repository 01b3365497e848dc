// Package storage persists the serialized task list in a named key-value slot.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the slot name the task list lives under.
const DefaultKey = "todos"

// ErrSlotEmpty is returned by Get when nothing has been stored under the key.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a durable key-value location. Writes are last-write-wins.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository persists the task list as a whole. There is no partial
// update path: callers replace the full ordered sequence after every
// mutation and load it back once at startup.
type Repository interface {
	ReplaceAll(ctx context.Context, tasks []TaskRecord) error
	LoadAll(ctx context.Context) ([]TaskRecord, error)
	Close() error
}

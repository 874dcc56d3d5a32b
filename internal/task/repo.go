package task

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("Tarea no encontrada")

// Repo is the narrow contract the service needs from durable storage:
// atomic single-row primitives plus a full scan. Update and Delete report
// the affected-count so the service can tell a logical miss from success.
type Repo interface {
	Insert(ctx context.Context, t Task) (int64, error)
	List(ctx context.Context) ([]Task, error)
	UpdateStatus(ctx context.Context, id int64, status, updatedAt string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

package task

import (
	"context"
	"fmt"
	"log"

	"taskflow/internal/clock"
)

// Broadcast event names. Payloads: EventNewTask carries the full Task,
// EventTaskUpdated a StatusUpdate, EventTaskDeleted a Deleted.
const (
	EventNewTask     = "newTask"
	EventTaskUpdated = "taskUpdated"
	EventTaskDeleted = "taskDeleted"
)

// Publisher fans an event out to every currently connected observer.
// Fire-and-forget: it never blocks the caller and never reports failure,
// so a broadcast problem cannot fail the operation that triggered it.
type Publisher interface {
	Publish(event string, data any)
}

// Service orchestrates validate -> persist -> broadcast for each
// operation. It holds no task state of its own; every read goes back to
// the repo and every broadcast happens strictly after its commit.
type Service struct {
	repo   Repo
	events Publisher
	clock  clock.Clock
	logger *log.Logger
}

func NewService(repo Repo, events Publisher, clk clock.Clock, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{repo: repo, events: events, clock: clk, logger: logger}
}

// Create validates the input, inserts the row and broadcasts the full
// record. A newTask event is emitted if and only if the insert committed.
func (s *Service) Create(ctx context.Context, title, description string) (Task, error) {
	if err := ValidateCreate(title, description); err != nil {
		return Task{}, err
	}

	now := FormatTime(s.clock.Now())
	t := Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Writes run to completion even if the caller went away; a response
	// may be lost while the broadcast still fires.
	id, err := s.repo.Insert(context.WithoutCancel(ctx), t)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	t.ID = id

	s.events.Publish(EventNewTask, t)
	s.logger.Printf("task %d created", id)
	return t, nil
}

// List returns all tasks in store order.
func (s *Service) List(ctx context.Context) ([]Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus sets a task's status and refreshes fechaActualizacion.
// Any status string is accepted; last write wins under concurrency.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (StatusUpdate, error) {
	if status == "" {
		return StatusUpdate{}, ErrMissingStatus
	}

	now := FormatTime(s.clock.Now())
	affected, err := s.repo.UpdateStatus(context.WithoutCancel(ctx), id, status, now)
	if err != nil {
		return StatusUpdate{}, fmt.Errorf("update task %d: %w", id, err)
	}
	if affected == 0 {
		return StatusUpdate{}, ErrNotFound
	}

	upd := StatusUpdate{ID: id, Status: status}
	s.events.Publish(EventTaskUpdated, upd)
	s.logger.Printf("task %d updated to %q", id, status)
	return upd, nil
}

// Delete removes a task permanently; its id is never reused.
func (s *Service) Delete(ctx context.Context, id int64) (Deleted, error) {
	affected, err := s.repo.Delete(context.WithoutCancel(ctx), id)
	if err != nil {
		return Deleted{}, fmt.Errorf("delete task %d: %w", id, err)
	}
	if affected == 0 {
		return Deleted{}, ErrNotFound
	}

	del := Deleted{ID: id}
	s.events.Publish(EventTaskDeleted, del)
	s.logger.Printf("task %d deleted", id)
	return del, nil
}

package task

import "time"

// StatusPending is the status every task starts in. Status is free-form
// after creation; clients may set any string through an update.
const StatusPending = "pending"

// timeLayout matches the wire format of the timestamps: ISO-8601 in UTC
// with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Task is the sole entity of the service. The JSON names are the wire
// contract and must not change.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Status      string `json:"status"`
	CreatedAt   string `json:"fechaCreacion"`
	UpdatedAt   string `json:"fechaActualizacion"`
}

// StatusUpdate is the projection broadcast and returned for updates.
// Intentionally omits title, description and timestamps.
type StatusUpdate struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Deleted is the payload broadcast when a task is removed.
type Deleted struct {
	ID int64 `json:"id"`
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

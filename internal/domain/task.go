package domain

import "time"

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedBy   int64      `json:"created_by"`
	AssignedTo  *int64     `json:"assigned_to,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "OPEN"
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusClosed    TaskStatus = "CLOSED"
)

// CanAdvanceTo reports whether next is the immediate successor of s in the
// OPEN -> PENDING -> COMPLETED -> CLOSED lifecycle. No skipping, no backward
// moves; CLOSED is terminal.
func (s TaskStatus) CanAdvanceTo(next TaskStatus) bool {
	switch s {
	case TaskStatusOpen:
		return next == TaskStatusPending
	case TaskStatusPending:
		return next == TaskStatusCompleted
	case TaskStatusCompleted:
		return next == TaskStatusClosed
	default:
		return false
	}
}

func (s TaskStatus) Terminal() bool {
	return s == TaskStatusClosed
}

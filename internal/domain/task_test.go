package domain

import "testing"

func TestTaskStatus_CanAdvanceTo_StrictOrder(t *testing.T) {
	statuses := []TaskStatus{TaskStatusOpen, TaskStatusPending, TaskStatusCompleted, TaskStatusClosed}

	allowed := map[TaskStatus]TaskStatus{
		TaskStatusOpen:      TaskStatusPending,
		TaskStatusPending:   TaskStatusCompleted,
		TaskStatusCompleted: TaskStatusClosed,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[from] == to
			if got := from.CanAdvanceTo(to); got != want {
				t.Fatalf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTaskStatus_ClosedIsTerminal(t *testing.T) {
	if !TaskStatusClosed.Terminal() {
		t.Fatalf("expected CLOSED to be terminal")
	}
	for _, s := range []TaskStatus{TaskStatusOpen, TaskStatusPending, TaskStatusCompleted} {
		if s.Terminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
}

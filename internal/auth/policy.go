// Package auth holds the role-scoped authorization policy. The policy is a
// pure decision table: it never touches storage and never mutates anything,
// so every caller can consult it freely before acting.
package auth

import "taskflow/internal/domain"

type Action string

const (
	ActionCreateUser   Action = "create_user"
	ActionListUsers    Action = "list_users"
	ActionCreateTask   Action = "create_task"
	ActionAssignTask   Action = "assign_task"
	ActionCompleteTask Action = "complete_task"
	ActionCloseTask    Action = "close_task"
	ActionListTasks    Action = "list_tasks"
)

// Can reports whether the actor may perform action. Task-scoped actions
// (assign, complete, close) additionally check ownership against task;
// task may be nil for the task-independent actions. Unknown actions are
// denied.
func Can(actor domain.Actor, action Action, task *domain.Task) bool {
	switch action {
	case ActionCreateUser:
		return actor.Role == domain.RoleAdmin

	case ActionListUsers:
		return actor.Role == domain.RoleAdmin || actor.Role == domain.RoleManager

	case ActionCreateTask:
		return actor.Role == domain.RoleManager

	case ActionAssignTask, ActionCloseTask:
		return actor.Role == domain.RoleManager &&
			task != nil && task.CreatedBy == actor.ID

	case ActionCompleteTask:
		return actor.Role == domain.RoleExecutant &&
			task != nil && task.AssignedTo != nil && *task.AssignedTo == actor.ID

	case ActionListTasks:
		return true

	default:
		return false
	}
}

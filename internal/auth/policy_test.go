package auth

import (
	"testing"

	"taskflow/internal/domain"
)

func TestCan_DecisionTable(t *testing.T) {
	manager := domain.Actor{ID: 1, Role: domain.RoleManager}
	otherManager := domain.Actor{ID: 2, Role: domain.RoleManager}
	executant := domain.Actor{ID: 3, Role: domain.RoleExecutant}
	otherExecutant := domain.Actor{ID: 4, Role: domain.RoleExecutant}
	admin := domain.Actor{ID: 5, Role: domain.RoleAdmin}

	assignee := executant.ID
	task := &domain.Task{ID: 10, CreatedBy: manager.ID, AssignedTo: &assignee}
	unassigned := &domain.Task{ID: 11, CreatedBy: manager.ID}

	cases := []struct {
		name   string
		actor  domain.Actor
		action Action
		task   *domain.Task
		want   bool
	}{
		{"admin creates user", admin, ActionCreateUser, nil, true},
		{"manager creates user", manager, ActionCreateUser, nil, false},
		{"executant creates user", executant, ActionCreateUser, nil, false},

		{"admin lists users", admin, ActionListUsers, nil, true},
		{"manager lists users", manager, ActionListUsers, nil, true},
		{"executant lists users", executant, ActionListUsers, nil, false},

		{"manager creates task", manager, ActionCreateTask, nil, true},
		{"admin creates task", admin, ActionCreateTask, nil, false},
		{"executant creates task", executant, ActionCreateTask, nil, false},

		{"creator assigns", manager, ActionAssignTask, task, true},
		{"other manager assigns", otherManager, ActionAssignTask, task, false},
		{"executant assigns", executant, ActionAssignTask, task, false},
		{"assign without task", manager, ActionAssignTask, nil, false},

		{"assignee completes", executant, ActionCompleteTask, task, true},
		{"other executant completes", otherExecutant, ActionCompleteTask, task, false},
		{"manager completes", manager, ActionCompleteTask, task, false},
		{"complete unassigned task", executant, ActionCompleteTask, unassigned, false},

		{"creator closes", manager, ActionCloseTask, task, true},
		{"other manager closes", otherManager, ActionCloseTask, task, false},
		{"assignee closes", executant, ActionCloseTask, task, false},

		{"admin lists tasks", admin, ActionListTasks, nil, true},
		{"manager lists tasks", manager, ActionListTasks, nil, true},
		{"executant lists tasks", executant, ActionListTasks, nil, true},

		{"unknown action denied", admin, Action("delete_everything"), nil, false},
	}

	for _, tc := range cases {
		if got := Can(tc.actor, tc.action, tc.task); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

package service

import (
	"context"
	"fmt"

	. "github.com/go-ozzo/ozzo-validation"

	"taskflow/internal/auth"
	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
	"taskflow/internal/repository"
)

// TaskService drives the task lifecycle: OPEN -> PENDING -> COMPLETED ->
// CLOSED, one step at a time, with every transition gated by the
// authorization policy.
type TaskService struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	logger *logger.Logger
}

func NewTaskService(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	logger *logger.Logger,
) *TaskService {
	return &TaskService{
		tasks:  tasks,
		users:  users,
		logger: logger.Component("service/task"),
	}
}

// Create opens a new task owned by the acting manager.
func (s *TaskService) Create(ctx context.Context, actor domain.Actor, title, description string) (*domain.Task, error) {
	if !auth.Can(actor, auth.ActionCreateTask, nil) {
		return nil, domain.ErrForbidden
	}

	if err := Validate(title, Required, Length(1, 255)); err != nil {
		return nil, fmt.Errorf("%w: title %s", domain.ErrValidation, err)
	}
	if err := Validate(description, Required); err != nil {
		return nil, fmt.Errorf("%w: description %s", domain.ErrValidation, err)
	}

	created, err := s.tasks.Create(ctx, &domain.Task{
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusOpen,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", created.ID,
		"created_by", actor.ID,
	)

	return created, nil
}

// Assign hands an OPEN task to an executant, moving it to PENDING. Only the
// creating manager may assign, and only while the task is still OPEN.
func (s *TaskService) Assign(ctx context.Context, actor domain.Actor, taskID, executantID int64) (*domain.Task, error) {
	if actor.Role != domain.RoleManager {
		return nil, domain.ErrForbidden
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	// another manager's task is outside this actor's visibility: report it
	// as missing rather than confirming it exists
	if !auth.Can(actor, auth.ActionAssignTask, task) {
		return nil, domain.ErrTaskNotFound
	}

	executant, err := s.users.GetByID(ctx, executantID)
	if err != nil {
		return nil, err
	}
	if executant.Role != domain.RoleExecutant {
		return nil, fmt.Errorf("%w: user %d is not an executant", domain.ErrValidation, executantID)
	}

	if !task.Status.CanAdvanceTo(domain.TaskStatusPending) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.tasks.Assign(ctx, taskID, executantID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task assigned",
		"task_id", taskID,
		"assigned_to", executantID,
		"assigned_by", actor.ID,
	)

	return updated, nil
}

// Complete marks a PENDING task as COMPLETED. Only the current assignee may
// complete it.
func (s *TaskService) Complete(ctx context.Context, actor domain.Actor, taskID int64) (*domain.Task, error) {
	if actor.Role != domain.RoleExecutant {
		return nil, domain.ErrForbidden
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	// status before ownership: a task that is not PENDING has no meaningful
	// assignee to check against
	if !task.Status.CanAdvanceTo(domain.TaskStatusCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	if !auth.Can(actor, auth.ActionCompleteTask, task) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.tasks.Complete(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task completed",
		"task_id", taskID,
		"completed_by", actor.ID,
	)

	return updated, nil
}

// Close finishes the lifecycle of a COMPLETED task. Only the creating
// manager may close; CLOSED is terminal.
func (s *TaskService) Close(ctx context.Context, actor domain.Actor, taskID int64) (*domain.Task, error) {
	if actor.Role != domain.RoleManager {
		return nil, domain.ErrForbidden
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !auth.Can(actor, auth.ActionCloseTask, task) {
		return nil, domain.ErrTaskNotFound
	}

	if !task.Status.CanAdvanceTo(domain.TaskStatusClosed) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.tasks.Close(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task closed",
		"task_id", taskID,
		"closed_by", actor.ID,
	)

	return updated, nil
}

// List returns the tasks the actor is allowed to see: managers their own
// created tasks, executants their assigned tasks, admins none (the task
// surface is not admin-scoped). Most recently created first.
func (s *TaskService) List(ctx context.Context, actor domain.Actor) ([]*domain.Task, error) {
	if !auth.Can(actor, auth.ActionListTasks, nil) {
		return nil, domain.ErrForbidden
	}

	switch actor.Role {
	case domain.RoleManager:
		tasks, err := s.tasks.ListByCreator(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("list tasks by creator: %w", err)
		}
		return tasks, nil
	case domain.RoleExecutant:
		tasks, err := s.tasks.ListByAssignee(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("list tasks by assignee: %w", err)
		}
		return tasks, nil
	default:
		return []*domain.Task{}, nil
	}
}

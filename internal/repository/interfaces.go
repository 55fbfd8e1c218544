package repository

import (
	"context"

	"taskflow/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	ListByManager(ctx context.Context, managerID int64) ([]*domain.User, error)
	ExistsByRole(ctx context.Context, role domain.Role) (bool, error)
}

// TaskRepository persists tasks. The three transition methods are guarded:
// each only applies when the task is still in the expected prior status, so
// two racing actors cannot both advance the same task.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByCreator(ctx context.Context, managerID int64) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, executantID int64) ([]*domain.Task, error)
	Assign(ctx context.Context, taskID, executantID int64) (*domain.Task, error)
	Complete(ctx context.Context, taskID int64) (*domain.Task, error)
	Close(ctx context.Context, taskID int64) (*domain.Task, error)
}

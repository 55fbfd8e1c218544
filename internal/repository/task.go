package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
)

const taskColumns = `id, title, description, status, created_by, assigned_to,
	created_at, assigned_at, completed_at, closed_at`

type TaskRepo struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewTaskRepo(db *pgxpool.Pool, logger *logger.Logger) *TaskRepo {
	return &TaskRepo{
		db:     db,
		logger: logger.Component("repository/task"),
	}
}

func (r *TaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (title, description, status, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	created, err := r.scanOne(r.db.QueryRow(ctx, query,
		task.Title, task.Description, domain.TaskStatusOpen, task.CreatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return created, nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return task, nil
}

func (r *TaskRepo) ListByCreator(ctx context.Context, managerID int64) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, managerID)
}

func (r *TaskRepo) ListByAssignee(ctx context.Context, executantID int64) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE assigned_to = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, executantID)
}

// Assign moves an OPEN task to PENDING and records the assignee. The status
// guard in the WHERE clause makes the read-validate-write sequence atomic:
// a concurrent transition leaves zero rows and the caller sees
// ErrInvalidTransition instead of a silent overwrite.
func (r *TaskRepo) Assign(ctx context.Context, taskID, executantID int64) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET assigned_to = $1, status = $2, assigned_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING ` + taskColumns

	return r.transition(ctx, query,
		executantID, domain.TaskStatusPending, taskID, domain.TaskStatusOpen)
}

func (r *TaskRepo) Complete(ctx context.Context, taskID int64) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET status = $1, completed_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + taskColumns

	return r.transition(ctx, query,
		domain.TaskStatusCompleted, taskID, domain.TaskStatusPending)
}

func (r *TaskRepo) Close(ctx context.Context, taskID int64) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET status = $1, closed_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + taskColumns

	return r.transition(ctx, query,
		domain.TaskStatusClosed, taskID, domain.TaskStatusCompleted)
}

func (r *TaskRepo) transition(ctx context.Context, query string, args ...any) (*domain.Task, error) {
	task, err := r.scanOne(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// tasks are never deleted, so a missing row means the status
			// guard rejected the update
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("transition task: %w", err)
	}

	return task, nil
}

func (r *TaskRepo) scanOne(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedBy,
		&task.AssignedTo,
		&task.CreatedAt,
		&task.AssignedAt,
		&task.CompletedAt,
		&task.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedBy,
			&task.AssignedTo,
			&task.CreatedAt,
			&task.AssignedAt,
			&task.CompletedAt,
			&task.ClosedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return tasks, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
)

const uniqueViolation = "23505"

type UserRepo struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewUserRepo(db *pgxpool.Pool, logger *logger.Logger) *UserRepo {
	return &UserRepo{
		db:     db,
		logger: logger.Component("repository/user"),
	}
}

// Create inserts a new user. A duplicate email surfaces as ErrEmailExists
// via the unique index, which also closes the check-then-insert race.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, name, password_hash, role, manager_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, name, password_hash, role, manager_id, created_at
	`

	var created domain.User
	err := r.db.QueryRow(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.Role, user.ManagerID,
	).Scan(
		&created.ID,
		&created.Email,
		&created.Name,
		&created.PasswordHash,
		&created.Role,
		&created.ManagerID,
		&created.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, role, manager_id, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, role, manager_id, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepo) ListAll(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, role, manager_id, created_at
		FROM users
		ORDER BY id
	`
	return r.list(ctx, query)
}

// ListByManager returns the executants supervised by the given manager.
func (r *UserRepo) ListByManager(ctx context.Context, managerID int64) ([]*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, role, manager_id, created_at
		FROM users
		WHERE manager_id = $1
		ORDER BY id
	`
	return r.list(ctx, query, managerID)
}

func (r *UserRepo) ExistsByRole(ctx context.Context, role domain.Role) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`

	if err := r.db.QueryRow(ctx, query, role).Scan(&exists); err != nil {
		return false, fmt.Errorf("check role exists: %w", err)
	}

	return exists, nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&user.ManagerID,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.PasswordHash,
			&user.Role,
			&user.ManagerID,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return users, nil
}

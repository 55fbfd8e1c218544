package service

import (
	"context"
	"fmt"

	"taskflow/internal/auth"
	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
	"taskflow/internal/repository"
)

type UserService struct {
	users  repository.UserRepository
	logger *logger.Logger
}

func NewUserService(users repository.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger.Component("service/user"),
	}
}

// List returns the users visible to the actor: everyone for admins, only
// supervised executants for managers. Executants have no user surface.
// Password digests are stripped before the records leave the service.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if !auth.Can(actor, auth.ActionListUsers, nil) {
		return nil, domain.ErrForbidden
	}

	var (
		users []*domain.User
		err   error
	)
	switch actor.Role {
	case domain.RoleAdmin:
		users, err = s.users.ListAll(ctx)
	default:
		users, err = s.users.ListByManager(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	for _, u := range users {
		u.PasswordHash = ""
	}

	return users, nil
}

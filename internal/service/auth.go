package service

import (
	"context"
	"errors"
	"fmt"

	. "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"taskflow/internal/auth"
	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
	"taskflow/internal/pkg/password"
	"taskflow/internal/pkg/token"
	"taskflow/internal/repository"
)

type AuthService struct {
	users  repository.UserRepository
	hasher *password.Hasher
	tokens *token.Manager
	logger *logger.Logger
}

func NewAuthService(
	users repository.UserRepository,
	hasher *password.Hasher,
	tokens *token.Manager,
	logger *logger.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.Component("service/auth"),
	}
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password both return ErrInvalidCredentials so callers cannot probe
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, secret string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user by email: %w", err)
	}

	if !s.hasher.Verify(secret, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(domain.Actor{ID: user.ID, Role: user.Role})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in",
		"user_id", user.ID,
		"role", user.Role,
	)

	return signed, user, nil
}

type RegisterInput struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	ManagerID *int64      `json:"manager_id,omitempty"`
}

func (i RegisterInput) validate() error {
	return ValidateStruct(&i,
		Field(&i.Email, Required, is.Email, Length(1, 255)),
		Field(&i.Password, Required, Length(6, 72)),
		Field(&i.Name, Required, Length(1, 255)),
		Field(&i.Role, Required, In(domain.RoleAdmin, domain.RoleManager, domain.RoleExecutant)),
	)
}

// Register creates an account. Only admins provision accounts; there is no
// self-registration path.
func (s *AuthService) Register(ctx context.Context, actor domain.Actor, input RegisterInput) (*domain.User, error) {
	if !auth.Can(actor, auth.ActionCreateUser, nil) {
		return nil, domain.ErrForbidden
	}

	if err := input.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	// executants require a supervising manager, other roles must not name one
	user, err := domain.NewUser(input.Email, input.Name, "", input.Role, input.ManagerID)
	if err != nil {
		return nil, err
	}

	if input.ManagerID != nil {
		manager, err := s.users.GetByID(ctx, *input.ManagerID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, fmt.Errorf("%w: manager %d does not exist", domain.ErrValidation, *input.ManagerID)
			}
			return nil, fmt.Errorf("get manager: %w", err)
		}
		if manager.Role != domain.RoleManager {
			return nil, fmt.Errorf("%w: user %d is not a manager", domain.ErrValidation, *input.ManagerID)
		}
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = digest

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", created.ID,
		"role", created.Role,
		"created_by", actor.ID,
	)

	return created, nil
}

// EnsureAdmin creates the default admin account if no admin exists yet.
// It is idempotent and safe to run on every startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, name, secret string) error {
	exists, err := s.users.ExistsByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		return nil
	}

	digest, err := s.hasher.Hash(secret)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin, err := domain.NewUser(email, name, digest, domain.RoleAdmin, nil)
	if err != nil {
		return err
	}

	created, err := s.users.Create(ctx, admin)
	if err != nil {
		// two instances racing on first start is fine, one of them wins
		if errors.Is(err, domain.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("default admin created", "user_id", created.ID, "email", email)
	return nil
}

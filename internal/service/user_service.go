package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/platform/logger"
	"github.com/contactdesk/contacts-api/internal/service/auth"
	"github.com/contactdesk/contacts-api/internal/store"
)

// RegisterInput carries the validated fields of a registration request.
type RegisterInput struct {
	Username string
	Password string
	Name     string
}

// LoginInput carries the validated fields of a login request.
type LoginInput struct {
	Username string
	Password string
}

// UpdateUserInput carries the fields of a profile update.
// Nil pointer fields are left unchanged.
type UpdateUserInput struct {
	Password *string
	Name     *string
}

// UserService implements registration, login and profile management.
type UserService struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (*UserService, error) {
	if userStore == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &UserService{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		logger:     logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register creates a new user account.
// Returns store.ErrUsernameExists if the username is already taken.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(input.Username, input.Name, hashed)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and issues a bearer token.
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.hasher.Compare(user.HashedPassword, input.Password); err != nil {
		log.Debug("password mismatch during login",
			slog.String("username", input.Username))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Get returns the user with the given username.
// Returns store.ErrUserNotFound if it no longer exists.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.userStore.GetByUsername(ctx, username)
}

// Update applies a partial profile update to the authenticated user.
// Only the supplied fields are changed; a new password is hashed before
// storage. Returns store.ErrUserNotFound if the user vanished.
func (s *UserService) Update(ctx context.Context, username string, input UpdateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Logout confirms the user still exists. Tokens are stateless and simply
// expire; there is no server-side session to tear down.
// Returns store.ErrUserNotFound if the user vanished.
func (s *UserService) Logout(ctx context.Context, username string) error {
	_, err := s.userStore.GetByUsername(ctx, username)
	return err
}

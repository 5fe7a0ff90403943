// Package service contains the business logic for the Globetrotter API.
// Services validate inputs, enforce ownership via the auth gate, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/auth"
	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/repo"
)

// TokenIssuer is the capability UserService needs from the token manager.
type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}

// UserService implements registration, login, and profile management.
type UserService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewUserService constructs a UserService backed by the provided repo and
// token issuer.
func NewUserService(users repo.UserRepo, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Register creates a new account with the "user" role and returns the user
// plus a signed bearer token. Returns domain.ErrConflict when the email is
// already registered (the unique index is the arbiter, so two racing
// registrations cannot both win).
func (s *UserService) Register(ctx context.Context, email, password, name string) (domain.User, string, error) {
	if err := validateEmail(email); err != nil {
		return domain.User{}, "", err
	}
	if len(password) < 8 {
		return domain.User{}, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return domain.User{}, "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Register: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Register: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a fresh bearer token.
// An unknown email and a wrong password both surface as the same
// domain.ErrUnauthenticated, so the endpoint cannot be used to probe which
// emails are registered.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: invalid credentials: %w", domain.ErrUnauthenticated)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: invalid credentials: %w", domain.ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	return user, token, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a sparse patch to the caller's own profile.
// Present-but-empty fields are rejected; a patch can change values but never
// blank them.
func (s *UserService) UpdateProfile(ctx context.Context, callerID uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.User{}, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return domain.User{}, err
		}
		normalized := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &normalized
	}

	user, err := s.users.Update(ctx, callerID, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return user, nil
}

// validateEmail rejects anything net/mail cannot parse as a bare address.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return fmt.Errorf("%w: valid email is required", domain.ErrValidation)
	}
	return nil
}

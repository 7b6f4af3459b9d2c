package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"

	"github.com/devgear/devgear-go/internal/crypto"
	"github.com/devgear/devgear-go/internal/model"
	"github.com/devgear/devgear-go/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles signup and login business logic.
type AuthService struct {
	users *repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Signup validates the form, hashes the password and creates the user.
// The returned user never carries the password hash.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if len(req.Name) < 2 {
		return nil, validationError("Name must be at least 2 characters")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, validationError("Invalid email address")
	}
	if len(req.Password) < 6 {
		return nil, validationError("Password must be at least 6 characters")
	}
	if req.Password != req.ConfirmPassword {
		return nil, validationError("Passwords don't match")
	}

	// Hashing is CPU-bound; it runs before any database work so no pooled
	// connection is held during the computation.
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, infrastructureError(err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, conflictError("A user with this email already exists")
		}
		return nil, infrastructureError(err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login validates the form and authenticates the user. Unknown email and
// wrong password return the same error so the response leaks nothing.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, validationError("Invalid email address")
	}
	if len(req.Password) < 6 {
		return nil, validationError("Password must be at least 6 characters")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, authenticationError()
		}
		return nil, infrastructureError(err)
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, authenticationError()
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUser hydrates a user from a session userId.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, infrastructureError(err)
	}
	return user, nil
}

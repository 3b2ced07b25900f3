package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/docuvault/docuvault/internal/models"
	"github.com/docuvault/docuvault/internal/roles"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service encapsulates user registration and credential checks.
type Service struct {
	repo  Repository
	roles roles.Repository
}

func NewService(repo Repository, roleRepo roles.Repository) *Service {
	return &Service{repo: repo, roles: roleRepo}
}

// Register validates the referenced role, enforces username uniqueness and
// stores the user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, email, password, roleID string) (*models.User, error) {
	role, err := s.roles.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     roleID,
	}
	if _, err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks a username/password pair and returns the user on
// success. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns the user with the given id, or (nil, nil) when absent.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.Get(ctx, id)
}

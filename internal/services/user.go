package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/ratingly/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, username, passwordHash string) (types.User, error)
	List(ctx context.Context) ([]types.UserSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *UserService) Create(ctx context.Context, username, passwordHash string) (types.User, error) {
	return s.repo.Create(ctx, username, passwordHash)
}

func (s *UserService) List(ctx context.Context) ([]types.UserSummary, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

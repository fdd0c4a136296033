package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/ratingly/apiserver/types"
)

// ItemRepository defines persistence operations for catalog items.
type ItemRepository interface {
	List(ctx context.Context) ([]types.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (types.Item, error)
	Create(ctx context.Context, name, description string) (types.Item, error)
}

// ItemService encapsulates catalog use-cases.
type ItemService struct {
	repo ItemRepository
}

func NewItemService(repo ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) List(ctx context.Context) ([]types.Item, error) {
	return s.repo.List(ctx)
}

func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (types.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ItemService) Create(ctx context.Context, name, description string) (types.Item, error) {
	return s.repo.Create(ctx, name, description)
}

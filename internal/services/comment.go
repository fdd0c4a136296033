package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ratingly/apiserver/internal/store"
	"github.com/ratingly/apiserver/types"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, userID, reviewID uuid.UUID, text string) (types.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (types.Comment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Comment, error)
	Update(ctx context.Context, userID, commentID uuid.UUID, text string) (types.Comment, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
}

// CommentService encapsulates comment use-cases. Any user may comment
// on any review; edits and deletes are owner-only.
type CommentService struct {
	repo CommentRepository
}

func NewCommentService(repo CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) Create(ctx context.Context, userID, reviewID uuid.UUID, text string) (types.Comment, error) {
	return s.repo.Create(ctx, userID, reviewID, text)
}

func (s *CommentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Comment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CommentService) Update(ctx context.Context, userID, commentID uuid.UUID, text string) (types.Comment, error) {
	comment, err := s.repo.Update(ctx, userID, commentID, text)
	if err == nil {
		return comment, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return types.Comment{}, err
	}
	return types.Comment{}, s.disambiguate(ctx, commentID)
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	err := s.repo.Delete(ctx, userID, commentID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return s.disambiguate(ctx, commentID)
}

func (s *CommentService) disambiguate(ctx context.Context, commentID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, commentID); err == nil {
		return ErrForbidden
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return store.ErrNotFound
}

package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ratingly/apiserver/internal/store"
	"github.com/ratingly/apiserver/types"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, userID, itemID uuid.UUID, rating int, text string) (types.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (types.Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Review, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]types.Review, error)
	Update(ctx context.Context, userID, reviewID uuid.UUID, rating int, text string) (types.Review, error)
	Delete(ctx context.Context, userID, reviewID uuid.UUID) error
}

// ReviewService encapsulates review use-cases, including the
// ownership policy for mutations.
type ReviewService struct {
	repo ReviewRepository
}

func NewReviewService(repo ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

func (s *ReviewService) Create(ctx context.Context, userID, itemID uuid.UUID, rating int, text string) (types.Review, error) {
	return s.repo.Create(ctx, userID, itemID, rating, text)
}

func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (types.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Review, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ReviewService) ListByItem(ctx context.Context, itemID uuid.UUID) ([]types.Review, error) {
	return s.repo.ListByItem(ctx, itemID)
}

// Update edits the caller's review. When the scoped update matches no
// row, an unscoped lookup disambiguates a missing review from one
// owned by somebody else.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uuid.UUID, rating int, text string) (types.Review, error) {
	review, err := s.repo.Update(ctx, userID, reviewID, rating, text)
	if err == nil {
		return review, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return types.Review{}, err
	}
	return types.Review{}, s.disambiguate(ctx, reviewID)
}

// Delete removes the caller's review, with the same disambiguation
// as Update.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	err := s.repo.Delete(ctx, userID, reviewID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return s.disambiguate(ctx, reviewID)
}

func (s *ReviewService) disambiguate(ctx context.Context, reviewID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, reviewID); err == nil {
		return ErrForbidden
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return store.ErrNotFound
}

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ratingly/apiserver/types"
)

// ReviewRepository handles persistence for reviews. Mutations are
// scoped to the owning user in the WHERE clause so a non-owner can
// never touch another user's row.
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, userID, itemID uuid.UUID, rating int, text string) (types.Review, error) {
	const query = `
		INSERT INTO reviews (user_id, item_id, rating, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	review := types.Review{
		UserID: userID,
		ItemID: itemID,
		Rating: rating,
		Text:   text,
	}
	if err := r.db.QueryRowContext(ctx, query, userID, itemID, rating, text).Scan(
		&review.ID,
		&review.CreatedAt,
	); err != nil {
		return types.Review{}, constraintError(err)
	}
	return review, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (types.Review, error) {
	const query = `
		SELECT id, user_id, item_id, rating, text, created_at
		FROM reviews
		WHERE id = $1`
	var review types.Review
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.ItemID,
		&review.Rating,
		&review.Text,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Review{}, ErrNotFound
		}
		return types.Review{}, err
	}
	return review, nil
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Review, error) {
	const query = `
		SELECT id, user_id, item_id, rating, text, created_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]types.Review, 0)
	for rows.Next() {
		var review types.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ItemID,
			&review.Rating,
			&review.Text,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByItem returns an item's reviews joined with the reviewer's
// username for display.
func (r *ReviewRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]types.Review, error) {
	const query = `
		SELECT reviews.id, reviews.user_id, reviews.item_id, reviews.rating,
			reviews.text, reviews.created_at, users.username
		FROM reviews
		JOIN users ON reviews.user_id = users.id
		WHERE reviews.item_id = $1
		ORDER BY reviews.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]types.Review, 0)
	for rows.Next() {
		var review types.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ItemID,
			&review.Rating,
			&review.Text,
			&review.CreatedAt,
			&review.Username,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Update rewrites the rating and text and refreshes created_at, but
// only on the caller's own row. Zero rows matched surfaces ErrNotFound;
// the service layer decides whether that means absent or not owned.
func (r *ReviewRepository) Update(ctx context.Context, userID, reviewID uuid.UUID, rating int, text string) (types.Review, error) {
	const query = `
		UPDATE reviews
		SET rating = $3, text = $4, created_at = now()
		WHERE id = $2 AND user_id = $1
		RETURNING id, user_id, item_id, rating, text, created_at`
	var review types.Review
	err := r.db.QueryRowContext(ctx, query, userID, reviewID, rating, text).Scan(
		&review.ID,
		&review.UserID,
		&review.ItemID,
		&review.Rating,
		&review.Text,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Review{}, ErrNotFound
		}
		return types.Review{}, constraintError(err)
	}
	return review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	const query = `
		DELETE FROM reviews
		WHERE id = $2 AND user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID, reviewID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

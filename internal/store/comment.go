package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ratingly/apiserver/types"
)

// CommentRepository handles persistence for comments on reviews.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, userID, reviewID uuid.UUID, text string) (types.Comment, error) {
	const query = `
		INSERT INTO comments (user_id, review_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	comment := types.Comment{
		UserID:   userID,
		ReviewID: reviewID,
		Text:     text,
	}
	if err := r.db.QueryRowContext(ctx, query, userID, reviewID, text).Scan(
		&comment.ID,
		&comment.CreatedAt,
	); err != nil {
		return types.Comment{}, constraintError(err)
	}
	return comment, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (types.Comment, error) {
	const query = `
		SELECT id, user_id, review_id, text, created_at
		FROM comments
		WHERE id = $1`
	var comment types.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.ReviewID,
		&comment.Text,
		&comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Comment{}, ErrNotFound
		}
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Comment, error) {
	const query = `
		SELECT id, user_id, review_id, text, created_at
		FROM comments
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]types.Comment, 0)
	for rows.Next() {
		var comment types.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.ReviewID,
			&comment.Text,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, userID, commentID uuid.UUID, text string) (types.Comment, error) {
	const query = `
		UPDATE comments
		SET text = $3, created_at = now()
		WHERE id = $2 AND user_id = $1
		RETURNING id, user_id, review_id, text, created_at`
	var comment types.Comment
	err := r.db.QueryRowContext(ctx, query, userID, commentID, text).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.ReviewID,
		&comment.Text,
		&comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Comment{}, ErrNotFound
		}
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	const query = `
		DELETE FROM comments
		WHERE id = $2 AND user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID, commentID)
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

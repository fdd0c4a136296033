package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateReview is returned when a user already has a review
// for the target item (unique_user_item_review).
var ErrDuplicateReview = errors.New("duplicate review")

// ErrDuplicateUsername is returned when the username is already taken.
var ErrDuplicateUsername = errors.New("duplicate username")

// ErrInvalidRating is returned when a rating falls outside 1..5
// (rejected by the table CHECK constraint).
var ErrInvalidRating = errors.New("invalid rating")

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"

	reviewUniqueConstraint = "unique_user_item_review"
	usernameConstraint     = "users_username_key"
)

// constraintError maps Postgres constraint failures onto sentinel errors.
// Foreign key failures surface as ErrNotFound: the referenced parent row
// does not exist.
func constraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case reviewUniqueConstraint:
			return ErrDuplicateReview
		case usernameConstraint:
			return ErrDuplicateUsername
		}
		return err
	case pqCheckViolation:
		return ErrInvalidRating
	case pqForeignKeyViolation:
		return ErrNotFound
	default:
		return err
	}
}

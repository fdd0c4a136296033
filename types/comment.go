package types

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply a user leaves on any review.
type Comment struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	ReviewID uuid.UUID `json:"review_id" db:"review_id"`
	Text     string    `json:"text" db:"text"`

	// CreatedAt is refreshed whenever the owner edits the comment.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package types

import (
	"time"

	"github.com/google/uuid"
)

// Review is a star rating with text that a user leaves on an item.
type Review struct {
	// ID is the unique identifier of the review.
	ID uuid.UUID `json:"id" db:"id"`

	// UserID is the author of the review. Each user may review a
	// given item at most once, enforced by a database constraint.
	UserID uuid.UUID `json:"user_id" db:"user_id"`

	// ItemID is the catalog item the review targets.
	ItemID uuid.UUID `json:"item_id" db:"item_id"`

	// Rating is an integer star rating between 1 and 5 inclusive.
	Rating int `json:"rating" db:"rating"`

	// Text is the body of the review.
	Text string `json:"text" db:"text"`

	// CreatedAt is set on insert and refreshed whenever the owner
	// edits the review.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Username is the author's username, populated only by the
	// per-item listing which joins against users.
	Username string `json:"username,omitempty" db:"username"`
}

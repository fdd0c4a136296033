package types

import (
	"time"

	"github.com/google/uuid"
)

// Item is a catalog entry that users can review. Items are created
// by the seed command only; there is no public mutation endpoint.
type Item struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`

	// AvgRating is computed from the item's reviews at read time.
	AvgRating float64 `json:"avg_rating" db:"avg_rating"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

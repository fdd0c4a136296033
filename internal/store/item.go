package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ratingly/apiserver/types"
)

// ItemRepository handles persistence for catalog items. The average
// rating is derived from reviews on every read rather than stored.
type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context) ([]types.Item, error) {
	const query = `
		SELECT items.id, items.name, items.description,
			COALESCE(AVG(reviews.rating), 0) AS avg_rating,
			items.created_at
		FROM items
		LEFT JOIN reviews ON reviews.item_id = items.id
		GROUP BY items.id
		ORDER BY items.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.Item, 0)
	for rows.Next() {
		var item types.Item
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.AvgRating,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (types.Item, error) {
	const query = `
		SELECT items.id, items.name, items.description,
			COALESCE(AVG(reviews.rating), 0) AS avg_rating,
			items.created_at
		FROM items
		LEFT JOIN reviews ON reviews.item_id = items.id
		WHERE items.id = $1
		GROUP BY items.id`
	var item types.Item
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.AvgRating,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Item{}, ErrNotFound
		}
		return types.Item{}, err
	}
	return item, nil
}

// Create is used by the seed command only; items have no public
// mutation endpoints.
func (r *ItemRepository) Create(ctx context.Context, name, description string) (types.Item, error) {
	const query = `
		INSERT INTO items (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at`
	item := types.Item{
		Name:        name,
		Description: description,
	}
	if err := r.db.QueryRowContext(ctx, query, name, description).Scan(
		&item.ID,
		&item.CreatedAt,
	); err != nil {
		return types.Item{}, err
	}
	return item, nil
}

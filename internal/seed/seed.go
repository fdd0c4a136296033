// Package seed loads the demo data set: four users, three catalog
// items, a review on each item, and a comment on each review.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ratingly/apiserver/internal/store"
	"github.com/ratingly/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username string
	password string
}

var seedUsers = []seedUser{
	{"moe", "moe_pw"},
	{"lucy", "lucy_pw"},
	{"larry", "larry_pw"},
	{"ethyl", "ethyl_pw"},
}

type seedItem struct {
	name        string
	description string
}

var seedItems = []seedItem{
	{"The Great Gatsby", "A classic novel by F. Scott Fitzgerald."},
	{"Nike Running Shoes", "Lightweight and comfortable running shoes."},
	{"Pasta Palace", "A family-owned Italian restaurant."},
}

// Run inserts the demo data through the regular repositories.
// It expects migrated, empty tables.
func Run(ctx context.Context, dbConn *sql.DB) error {
	userRepo := store.NewUserRepository(dbConn)
	itemRepo := store.NewItemRepository(dbConn)
	reviewRepo := store.NewReviewRepository(dbConn)
	commentRepo := store.NewCommentRepository(dbConn)

	users := make([]types.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.username, err)
		}
		user, err := userRepo.Create(ctx, su.username, string(hashed))
		if err != nil {
			return fmt.Errorf("create user %s: %w", su.username, err)
		}
		users = append(users, user)
	}

	items := make([]types.Item, 0, len(seedItems))
	for _, si := range seedItems {
		item, err := itemRepo.Create(ctx, si.name, si.description)
		if err != nil {
			return fmt.Errorf("create item %s: %w", si.name, err)
		}
		items = append(items, item)
	}

	moe, lucy, larry, ethyl := users[0], users[1], users[2], users[3]
	gatsby, shoes, pasta := items[0], items[1], items[2]

	review1, err := reviewRepo.Create(ctx, moe.ID, gatsby.ID, 5, "An absolute masterpiece!")
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	review2, err := reviewRepo.Create(ctx, lucy.ID, shoes.ID, 4, "Great comfort and style.")
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	review3, err := reviewRepo.Create(ctx, larry.ID, pasta.ID, 3, "Decent pasta, but a bit pricey.")
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	if _, err := commentRepo.Create(ctx, lucy.ID, review1.ID, "Totally agree!"); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	if _, err := commentRepo.Create(ctx, larry.ID, review2.ID, "Thanks for the review, I might buy these shoes now."); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	if _, err := commentRepo.Create(ctx, ethyl.ID, review3.ID, "I had a similar experience at this restaurant."); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

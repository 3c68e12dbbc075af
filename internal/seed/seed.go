// Package seed loads the starter collections into empty stores.
package seed

import (
	"context"
	"fmt"

	"github.com/bookcook/api/internal/auth"
	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/store"
	"github.com/rs/zerolog/log"
)

// Recipes returns the starter cookbook.
func Recipes() []models.Recipe {
	return []models.Recipe{
		{ID: 1, Name: "Pancakes", Ingredients: []string{"flour", "milk", "eggs"}},
		{ID: 2, Name: "Spaghetti Carbonara", Ingredients: []string{"spaghetti", "eggs", "pecorino", "guanciale"}},
		{ID: 3, Name: "Classic Beef Tacos", Ingredients: []string{"ground beef", "taco shells", "lettuce", "cheese"}},
	}
}

// Books returns the starter shelf.
func Books() []models.Book {
	return []models.Book{
		{ID: 1, Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien"},
		{ID: 2, Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling"},
		{ID: 3, Title: "The Catcher in the Rye", Author: "J.D. Salinger"},
		{ID: 4, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald"},
		{ID: 5, Title: "To Kill a Mockingbird", Author: "Harper Lee"},
	}
}

// Account is a starter user before its password is hashed.
type Account struct {
	Email             string
	Password          string
	SecurityQuestions []models.SecurityQuestion
}

// Accounts returns the starter users.
func Accounts() []Account {
	return []Account{
		{
			Email:    "harry@hogwarts.edu",
			Password: "potter",
			SecurityQuestions: []models.SecurityQuestion{
				{Answer: "Fluffy"}, {Answer: "Quidditch Through the Ages"}, {Answer: "Evans"},
			},
		},
		{
			Email:    "hermione@hogwarts.edu",
			Password: "granger",
			SecurityQuestions: []models.SecurityQuestion{
				{Answer: "Crookshanks"}, {Answer: "Hogwarts: A History"}, {Answer: "Wilkins"},
			},
		},
	}
}

// Load inserts the starter records into every collection that is still empty.
func Load(ctx context.Context, recipes store.Recipes, books store.Books, users store.Users, hasher *auth.Hasher) error {
	if err := fill(ctx, "recipes", recipes, static(Recipes)); err != nil {
		return err
	}
	if err := fill(ctx, "books", books, static(Books)); err != nil {
		return err
	}

	// Users are only hashed when the collection actually needs seeding.
	return fill(ctx, "users", users, func() ([]models.User, error) {
		accounts := Accounts()
		out := make([]models.User, 0, len(accounts))
		for _, a := range accounts {
			hash, err := hasher.Hash(a.Password)
			if err != nil {
				return nil, err
			}
			out = append(out, models.User{Email: a.Email, PasswordHash: hash, SecurityQuestions: a.SecurityQuestions})
		}
		return out, nil
	})
}

func static[T any](items func() []T) func() ([]T, error) {
	return func() ([]T, error) { return items(), nil }
}

func fill[K comparable, T any](ctx context.Context, name string, s store.Store[K, T], items func() ([]T, error)) error {
	existing, err := s.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", name, err)
	}
	if len(existing) > 0 {
		log.Debug().Str("collection", name).Int("records", len(existing)).Msg("Collection not empty, skipping seed")
		return nil
	}
	seeded, err := items()
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", name, err)
	}
	for _, item := range seeded {
		if err := s.Insert(ctx, item); err != nil {
			return fmt.Errorf("failed to seed %s: %w", name, err)
		}
	}
	log.Info().Str("collection", name).Int("records", len(seeded)).Msg("Seeded collection")
	return nil
}

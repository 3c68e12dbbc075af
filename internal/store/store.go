// Package store defines the collection storage contract shared by the
// in-memory collections and the SQLite-backed repositories.
package store

import (
	"context"
	"errors"

	"github.com/bookcook/api/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the requested key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert reuses an existing key.
	ErrDuplicate = errors.New("duplicate key")
)

// Store is an ordered collection of records of type T keyed by K.
// Update replaces the whole record; it never patches individual fields.
type Store[K comparable, T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindOne(ctx context.Context, key K) (T, error)
	Insert(ctx context.Context, item T) error
	Update(ctx context.Context, key K, item T) error
	Delete(ctx context.Context, key K) error
}

// EventLog is an append-only log of activity events.
type EventLog interface {
	Append(ctx context.Context, event models.Event) error
	// Recent returns at most limit events, newest first.
	Recent(ctx context.Context, limit int) ([]models.Event, error)
	// Prune drops everything but the newest keep events and reports how many were removed.
	Prune(ctx context.Context, keep int) (int, error)
}

// Typed collections used across the services.
type (
	Recipes = Store[int, models.Recipe]
	Books   = Store[int, models.Book]
	Users   = Store[string, models.User]
)

// RecipeKey, BookKey and UserKey extract the primary key of each entity.
func RecipeKey(r models.Recipe) int { return r.ID }
func BookKey(b models.Book) int { return b.ID }
func UserKey(u models.User) string { return u.Email }

package services

import (
	"errors"
	"fmt"

	"github.com/bookcook/api/internal/store"
)

// ErrUnauthorized is returned when a password or security answer does not match.
var ErrUnauthorized = errors.New("unauthorized")

// NotFoundError reports a lookup miss for a named entity.
type NotFoundError struct {
	Entity string // e.g. "Recipe", "Book", "User"
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return store.ErrNotFound
}

// notFound converts store.ErrNotFound into a NotFoundError and passes anything else through.
func notFound(err error, entity string, key any) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: entity, Key: key}
	}
	return err
}

package models

import "time"

// Event represents a recorded action against one of the collections.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "book.create", "user.login"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	Subject   string    `json:"subject,omitempty"` // e.g., "book:6", "user:harry@hogwarts.edu"
	CreatedAt time.Time `json:"createdAt"`
}

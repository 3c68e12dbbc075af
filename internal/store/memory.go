package store

import (
	"context"
	"slices"
	"sync"

	"github.com/bookcook/api/internal/models"
)

// Memory is an in-memory Store backed by a slice in insertion order.
type Memory[K comparable, T any] struct {
	mu    sync.RWMutex
	items []T
	key   func(T) K
}

// NewMemory creates a Memory store that identifies records with key.
func NewMemory[K comparable, T any](key func(T) K, seed ...T) *Memory[K, T] {
	return &Memory[K, T]{
		items: slices.Clone(seed),
		key:   key,
	}
}

// FindAll returns a copy of every record in insertion order.
func (m *Memory[K, T]) FindAll(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out, nil
}

// FindOne returns the record stored under key.
func (m *Memory[K, T]) FindOne(ctx context.Context, key K) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(key); i >= 0 {
		return m.items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Insert appends item unless its key is already taken.
func (m *Memory[K, T]) Insert(ctx context.Context, item T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(m.key(item)) >= 0 {
		return ErrDuplicate
	}
	m.items = append(m.items, item)
	return nil
}

// Update replaces the record stored under key in place.
func (m *Memory[K, T]) Update(ctx context.Context, key K, item T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(key)
	if i < 0 {
		return ErrNotFound
	}
	if newKey := m.key(item); newKey != key && m.indexOf(newKey) >= 0 {
		return ErrDuplicate
	}
	m.items[i] = item
	return nil
}

// Delete removes the record stored under key.
func (m *Memory[K, T]) Delete(ctx context.Context, key K) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(key)
	if i < 0 {
		return ErrNotFound
	}
	m.items = slices.Delete(m.items, i, i+1)
	return nil
}

func (m *Memory[K, T]) indexOf(key K) int {
	return slices.IndexFunc(m.items, func(item T) bool { return m.key(item) == key })
}

// NewMemoryRecipes, NewMemoryBooks and NewMemoryUsers build the typed collections.
func NewMemoryRecipes(seed ...models.Recipe) *Memory[int, models.Recipe] {
	return NewMemory(RecipeKey, seed...)
}

func NewMemoryBooks(seed ...models.Book) *Memory[int, models.Book] {
	return NewMemory(BookKey, seed...)
}

func NewMemoryUsers(seed ...models.User) *Memory[string, models.User] {
	return NewMemory(UserKey, seed...)
}

// MemoryEventLog keeps events in a slice, oldest first.
type MemoryEventLog struct {
	mu     sync.RWMutex
	events []models.Event
}

// NewMemoryEventLog creates an empty MemoryEventLog.
func NewMemoryEventLog() *MemoryEventLog {
	return &MemoryEventLog{}
}

// Append adds an event to the end of the log.
func (l *MemoryEventLog) Append(ctx context.Context, event models.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

// Recent returns at most limit events, newest first.
func (l *MemoryEventLog) Recent(ctx context.Context, limit int) ([]models.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := max(min(limit, len(l.events)), 0)
	out := make([]models.Event, 0, n)
	for i := len(l.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.events[i])
	}
	return out, nil
}

// Prune keeps only the newest keep events.
func (l *MemoryEventLog) Prune(ctx context.Context, keep int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if keep < 0 {
		keep = 0
	}
	removed := len(l.events) - keep
	if removed <= 0 {
		return 0, nil
	}
	l.events = slices.Clone(l.events[removed:])
	return removed, nil
}

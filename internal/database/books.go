package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/store"
)

// BookStore is a store.Books backed by the books table.
type BookStore struct {
	db *sql.DB
}

// NewBookStore creates a new BookStore.
func NewBookStore(db *sql.DB) *BookStore {
	return &BookStore{db: db}
}

func scanBook(row scanner) (models.Book, error) {
	var book models.Book
	err := row.Scan(&book.ID, &book.Title, &book.Author)
	return book, err
}

// FindAll retrieves all books ordered by ID.
func (s *BookStore) FindAll(ctx context.Context) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, author FROM books ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// FindOne retrieves a single book by its ID.
func (s *BookStore) FindOne(ctx context.Context, id int) (models.Book, error) {
	book, err := scanBook(s.db.QueryRowContext(ctx, "SELECT id, title, author FROM books WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, store.ErrNotFound
	}
	return book, err
}

// Insert adds a new book.
func (s *BookStore) Insert(ctx context.Context, book models.Book) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO books (id, title, author) VALUES (?, ?, ?)", book.ID, book.Title, book.Author)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return err
}

// Update replaces the book stored under id.
func (s *BookStore) Update(ctx context.Context, id int, book models.Book) error {
	res, err := s.db.ExecContext(ctx, "UPDATE books SET id = ?, title = ?, author = ? WHERE id = ?",
		book.ID, book.Title, book.Author, id)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return err
	}
	return affectedOne(res)
}

// Delete removes a book.
func (s *BookStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOne(res)
}

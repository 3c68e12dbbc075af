package services

import (
	"context"
	"fmt"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/store"
)

// BookServiceProvider defines the interface for book services.
type BookServiceProvider interface {
	GetAllBooks(ctx context.Context) ([]models.Book, error)
	GetBookByID(ctx context.Context, id int) (models.Book, error)
	CreateBook(ctx context.Context, book models.Book) (models.Book, error)
	UpdateBook(ctx context.Context, id int, book models.Book) error
	DeleteBook(ctx context.Context, id int) error
}

// BookService provides business logic for the in-n-out-books shelf.
type BookService struct {
	books  store.Books
	events EventServiceProvider
}

// NewBookService creates a new BookService.
func NewBookService(books store.Books, events EventServiceProvider) *BookService {
	return &BookService{books: books, events: events}
}

// GetAllBooks retrieves every book.
func (s *BookService) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.books.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

// GetBookByID retrieves a single book.
func (s *BookService) GetBookByID(ctx context.Context, id int) (models.Book, error) {
	book, err := s.books.FindOne(ctx, id)
	if err != nil {
		return models.Book{}, notFound(err, "Book", id)
	}
	return book, nil
}

// CreateBook inserts a book under its caller-supplied ID.
func (s *BookService) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	if err := s.books.Insert(ctx, book); err != nil {
		return models.Book{}, fmt.Errorf("failed to create book %d: %w", book.ID, err)
	}
	record(ctx, s.events, "book.create", fmt.Sprintf("Book '%s' created.", book.Title), fmt.Sprintf("book:%d", book.ID))
	return book, nil
}

// UpdateBook replaces the book stored under id.
func (s *BookService) UpdateBook(ctx context.Context, id int, book models.Book) error {
	book.ID = id
	if err := s.books.Update(ctx, id, book); err != nil {
		return notFound(err, "Book", id)
	}
	record(ctx, s.events, "book.update", fmt.Sprintf("Book '%s' updated.", book.Title), fmt.Sprintf("book:%d", id))
	return nil
}

// DeleteBook removes a book.
func (s *BookService) DeleteBook(ctx context.Context, id int) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return notFound(err, "Book", id)
	}
	record(ctx, s.events, "book.delete", fmt.Sprintf("Book %d deleted.", id), fmt.Sprintf("book:%d", id))
	return nil
}

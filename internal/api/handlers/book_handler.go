package handlers

import (
	"net/http"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/services"
	"github.com/bookcook/api/internal/validate"
	"github.com/go-chi/chi/v5"
)

// BookHandler handles HTTP requests related to books.
type BookHandler struct {
	service services.BookServiceProvider
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service services.BookServiceProvider) *BookHandler {
	return &BookHandler{service: service}
}

// GetAll handles the request to get all books.
func (h *BookHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetAllBooks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// Get handles the request to get a single book by its ID.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	book, err := h.service.GetBookByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// Create handles the request to add a book.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookRequest
	if err := validate.DecodeShape(r.Body, &req, models.CreateBookKeys...); err != nil {
		writeError(w, r, err)
		return
	}

	book, err := h.service.CreateBook(r.Context(), models.Book{ID: *req.ID, Title: req.Title, Author: req.Author})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": book.ID})
}

// Update handles the request to replace an existing book.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateBookRequest
	if err := validate.DecodeShape(r.Body, &req, models.UpdateBookKeys...); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.UpdateBook(r.Context(), id, models.Book{Title: req.Title, Author: req.Author}); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles the request to remove a book.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeleteBook(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

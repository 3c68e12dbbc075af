package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/services"
	"github.com/bookcook/api/internal/validate"
	"github.com/go-chi/chi/v5"
)

// UserHandler handles HTTP requests for registration and credential checks.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

type messageResponse struct {
	Message string `json:"message"`
}

type registerResponse struct {
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

// emailParam returns the decoded {email} path segment. chi matches on the raw path,
// so an encoded "@" arrives as "%40".
func emailParam(r *http.Request) (string, error) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		return "", fmt.Errorf("%w: email path segment: %v", validate.ErrShape, err)
	}
	return email, nil
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := validate.DecodeShape(r.Body, &req, models.CredentialsKeys...); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, registerResponse{User: user, Message: "Registration successful"})
}

// Login checks an email and password pair.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := validate.DecodeShape(r.Body, &req, models.CredentialsKeys...); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.Login(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Authentication successful"})
}

// VerifySecurityQuestions checks a user's security answers.
func (h *UserHandler) VerifySecurityQuestions(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.SecurityAnswersRequest
	if err := validate.DecodeSchema(r.Body, validate.SecurityAnswersSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.VerifySecurityAnswers(r.Context(), email, req.SecurityQuestions); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Security questions successfully answered"})
}

// ResetPassword replaces a user's password after checking their security answers.
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ResetPasswordRequest
	if err := validate.DecodeSchema(r.Body, validate.ResetPasswordSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.ResetPassword(r.Context(), email, req.SecurityQuestions, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password reset successful"})
}

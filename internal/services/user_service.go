package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookcook/api/internal/auth"
	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/store"
	"github.com/rs/zerolog/log"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	Register(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	VerifySecurityAnswers(ctx context.Context, email string, answers []models.SecurityQuestion) error
	ResetPassword(ctx context.Context, email string, answers []models.SecurityQuestion, newPassword string) error
}

// UserService provides business logic for user registration and credential checks.
type UserService struct {
	users  store.Users
	hasher *auth.Hasher
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(users store.Users, hasher *auth.Hasher, events EventServiceProvider) *UserService {
	return &UserService{users: users, hasher: hasher, events: events}
}

// GetUserByEmail retrieves a single user, including the password hash.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.users.FindOne(ctx, email)
	if err != nil {
		return models.User{}, notFound(err, "User", email)
	}
	return user, nil
}

// Register creates a new user, hashing their password.
func (s *UserService) Register(ctx context.Context, email, password string) (models.User, error) {
	// A failed lookup only means there is no duplicate to report.
	if _, err := s.users.FindOne(ctx, email); err == nil {
		return models.User{}, fmt.Errorf("user %s: %w", email, store.ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Warn().Err(err).Str("email", email).Msg("Duplicate check failed, continuing with registration")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:             email,
		PasswordHash:      hashed,
		SecurityQuestions: []models.SecurityQuestion{},
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("failed to register user %s: %w", email, err)
	}

	record(ctx, s.events, "user.register", fmt.Sprintf("User %s registered.", email), "user:"+email)
	return user, nil
}

// Login verifies a user's credentials.
func (s *UserService) Login(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, fmt.Errorf("login for %s: %w", email, ErrUnauthorized)
	}

	record(ctx, s.events, "user.login", fmt.Sprintf("User %s logged in.", email), "user:"+email)
	return user, nil
}

// VerifySecurityAnswers checks submitted answers against the stored ones, position by position.
func (s *UserService) VerifySecurityAnswers(ctx context.Context, email string, answers []models.SecurityQuestion) error {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !auth.AnswersMatch(user.SecurityQuestions, answers) {
		return fmt.Errorf("security answers for %s: %w", email, ErrUnauthorized)
	}

	record(ctx, s.events, "user.verify", fmt.Sprintf("User %s answered security questions.", email), "user:"+email)
	return nil
}

// ResetPassword verifies the security answers, then hashes and stores a new password.
func (s *UserService) ResetPassword(ctx context.Context, email string, answers []models.SecurityQuestion, newPassword string) error {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !auth.AnswersMatch(user.SecurityQuestions, answers) {
		return fmt.Errorf("security answers for %s: %w", email, ErrUnauthorized)
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed

	if err := s.users.Update(ctx, email, user); err != nil {
		return notFound(err, "User", email)
	}

	record(ctx, s.events, "user.reset-password", fmt.Sprintf("Password reset for %s.", email), "user:"+email)
	return nil
}

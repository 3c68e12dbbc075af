package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/store"
)

// UserStore is a store.Users backed by the users table, keyed by email.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.Email, &user.PasswordHash, &user.SecurityQuestionsJSON); err != nil {
		return models.User{}, err
	}
	user.PrepareForAPI()
	return user, nil
}

// FindAll retrieves all users ordered by email.
func (s *UserStore) FindAll(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT email, password_hash, security_questions_json FROM users ORDER BY email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// FindOne retrieves a single user by email, including the password hash.
func (s *UserStore) FindOne(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT email, password_hash, security_questions_json FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, store.ErrNotFound
	}
	return user, err
}

// Insert adds a new user.
func (s *UserStore) Insert(ctx context.Context, user models.User) error {
	user.PrepareForSave()
	_, err := s.db.ExecContext(ctx, "INSERT INTO users (email, password_hash, security_questions_json) VALUES (?, ?, ?)",
		user.Email, user.PasswordHash, user.SecurityQuestionsJSON)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return err
}

// Update replaces the user stored under email.
func (s *UserStore) Update(ctx context.Context, email string, user models.User) error {
	user.PrepareForSave()
	res, err := s.db.ExecContext(ctx, "UPDATE users SET email = ?, password_hash = ?, security_questions_json = ? WHERE email = ?",
		user.Email, user.PasswordHash, user.SecurityQuestionsJSON, email)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return err
	}
	return affectedOne(res)
}

// Delete removes a user.
func (s *UserStore) Delete(ctx context.Context, email string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE email = ?", email)
	if err != nil {
		return err
	}
	return affectedOne(res)
}

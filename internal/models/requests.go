package models

// Expected key sets for mutating requests. A body must carry exactly these keys.
var (
	CreateRecipeKeys = []string{"id", "name", "ingredients"}
	UpdateRecipeKeys = []string{"name", "ingredients"}
	CreateBookKeys   = []string{"id", "title", "author"}
	UpdateBookKeys   = []string{"title", "author"}
	CredentialsKeys  = []string{"email", "password"}
)

// CreateRecipeRequest is the body of POST /api/recipes. ID is a pointer so a
// null id fails validation instead of becoming 0.
type CreateRecipeRequest struct {
	ID          *int     `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required"`
}

// UpdateRecipeRequest is the body of PUT /api/recipes/{id}.
type UpdateRecipeRequest struct {
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required"`
}

// CreateBookRequest is the body of POST /api/books.
type CreateBookRequest struct {
	ID     *int   `json:"id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// UpdateBookRequest is the body of PUT /api/books/{id}.
type UpdateBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// CredentialsRequest is used by both registration and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SecurityAnswersRequest is the body of the security question check.
type SecurityAnswersRequest struct {
	SecurityQuestions []SecurityQuestion `json:"securityQuestions"`
}

// ResetPasswordRequest is the body of POST /api/users/{email}/reset-password.
type ResetPasswordRequest struct {
	NewPassword       string             `json:"newPassword"`
	SecurityQuestions []SecurityQuestion `json:"securityQuestions"`
}

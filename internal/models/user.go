package models

import "encoding/json"

// SecurityQuestion holds the answer to one of a user's recovery questions.
type SecurityQuestion struct {
	Answer string `json:"answer"`
}

// User represents a user account. Emails are unique and compared case-sensitively.
type User struct {
	Email             string             `json:"email"`
	PasswordHash      string             `json:"-"` // Never expose this to the client
	SecurityQuestions []SecurityQuestion `json:"-"`

	SecurityQuestionsJSON string `json:"-"`
}

// PrepareForSave marshals the security questions into their JSON string for DB storage.
func (u *User) PrepareForSave() {
	if u.SecurityQuestions == nil {
		u.SecurityQuestions = []SecurityQuestion{}
	}
	b, _ := json.Marshal(u.SecurityQuestions)
	u.SecurityQuestionsJSON = string(b)
}

// PrepareForAPI unmarshals the stored security questions.
func (u *User) PrepareForAPI() {
	if u.SecurityQuestionsJSON != "" {
		json.Unmarshal([]byte(u.SecurityQuestionsJSON), &u.SecurityQuestions)
	}
}

package model

import (
	"strings"
	"time"
)

// User is a registered account. Email is stored lower-cased and acts as
// the account's unique key.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credential pairs a user profile with its stored password value.
type Credential struct {
	User     User   `json:"user"`
	Password string `json:"password"`
}

// CredentialTable maps lower-cased email to the account's credential.
type CredentialTable map[string]Credential

// NormalizeEmail returns the key under which an email is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput carries the fields of the registration form.
type RegisterInput struct {
	Name            string `json:"name" validate:"required,min=2,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks the profile fields. Password rules are enforced by the
// auth service, which reports them with dedicated errors.
func (in RegisterInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	return validateStruct(in)
}

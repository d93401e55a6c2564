package auth

import (
	"errors"

	"github.com/nhle/taskflow/internal/model"
)

// Credential errors. They are expected outcomes of user input and their
// messages double as the reason shown to the user.
var (
	ErrAccountNotFound  = errors.New("no account found with this email address")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrEmailTaken       = errors.New("an account with this email already exists")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password must be at least 6 characters")
)

// IsCredentialError reports whether err is a recoverable credential failure
// rather than a storage fault.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	var verr *model.ValidationError
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrWrongPassword) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrWeakPassword) ||
		errors.As(err, &verr)
}

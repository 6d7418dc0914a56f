// Package apperrors defines the error taxonomy shared by services and
// handlers. Services return these sentinels (optionally wrapped with
// detail via fmt.Errorf and %w); handlers translate them to HTTP status
// codes in one place.
package apperrors

import "errors"

var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password so callers cannot probe for registered accounts.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrInvalidToken covers a missing, malformed, expired or badly
	// signed bearer token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrAccessDenied means the caller is authenticated but not allowed
	// to act on the target entity.
	ErrAccessDenied = errors.New("Access denied")

	ErrTaskNotFound         = errors.New("Task not found")
	ErrUserNotFound         = errors.New("User not found")
	ErrNotificationNotFound = errors.New("Notification not found")

	// ErrEmailTaken is the uniqueness conflict raised at registration.
	ErrEmailTaken    = errors.New("User already exists with this email")
	ErrUsernameTaken = errors.New("Username already taken")
)

// IsNotFound reports whether err is one of the entity-absent sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken)
}

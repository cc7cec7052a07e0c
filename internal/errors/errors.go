// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPermissionDenied is returned by auth.RequireRole when the caller's
// resolved role is not in the allowed set. It propagates to the tool
// boundary as a caller-visible failure.
type ErrPermissionDenied struct {
	Email        string
	AllowedRoles []string
}

func (e *ErrPermissionDenied) Error() string {
	return fmt.Sprintf("user %s does not have permission, required roles: [%s]",
		e.Email, strings.Join(e.AllowedRoles, ", "))
}

// Helper constructor
func NewPermissionDenied(email string, allowedRoles []string) error {
	return &ErrPermissionDenied{Email: email, AllowedRoles: allowedRoles}
}

func IsPermissionDenied(err error) bool {
	var pd *ErrPermissionDenied
	return errors.As(err, &pd)
}

// ErrInvalidArgument is returned when a tool argument fails validation
// before any store operation runs (e.g. an asset review decision outside
// approved/rejected).
type ErrInvalidArgument struct {
	Field  string
	Reason string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

func NewInvalidArgument(field, reason string) error {
	return &ErrInvalidArgument{Field: field, Reason: reason}
}

func IsInvalidArgument(err error) bool {
	var ia *ErrInvalidArgument
	return errors.As(err, &ia)
}

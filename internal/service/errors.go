package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrReferenceNotFound  = errors.New("referenced record does not exist")
	ErrInsufficientStock  = errors.New("insufficient stock remaining")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

// ValidationError rejects malformed input before any mutation happens, so
// there is never anything to roll back for it.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

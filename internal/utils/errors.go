package utils

import (
	"errors"
	"sort"
	"strings"
)

// Common application errors used across services.
var (
	ErrAccountNotFound  = errors.New("ACCOUNT_NOT_FOUND")
	ErrInvalidToken     = errors.New("INVALID_TOKEN")
	ErrInvalidLink      = errors.New("INVALID_LINK")
	ErrTooManyAttempts  = errors.New("TOO_MANY_ATTEMPTS")
	ErrTokenUnavailable = errors.New("TOKEN_UNAVAILABLE")
)

// FieldErrors maps request fields to their validation messages. It is written
// to the wire as-is with status 400.
type FieldErrors map[string][]string

// Add appends msg to field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Empty reports whether no field has messages.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Error implements error with a deterministic field order.
func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, k := range fields {
		parts = append(parts, k+": "+strings.Join(f[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

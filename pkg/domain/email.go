package domain

import (
	"regexp"
	"strings"
)

// emailPattern is deliberately conservative: something, an @, something, a
// dot, something, with no whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`) //nolint: gochecknoglobals

// Email is a validated email address. Case is preserved as supplied.
type Email struct {
	value string
}

// NewEmail validates raw and wraps it. Empty or malformed input fails with
// ErrInvalidEmailFormat.
func NewEmail(raw string) (Email, error) {
	if raw == "" || !emailPattern.MatchString(raw) {
		return Email{}, newValidationError(ReasonInvalidEmailFormat)
	}

	return Email{value: raw}, nil
}

// String returns the address exactly as it was supplied.
func (e Email) String() string { return e.value }

// Equals compares two addresses exactly, case included.
func (e Email) Equals(other Email) bool { return e.value == other.value }

// EqualFold compares two addresses ignoring case.
func (e Email) EqualFold(other Email) bool { return strings.EqualFold(e.value, other.value) }

// IsZero reports whether e is the zero Email.
func (e Email) IsZero() bool { return e.value == "" }

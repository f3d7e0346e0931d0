package domain

import (
	"taskmanager/pkg/serrors"
)

// ErrorKind tags a domain error with its category.
type ErrorKind string

const (
	// KindValidation is raised by value-object construction.
	KindValidation ErrorKind = "VALIDATION"
	// KindTaskNotFound is raised when a task lookup by id finds nothing.
	KindTaskNotFound ErrorKind = "TASK_NOT_FOUND"
	// KindAccessDenied is raised when the requester does not own the task.
	KindAccessDenied ErrorKind = "ACCESS_DENIED"
	// KindInvalidCredential is raised by sign-in for both unknown users and wrong passwords.
	KindInvalidCredential ErrorKind = "INVALID_CREDENTIAL"
	// KindUserEmailExists is raised by sign-up when the email is already registered.
	KindUserEmailExists ErrorKind = "USER_EMAIL_EXISTS"
)

// semantic maps a domain kind onto the transport-neutral serrors kind.
func (k ErrorKind) semantic() serrors.Kind {
	switch k {
	case KindValidation:
		return serrors.ErrBadRequest
	case KindTaskNotFound:
		return serrors.ErrNotFound
	case KindAccessDenied:
		return serrors.ErrForbidden
	case KindInvalidCredential:
		return serrors.ErrUnauthorized
	case KindUserEmailExists:
		return serrors.ErrConflict
	default:
		return serrors.ErrInternal
	}
}

// ValidationReason narrows a KindValidation error.
type ValidationReason string

const (
	// ReasonEmptyIdentifier is used when an identifier is supplied but empty.
	ReasonEmptyIdentifier ValidationReason = "EMPTY_IDENTIFIER"
	// ReasonInvalidEmailFormat is used when an email is empty or malformed.
	ReasonInvalidEmailFormat ValidationReason = "INVALID_EMAIL_FORMAT"
)

const (
	accessDeniedMessage      = "access denied: you do not have permission to perform this action"
	invalidCredentialMessage = "invalid user credential"
)

// Error is the single tagged error type raised by the domain and the use
// cases. Only the context field that belongs to Kind is populated: Reason for
// validation errors, ID for a missing task and Email for a duplicate sign-up.
//
// errors.Is matches another *Error of the same Kind (and Reason, when the
// target sets one) as well as the serrors kind the domain kind maps to, so
// transports never need to import this type to pick a status code.
type Error struct {
	Kind   ErrorKind
	Reason ValidationReason
	ID     string
	Email  string
}

// Sentinels for errors.Is. They carry no context.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrEmptyIdentifier    = &Error{Kind: KindValidation, Reason: ReasonEmptyIdentifier}
	ErrInvalidEmailFormat = &Error{Kind: KindValidation, Reason: ReasonInvalidEmailFormat}
	ErrTaskNotFound       = &Error{Kind: KindTaskNotFound}
	ErrAccessDenied       = &Error{Kind: KindAccessDenied}
	ErrInvalidCredential  = &Error{Kind: KindInvalidCredential}
	ErrUserEmailExists    = &Error{Kind: KindUserEmailExists}
)

func newValidationError(reason ValidationReason) *Error {
	return &Error{Kind: KindValidation, Reason: reason}
}

// NewTaskNotFoundError reports that no task exists with the given id.
func NewTaskNotFoundError(id Identifier) *Error {
	return &Error{Kind: KindTaskNotFound, ID: id.String()}
}

// NewAccessDeniedError reports a failed ownership check. The message never
// names the task or the requester.
func NewAccessDeniedError() *Error {
	return &Error{Kind: KindAccessDenied}
}

// NewInvalidCredentialError reports a failed sign-in. The message is the same
// whether the user is unknown or the password is wrong.
func NewInvalidCredentialError() *Error {
	return &Error{Kind: KindInvalidCredential}
}

// NewUserEmailExistsError reports a sign-up with an already registered email.
func NewUserEmailExistsError(email Email) *Error {
	return &Error{Kind: KindUserEmailExists, Email: email.String()}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch e.Kind {
	case KindValidation:
		switch e.Reason {
		case ReasonEmptyIdentifier:
			return "identifier cannot be empty"
		case ReasonInvalidEmailFormat:
			return "invalid email format"
		default:
			return "validation failed"
		}
	case KindTaskNotFound:
		return "task with ID " + e.ID + " not found"
	case KindAccessDenied:
		return accessDeniedMessage
	case KindInvalidCredential:
		return invalidCredentialMessage
	case KindUserEmailExists:
		return "user with email " + e.Email + " already exists"
	default:
		return "domain error"
	}
}

// Is reports whether target is a domain error of the same kind or the
// serrors kind this error maps to.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		return t != nil && t.Kind == e.Kind && (t.Reason == "" || t.Reason == e.Reason)
	}

	return e.Kind.semantic() == target
}

// As extracts the serrors kind this error maps to.
func (e *Error) As(target any) bool {
	k, ok := target.(*serrors.Kind)
	if !ok || e == nil {
		return false
	}
	*k = e.Kind.semantic()

	return true
}

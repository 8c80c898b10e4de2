package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a service failure. Handlers map kinds to HTTP statuses in
// exactly one place (HTTPStatus) so a caller can never mistake a failure for
// a success payload.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindDuplicateName
	KindUnauthorized
	KindCreationFailed
	KindValidation
)

type ServiceError struct {
	Kind Kind
	Msg  string
}

func (e *ServiceError) Error() string {
	return e.Msg
}

func NewNotFound(msg string) error {
	return &ServiceError{Kind: KindNotFound, Msg: msg}
}

func NewDuplicateName(msg string) error {
	return &ServiceError{Kind: KindDuplicateName, Msg: msg}
}

func NewUnauthorized(msg string) error {
	return &ServiceError{Kind: KindUnauthorized, Msg: msg}
}

func NewCreationFailed(msg string) error {
	return &ServiceError{Kind: KindCreationFailed, Msg: msg}
}

func NewValidationError(msg string) error {
	return &ServiceError{Kind: KindValidation, Msg: msg}
}

// KindOf returns the kind of err, or 0 when err is not a ServiceError.
func KindOf(err error) Kind {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return 0
}

func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
func IsDuplicateName(err error) bool { return KindOf(err) == KindDuplicateName }
func IsUnauthorized(err error) bool  { return KindOf(err) == KindUnauthorized }

func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation
}

// HTTPStatus maps a service error to its response status. Unknown errors are
// treated as internal failures.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateName:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindCreationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

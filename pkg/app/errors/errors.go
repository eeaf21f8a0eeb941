// Package errors maps service failures to categories the HTTP layer can render.
package errors

import (
	"errors"
	"net/http"
)

// Category classifies a service error
type Category int

const (
	// CategoryNoError marks a successful call.
	CategoryNoError Category = iota
	// CategoryDataError is invalid input: a malformed address, hash or chain id.
	CategoryDataError
	// CategoryResourceNotFound is a lookup of something that does not exist.
	CategoryResourceNotFound
	// CategoryNotSupported is a request for functionality the relayer does not offer.
	CategoryNotSupported
	// CategoryDataConflict is a request that conflicts with the current record state.
	CategoryDataConflict
	// CategoryDependencyFailure is a failing ledger or database behind the service.
	CategoryDependencyFailure
	// CategoryGeneralError is an unexpected failure.
	CategoryGeneralError
)

func (c Category) String() string {
	switch c {
	case CategoryNoError:
		return "CategoryNoError"
	case CategoryDataError:
		return "CategoryDataError"
	case CategoryResourceNotFound:
		return "CategoryResourceNotFound"
	case CategoryNotSupported:
		return "CategoryNotSupported"
	case CategoryDataConflict:
		return "CategoryDataConflict"
	case CategoryDependencyFailure:
		return "CategoryDependencyFailure"
	default:
		return "CategoryGeneralError"
	}
}

// ServiceError carries a user-facing message and the underlying cause.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

// Error returns the cause when present, otherwise the user message.
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is checks that err is a ServiceError with the desired category.
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

// IsInternalError reports whether err should be logged as a server-side failure.
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category < CategoryDependencyFailure {
		return false
	}
	return true
}

func newError(cat Category, err error, message string) error {
	if err == nil {
		err = errors.New(message)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind "Internal Server Error".
func GeneralError(err error) error {
	if err == nil {
		err = errors.New("internal server error")
	}
	return &ServiceError{
		Category: CategoryGeneralError,
		Message:  "Internal Server Error",
		Err:      err,
	}
}

// ResourceNotFoundError returns a 404 error; message is returned to the user.
func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, err, message)
}

// BadRequestError returns a 400 error; message is returned to the user.
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, err, message)
}

// NotSupportedError returns a 405 error.
func NotSupportedError(err error, message string) error {
	return newError(CategoryNotSupported, err, message)
}

// ConflictError returns a 409 error.
func ConflictError(err error, message string) error {
	return newError(CategoryDataConflict, err, message)
}

// DependencyError returns a 502 error for a failing ledger or database.
func DependencyError(err error, message string) error {
	return newError(CategoryDependencyFailure, err, message)
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryResourceNotFound:
		return http.StatusNotFound
	case CategoryNotSupported:
		return http.StatusMethodNotAllowed
	case CategoryDataConflict:
		return http.StatusConflict
	case CategoryDependencyFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

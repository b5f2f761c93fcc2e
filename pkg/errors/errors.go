// Package errors defines the error taxonomy of the search service. Catalog
// load failures are fatal for that load attempt and carry a user-presentable
// message; unparsable numeric cells, empty queries, and empty filter results
// are defined outcomes, not errors, and never appear here.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoHeaders     = errors.New("catalog file has no column headers")
	ErrNoTitleColumn = errors.New("no title column could be resolved")
	ErrNoValidRows   = errors.New("catalog contains no valid products")
	ErrIndexNotReady = errors.New("search index not ready")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternal      = errors.New("internal error")
)

// IsLoadError reports whether err is one of the fatal catalog load errors.
func IsLoadError(err error) bool {
	return errors.Is(err, ErrNoHeaders) ||
		errors.Is(err, ErrNoTitleColumn) ||
		errors.Is(err, ErrNoValidRows)
}

type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrIndexNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not valid yet")

	// auth
	ErrEmptyAuthHeader   = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader = fmt.Errorf("authorization header must be 'Bearer <token>'")
	ErrUnauthorized      = fmt.Errorf("unauthorized")
	ErrForbidden         = fmt.Errorf("access denied")

	ErrPrincipalNotFoundInContext = fmt.Errorf("principal not found in request context")

	// upstream
	ErrUpstreamUnavailable = fmt.Errorf("the warranty service is unavailable, please try again")
	ErrUpstreamRejected    = fmt.Errorf("the warranty service rejected the request")

	// common
	ErrNotFound   = fmt.Errorf("record not found")
	ErrBadRequest = fmt.Errorf("bad request")
	ErrTooMany    = fmt.Errorf("too many records to export, narrow the filters")
)

// HttpError carries the status code and the user-facing message of a
// failure. Err is the internal cause and is only logged.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}

// StatusOf maps the sentinel errors of this package to HTTP status codes.
func StatusOf(err error) (int, bool) {
	switch {
	case errors.Is(err, ErrEmptyAuthHeader), errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenNotYetValid), errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrUnauthorized), errors.Is(err, ErrPrincipalNotFoundInContext):
		return http.StatusUnauthorized, true
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrTooMany):
		return http.StatusBadRequest, true
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusBadGateway, true
	case errors.Is(err, ErrUpstreamRejected):
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

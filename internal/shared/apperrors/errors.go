package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the category of a domain error. The set is closed:
// services classify every failure into exactly one kind at their boundary.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindAuth          Kind = "AUTH"
	KindNotFound      Kind = "NOT_FOUND"
	KindBusinessLogic Kind = "BUSINESS_LOGIC"
	KindNetwork       Kind = "NETWORK"
	KindServer        Kind = "SERVER"
	KindStorage       Kind = "STORAGE"
	KindPayment       Kind = "PAYMENT"
	KindUnknown       Kind = "UNKNOWN"
)

// Error is the single error type crossing use-case boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two errors by kind so callers can compare against sentinels
// built with the constructors below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, fmt.Sprintf(format, args...))
}

func Auth(format string, args ...interface{}) *Error {
	return newError(KindAuth, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, fmt.Sprintf(format, args...))
}

func BusinessLogic(format string, args ...interface{}) *Error {
	return newError(KindBusinessLogic, fmt.Sprintf(format, args...))
}

func Payment(format string, args ...interface{}) *Error {
	return newError(KindPayment, fmt.Sprintf(format, args...))
}

// Storage wraps a persistence-layer failure so the original driver error
// stays reachable through errors.Unwrap.
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

func Network(msg string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

func Server(msg string, err error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

// Unknown is the outer-boundary catch-all: any error a use case cannot
// classify is wrapped here instead of escaping untyped.
func Unknown(msg string, err error) *Error {
	return &Error{Kind: KindUnknown, Message: msg, Err: err}
}

// KindOf extracts the kind from any error chain; plain errors report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to the status code controllers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindBusinessLogic:
		return http.StatusConflict
	case KindPayment:
		return http.StatusPaymentRequired
	case KindNetwork:
		return http.StatusBadGateway
	case KindStorage, KindServer, KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

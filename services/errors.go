package services

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Kind tags a service failure so handlers can map it to a status code without
// parsing messages.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindOutOfStock
	KindNotServiceable
	KindInternal
)

// Error is the tagged result returned by every service operation. Message is
// safe to surface to the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the failure kind to a response code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalid, KindOutOfStock, KindNotServiceable:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errf(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// internal logs the underlying error and returns a generic client-safe
// failure. Unexpected errors never leak to the response body.
func internal(log *zap.Logger, op string, err error) *Error {
	log.Error(op, zap.Error(err))
	return &Error{Kind: KindInternal, Message: "something went wrong, please try again later"}
}

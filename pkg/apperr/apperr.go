// Package apperr defines the error categories surfaced over HTTP and the
// helper used by handlers to turn them into responses
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NoToken
	InvalidToken
	Forbidden
	NotFound
	Conflict
	Upstream
	TooLarge
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NoToken:
		return "no_token"
	case InvalidToken:
		return "invalid_token"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Upstream:
		return "upstream"
	case TooLarge:
		return "too_large"
	default:
		return "internal"
	}
}

// Status maps a kind to its HTTP status code. Conflicts are reported as
// 400 because clients treat a duplicate key as bad input.
func (k Kind) Status() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case NoToken:
		return http.StatusUnauthorized
	case InvalidToken, Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Upstream:
		return http.StatusBadGateway
	case TooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a fixed, user facing Message. Err is the cause and is
// only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}

	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

func Wrap(k Kind, msg string, err error) *Error {
	return &Error{Kind: k, Message: msg, Err: err}
}

// KindOf returns the kind of err, Internal for anything that isn't an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Internal
}

// Respond aborts the request with the JSON body used across the API.
// Internal and upstream failures are logged with their cause.
func Respond(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var e *Error
	if !errors.As(err, &e) {
		e = Wrap(Internal, "Internal server error", err)
	}

	switch e.Kind {
	case Internal:
		zap.L().Error(e.Message, zap.Error(e.Err), zap.String("requestID", requestID))
	case Upstream:
		zap.L().Warn(e.Message, zap.Error(e.Err), zap.String("requestID", requestID))
	default:
		if e.Err != nil {
			zap.L().Debug(e.Message, zap.Error(e.Err), zap.String("requestID", requestID))
		}
	}

	c.AbortWithStatusJSON(e.Kind.Status(), gin.H{
		"error":     e.Message,
		"requestID": requestID,
	})
}

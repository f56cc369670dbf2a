package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message ErrorMessage `json:"message"`
}

type ErrorMessage struct {
	Reason string `json:"reason"`
	Advice string `json:"advice,omitempty"`
	Cause  error  `json:"-"`
}

func (e ErrorMessage) String() string {
	lines := []string{e.Reason}
	if e.Advice != "" {
		lines = append(lines, e.Advice)
	}
	if e.Cause != nil {
		lines = append(lines, fmt.Sprint(" caused by:", e.Cause.Error()))
	}
	return strings.Join(lines, "\n")
}

func (e ErrorMessage) Error() string {
	return e.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}

type ErrorMessageOption func(in *ErrorMessage) *ErrorMessage

func WithAdvice(advice string) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if advice != "" {
			in.Advice = advice
		}
		return in
	}
}

func WithError(err error) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if err != nil {
			in.Cause = err
		}
		return in
	}
}

func NewErrorMessage(code int, reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	msg := ErrorMessage{Reason: reason}
	for _, opt := range opts {
		msg = *opt(&msg)
	}

	return echo.NewHTTPError(code, msg).SetInternal(msg)
}

// NotFound is the uniform denial: it does not tell "does not exist"
// apart from "exists but owned by someone else".
func NotFound() *echo.HTTPError {
	return NewErrorMessage(http.StatusNotFound, "not found")
}

func BadRequest(advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadRequest,
		"bad request",
		WithAdvice(advice),
		WithError(err),
	)
}

func Unauthorized(advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusUnauthorized,
		"unauthorized",
		WithAdvice(advice),
		WithError(err),
	)
}

func Forbidden(advice string) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusForbidden,
		"forbidden",
		WithAdvice(advice),
	)
}

func Conflict(message string, options ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusConflict,
		message,
		options...,
	)
}

func InternalServerError(err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusInternalServerError,
		"unexpected error",
		WithError(err),
	)
}

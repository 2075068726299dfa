// Package domainerrors carries coded errors across layer boundaries so the
// HTTP surface can map failures to responses without inspecting error text.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUpstream     Code = "upstream_error"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error.
type Error struct {
	Code        Code
	Description string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Description
}

// New builds a coded domain error.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// ToHTTPStatus maps a code to the HTTP status the surface responds with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

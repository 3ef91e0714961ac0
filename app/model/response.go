package model

import "fmt"

type Response[T any] struct {
	Response bool   `json:"response"`
	Message  string `json:"message,omitempty"`
	Data     T      `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// APIError membawa status HTTP bersama pesan untuk error handler fiber.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code int, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *APIError {
	return NewAPIError(400, format, args...)
}

func Forbidden(format string, args ...any) *APIError {
	return NewAPIError(403, format, args...)
}

func NotFound(format string, args ...any) *APIError {
	return NewAPIError(404, format, args...)
}

func Conflict(format string, args ...any) *APIError {
	return NewAPIError(409, format, args...)
}

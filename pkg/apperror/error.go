package apperror

import "net/http"

type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Validation is a 400 carrying the per-field messages alongside the combined one
func Validation(message string, fields map[string]string) *AppError {
	e := New(http.StatusBadRequest, message, nil)
	e.Fields = fields
	return e
}

func MethodNotAllowed() *AppError {
	return New(http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func Conflict(message string, err error) *AppError {
	return New(http.StatusConflict, message, err)
}

// Persistence wraps a failed store write; message is shown to the caller, err is only logged
func Persistence(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}

func Unexpected(err error) *AppError {
	return New(http.StatusInternalServerError, "An unexpected error occurred", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

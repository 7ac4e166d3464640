// Package response renders the unified API envelope.
package response

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Body is the envelope every endpoint returns. Status carries the HTTP
// status name in SCREAMING_SNAKE_CASE ("OK", "BAD_REQUEST"), which is what
// existing clients parse.
type Body struct {
	Code    int      `json:"code"`
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Data    any      `json:"data,omitempty"`
}

// StatusName converts an HTTP status code to its envelope status string.
func StatusName(code int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
}

// JSON writes the envelope with an explicit status code and messages.
func JSON(c echo.Context, code int, data any, messages ...string) error {
	if len(messages) == 0 {
		messages = []string{"Success"}
	}

	return c.JSON(code, Body{
		Code:    code,
		Status:  StatusName(code),
		Message: messages,
		Data:    data,
	})
}

// OK writes a 200 envelope.
func OK(c echo.Context, data any, messages ...string) error {
	return JSON(c, http.StatusOK, data, messages...)
}

// Created writes a 201 envelope.
func Created(c echo.Context, data any, messages ...string) error {
	return JSON(c, http.StatusCreated, data, messages...)
}

// Error writes an error envelope without data.
func Error(c echo.Context, code int, messages ...string) error {
	if len(messages) == 0 {
		messages = []string{http.StatusText(code)}
	}

	return c.JSON(code, Body{
		Code:    code,
		Status:  StatusName(code),
		Message: messages,
	})
}

// BindingError writes the 400 envelope used when request binding fails.
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

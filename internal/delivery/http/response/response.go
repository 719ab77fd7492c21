package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response unified API response structure. Every endpoint answers with
// exactly this envelope; clients branch on isSuccess/hasError.
type Response struct {
	IsSuccess bool   `json:"isSuccess"`
	HasError  bool   `json:"hasError"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		IsSuccess: true,
		HasError:  false,
		Message:   message,
		Data:      data,
	})
}

// Error error response
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		IsSuccess: false,
		HasError:  true,
		Message:   message,
	})
}

// BindingError binding error response
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 error
func Unauthorized(c echo.Context, message string) error {
	return Error(c, http.StatusUnauthorized, message)
}

// NotFound 404 error
func NotFound(c echo.Context, message string) error {
	return Error(c, http.StatusNotFound, message)
}

// Conflict 409 error
func Conflict(c echo.Context, message string) error {
	return Error(c, http.StatusConflict, message)
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, message)
}

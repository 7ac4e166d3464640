// Package handler contains the HTTP handlers for the application.
package handler

import (
	"inkwell/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "up"})
}

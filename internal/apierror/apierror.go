// Package apierror provides standardized error values for the API.
// All errors returned to clients go through this package to ensure a
// consistent envelope and to prevent leaking internal details (stack
// traces, DB errors, etc.) in production.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical business error for all 4xx/5xx HTTP responses.
// Mensaje is always safe to show to clients; Interno carries the underlying
// cause for logging and development-mode responses only.
type APIError struct {
	Status  int
	Mensaje string
	// Extra holds additional JSON fields merged into the error envelope
	// (e.g. stock_disponible on a stock-insufficient rejection).
	Extra   map[string]interface{}
	Interno error
}

func (e *APIError) Error() string {
	if e.Interno != nil {
		return fmt.Sprintf("%s: %v", e.Mensaje, e.Interno)
	}
	return e.Mensaje
}

func (e *APIError) Unwrap() error { return e.Interno }

// Validation: malformed or missing input → 400.
func Validation(mensaje string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Mensaje: mensaje}
}

// NotFound: entity absent → 404.
func NotFound(mensaje string) *APIError {
	return &APIError{Status: http.StatusNotFound, Mensaje: mensaje}
}

// Conflict: business-rule violation (duplicate state, etc.) → 409.
func Conflict(mensaje string) *APIError {
	return &APIError{Status: http.StatusConflict, Mensaje: mensaje}
}

// Unauthorized: missing/expired/invalid credentials → 401.
func Unauthorized(mensaje string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Mensaje: mensaje}
}

// Internal: infrastructure failure → 500. Mensaje stays generic; err is
// preserved for logs and development mode.
func Internal(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Mensaje: "Error interno del servidor", Interno: err}
}

// StockInsuficiente reports a stock shortfall, naming the product and the
// quantity actually available.
func StockInsuficiente(producto string, disponible int) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Mensaje: fmt.Sprintf("Stock insuficiente para %s", producto),
		Extra:   map[string]interface{}{"stock_disponible": disponible},
	}
}

// From normalizes any error into an *APIError. Unknown errors become 500s.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}

// Package apperr holds the error taxonomy shared by services and handlers.
// Services wrap these sentinels; handlers translate them to HTTP statuses
// through StatusCode so the mapping lives in exactly one place.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrValidation covers malformed or missing request input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound covers lookups with no matching user, OTP or course.
	ErrNotFound = errors.New("not found")
	// ErrAuthentication covers bad passwords, bad or expired tokens and
	// unverified accounts.
	ErrAuthentication = errors.New("authentication failed")
	// ErrForbidden covers authenticated but disallowed requests.
	ErrForbidden = errors.New("forbidden")
	// ErrStorage covers database connectivity and write failures. Handlers
	// surface it as a generic message, never the underlying error.
	ErrStorage = errors.New("storage failure")
)

// StatusCode maps a taxonomy error to its HTTP status. Unknown errors are
// treated as storage-level failures.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAuthentication):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

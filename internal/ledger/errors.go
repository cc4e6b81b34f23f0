// Package ledger holds the error taxonomy shared by the wallet, purchase and
// distribution engines. Engines return these sentinels unwrapped; handlers
// map them to HTTP status codes. On any error path no partial mutation is
// committed; every engine operation runs in a single storage transaction.
package ledger

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidAmount       = errors.New("Amount must be a positive number")
	ErrInsufficientFunds   = errors.New("Insufficient wallet balance")
	ErrPropertyUnavailable = errors.New("Property not found or not active")
	ErrUnauthorized        = errors.New("Unauthorized")
	ErrNoTokensIssued      = errors.New("No tokens have been issued for this property")
	ErrExceedsAvailable    = errors.New("Requested tokens exceed available supply")
	ErrWalletNotFound      = errors.New("Wallet not found")
	ErrNotFound            = errors.New("Record not found")
)

// StatusCode maps a core error to its HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInsufficientFunds):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrExceedsAvailable):
		return fiber.StatusConflict
	case errors.Is(err, ErrPropertyUnavailable), errors.Is(err, ErrWalletNotFound), errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNoTokensIssued):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// IsDomain reports whether err belongs to the core taxonomy (as opposed to a
// storage failure the caller may choose to retry).
func IsDomain(err error) bool {
	return StatusCode(err) != fiber.StatusInternalServerError
}

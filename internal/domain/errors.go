package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides whether email or password failed.
	// The reason is to prevent account-enumeration side channels.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput covers user-correctable input problems.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCart rejects order submission when the cart holds no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrStockExceeded is advisory: raised before a store call when a requested
	// quantity would exceed catalog stock. The cart store itself clamps instead.
	ErrStockExceeded = errors.New("requested quantity exceeds available stock")
	// ErrOperationInFlight rejects a duplicate async submission while one is pending.
	ErrOperationInFlight = errors.New("operation already in flight")
	ErrUnauthorized      = errors.New("unauthorized")
)

// FieldErrors maps form field names to user-facing validation messages.
// It implements error so validators can return it through ordinary error paths.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Merge copies entries from other into fe, overwriting on key collision.
func (fe FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		fe[k] = v
	}
}

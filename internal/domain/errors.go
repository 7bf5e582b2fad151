package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
)

// Validation failure codes for cart pricing and pickup checks.
const (
	CodeInvalidAddon     = "INVALID_ADDON"
	CodeInactiveSlot     = "INACTIVE_SLOT"
	CodeTooSoon          = "TOO_SOON"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeDayMismatch      = "DAY_MISMATCH"
	CodeSlotDayMismatch  = "SLOT_DAY_MISMATCH"
	CodeOutsideWindow    = "OUTSIDE_WINDOW"
	CodeMissingSelection = "MISSING_SELECTION"
	CodeNoSlotsAvailable = "NO_SLOTS_AVAILABLE"
)

// ValidationError is a client error: the request referenced real entities but
// violated a business rule. It is never retried.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(code, format string, args ...interface{}) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

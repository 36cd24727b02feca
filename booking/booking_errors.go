package booking

import (
	"errors"
	"fmt"
)

var ErrBookingNotFound = errors.New("booking not found")

var ErrSlotTaken = errors.New("time slot is already booked")

var ErrNotAllowed = errors.New("not allowed to perform this operation")

var ErrBookingCancelled = errors.New("booking is cancelled")

// ValidationError reports the first missing or malformed field of a
// create or update request.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field: %v", e.Field)
}

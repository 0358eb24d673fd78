package ledger

import (
	"errors"
	"strings"

	"cinema-seat-ledger/pkg/utils"
)

var (
	ErrValidation  = utils.ErrValidation
	ErrConflict    = errors.New("seats already booked")
	ErrNotFound    = errors.New("booking not found")
	ErrForbidden   = errors.New("booking belongs to another user")
	ErrUnavailable = utils.ErrUnavailable
)

// Coupon rejections. The messages are shown to clients as-is.
var (
	ErrCouponInvalid   = &ValidationError{Field: "coupon_code", Message: "Invalid coupon code"}
	ErrCouponExpired   = &ValidationError{Field: "coupon_code", Message: "Coupon has expired"}
	ErrCouponExhausted = &ValidationError{Field: "coupon_code", Message: "Coupon usage limit reached"}
)

// ErrMissingFields rejects a booking request without seats, movie, date or time.
var ErrMissingFields = &ValidationError{Message: "missing required fields"}

type ValidationError = utils.ValidationError

func invalid(field, msg string) *ValidationError {
	return utils.NewValidationError(field, msg)
}

// ConflictError lists the requested seats that are already claimed for the
// show. It matches ErrConflict.
type ConflictError struct {
	Seats []string
}

func (e *ConflictError) Error() string {
	return "seats already booked: " + strings.Join(e.Seats, ", ")
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

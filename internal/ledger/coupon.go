package ledger

import (
	"strings"
	"time"

	"cinema-seat-ledger/internal/data/entity"
)

// NormalizeCouponCode trims and upper-cases a code. Coupon codes are case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckCoupon reports why c cannot be applied at now, or nil if it can.
// A nil or inactive coupon is invalid.
func CheckCoupon(c *entity.Coupon, now time.Time) error {
	switch {
	case c == nil || !c.Active:
		return ErrCouponInvalid
	case now.After(c.ExpiryDate):
		return ErrCouponExpired
	case c.UsageCount >= c.MaxUsage:
		return ErrCouponExhausted
	}
	return nil
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Coupon struct {
	BaseNoDelete
	Code               string           `db:"code"` // stored upper-case
	DiscountPercentage *decimal.Decimal `db:"discount_percentage"`
	DiscountAmount     *decimal.Decimal `db:"discount_amount"`
	MaxUsage           int              `db:"max_usage"`
	UsageCount         int              `db:"usage_count"`
	ExpiryDate         time.Time        `db:"expiry_date"`
	Active             bool             `db:"active"`
}

// CouponRedemption records that a booking consumed one use of a coupon.
// BookingID is unique, which makes applying usage idempotent.
type CouponRedemption struct {
	BookingID  uuid.UUID `db:"booking_id"`
	CouponCode string    `db:"coupon_code"`
	CreatedAt  time.Time `db:"created_at"`
}

package response

import (
	"time"

	"cinema-seat-ledger/internal/data/entity"

	"github.com/shopspring/decimal"
)

type CouponResponse struct {
	ID                 string           `json:"id"`
	Code               string           `json:"code"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	MaxUsage           int              `json:"max_usage"`
	UsageCount         int              `json:"usage_count"`
	ExpiryDate         time.Time        `json:"expiry_date"`
	Active             bool             `json:"active"`
}

type ValidateCouponResponse struct {
	Valid  bool           `json:"valid"`
	Coupon CouponResponse `json:"coupon"`
}

func CouponToResponse(c *entity.Coupon) CouponResponse {
	return CouponResponse{
		ID:                 c.ID.String(),
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
		DiscountAmount:     c.DiscountAmount,
		MaxUsage:           c.MaxUsage,
		UsageCount:         c.UsageCount,
		ExpiryDate:         c.ExpiryDate,
		Active:             c.Active,
	}
}

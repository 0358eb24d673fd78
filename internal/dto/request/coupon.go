package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type ValidateCouponRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

type CreateCouponRequest struct {
	Code               string           `json:"code" validate:"required,min=3,max=50"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" validate:"required_without=DiscountAmount"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty" validate:"required_without=DiscountPercentage"`
	MaxUsage           int              `json:"max_usage" validate:"required,gt=0"`
	ExpiryDate         time.Time        `json:"expiry_date" validate:"required"`
}

package pricing

import (
	"cinema-seat-ledger/internal/data/entity"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ApplyDiscount returns the discount taken off subtotal by the coupon and
// the resulting total. A percentage coupon wins over a flat amount when both
// are set. The total never drops below zero.
func ApplyDiscount(subtotal decimal.Decimal, c *entity.Coupon) (discount, total decimal.Decimal) {
	if c == nil {
		return decimal.Zero, subtotal
	}

	switch {
	case c.DiscountPercentage != nil:
		discount = subtotal.Mul(*c.DiscountPercentage).Div(hundred)
	case c.DiscountAmount != nil:
		discount = *c.DiscountAmount
	default:
		discount = decimal.Zero
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	return discount, subtotal.Sub(discount)
}

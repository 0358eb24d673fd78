package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is a live claim on a set of seats for one show. Cancelling a
// booking deletes the row, so every stored booking counts toward conflicts.
type Booking struct {
	ID            uuid.UUID       `db:"id"`
	OrderID       string          `db:"order_id"`
	UserID        uuid.UUID       `db:"user_id"`
	MovieID       uuid.UUID       `db:"movie_id"`
	ShowDate      string          `db:"show_date"`
	ShowTime      string          `db:"show_time"`
	TheatreID     uuid.UUID       `db:"theatre_id"`
	ScreenID      uuid.UUID       `db:"screen_id"`
	Seats         []string        `db:"seats"` // JSON array, display order
	Subtotal      decimal.Decimal `db:"subtotal"`
	Discount      decimal.Decimal `db:"discount"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	CouponCode    *string         `db:"coupon_code"`
	PaymentMethod string          `db:"payment_method"`
	CreatedAt     time.Time       `db:"created_at"`
}

// ShowKey returns the show this booking claims seats for.
func (b *Booking) ShowKey() ShowKey {
	return ShowKey{
		MovieID:   b.MovieID,
		ShowDate:  b.ShowDate,
		ShowTime:  b.ShowTime,
		TheatreID: b.TheatreID,
		ScreenID:  b.ScreenID,
	}
}

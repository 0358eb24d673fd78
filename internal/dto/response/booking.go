package response

import (
	"time"

	"cinema-seat-ledger/internal/data/entity"

	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	MovieID       string          `json:"movie_id"`
	MovieTitle    string          `json:"movie_title,omitempty"`
	ShowDate      string          `json:"show_date"`
	ShowTime      string          `json:"show_time"`
	TheatreID     string          `json:"theatre_id,omitempty"`
	ScreenID      string          `json:"screen_id,omitempty"`
	Seats         []string        `json:"seats"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CouponCode    *string         `json:"coupon_code,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type BookedSeatsResponse struct {
	BookedSeats []string `json:"bookedSeats"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		OrderID:       b.OrderID,
		UserID:        b.UserID.String(),
		MovieID:       b.MovieID.String(),
		ShowDate:      b.ShowDate,
		ShowTime:      b.ShowTime,
		Seats:         b.Seats,
		Subtotal:      b.Subtotal,
		Discount:      b.Discount,
		TotalPrice:    b.TotalPrice,
		CouponCode:    b.CouponCode,
		PaymentMethod: b.PaymentMethod,
		CreatedAt:     b.CreatedAt,
	}
	if b.ShowKey().HasScreen() {
		resp.TheatreID = b.TheatreID.String()
		resp.ScreenID = b.ScreenID.String()
	}
	return resp
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}

// Package event holds the payloads published to the message queue.
package event

import "time"

const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
)

type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	MovieID    string    `json:"movie_id"`
	ShowDate   string    `json:"show_date"`
	ShowTime   string    `json:"show_time"`
	TheatreID  string    `json:"theatre_id,omitempty"`
	ScreenID   string    `json:"screen_id,omitempty"`
	Seats      []string  `json:"seats"`
	TotalPrice string    `json:"total_price"`
	CouponCode string    `json:"coupon_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingCancelledEvent struct {
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	MovieID     string    `json:"movie_id"`
	ShowDate    string    `json:"show_date"`
	ShowTime    string    `json:"show_time"`
	Seats       []string  `json:"seats"`
	CancelledBy string    `json:"cancelled_by"`
	CancelledAt time.Time `json:"cancelled_at"`
}

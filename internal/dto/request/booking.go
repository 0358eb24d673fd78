package request

import "github.com/shopspring/decimal"

type CreateBookingRequest struct {
	MovieID   string   `json:"movie_id" validate:"required,uuid"`
	ShowDate  string   `json:"show_date" validate:"required,showdate"`
	ShowTime  string   `json:"show_time" validate:"required,max=20"`
	TheatreID string   `json:"theatre_id,omitempty" validate:"required_with=ScreenID,omitempty,uuid"`
	ScreenID  string   `json:"screen_id,omitempty" validate:"required_with=TheatreID,omitempty,uuid"`
	Seats     []string `json:"seats" validate:"required,min=1,dive,required,max=8"`
	// TotalPrice is the amount the client displayed. When present it must
	// match the computed total.
	TotalPrice    *decimal.Decimal `json:"total_price,omitempty"`
	CouponCode    string           `json:"coupon_code,omitempty" validate:"omitempty,max=50"`
	PaymentMethod string           `json:"payment_method,omitempty" validate:"omitempty,max=50"`
}

// MissingRequired reports whether a field every booking needs is absent.
func (r CreateBookingRequest) MissingRequired() bool {
	return r.MovieID == "" || r.ShowDate == "" || r.ShowTime == "" || len(r.Seats) == 0
}

// BookedSeatsRequest selects one show. An empty ShowDate matches every date.
type BookedSeatsRequest struct {
	MovieID   string `validate:"required,uuid"`
	ShowTime  string `validate:"required"`
	ShowDate  string `validate:"omitempty,showdate"`
	TheatreID string `validate:"omitempty,uuid"`
	ScreenID  string `validate:"omitempty,uuid"`
}

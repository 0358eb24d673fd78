package adaptor

import (
	"cinema-seat-ledger/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Movie   *MovieHandler
	Screen  *ScreenHandler
	Coupon  *CouponHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Screen:  NewScreenHandler(service.Screen, log),
		Coupon:  NewCouponHandler(service.Coupon, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

package repository

import (
	"cinema-seat-ledger/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Movie   MovieRepository
	Screen  ScreenRepository
	Booking BookingRepository
	Coupon  CouponRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Screen:  NewScreenRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Coupon:  NewCouponRepository(db, log),
	}
}

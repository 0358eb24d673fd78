package usecase

import (
	"cinema-seat-ledger/internal/data/repository"
	"cinema-seat-ledger/internal/ledger"
	"cinema-seat-ledger/pkg/cache"
	"cinema-seat-ledger/pkg/queue"
	"cinema-seat-ledger/pkg/telemetry"
	"cinema-seat-ledger/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Movie   MovieService
	Screen  ScreenService
	Coupon  CouponService
	Booking BookingService
}

// Deps are the shared infrastructure handed to every service.
type Deps struct {
	Repo    *repository.Repository
	Config  *utils.Config
	Cache   cache.Cache
	Events  queue.Publisher
	Metrics *telemetry.BookingMetrics
}

// NewService builds the services and the ledger they share. Bookings are
// stored through repo.Booking and coupons resolve through the coupon service.
func NewService(deps Deps, log *zap.Logger) *Service {
	coupons := NewCouponService(deps.Repo.Coupon, log)
	seatLedger := ledger.New(deps.Repo.Booking, coupons, log)

	return &Service{
		Auth:    NewAuthService(deps.Repo.User, deps.Repo.Session, deps.Config, log),
		User:    NewUserService(deps.Repo.User, deps.Repo.Session, deps.Repo.Booking, log),
		Movie:   NewMovieService(deps.Repo.Movie, deps.Cache, log),
		Screen:  NewScreenService(deps.Repo.Screen, log),
		Coupon:  coupons,
		Booking: NewBookingService(seatLedger, deps.Repo, coupons, deps.Cache, deps.Events, deps.Metrics, log),
	}
}

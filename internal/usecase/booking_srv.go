package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-seat-ledger/internal/data/entity"
	"cinema-seat-ledger/internal/data/repository"
	"cinema-seat-ledger/internal/dto/event"
	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/dto/response"
	"cinema-seat-ledger/internal/ledger"
	"cinema-seat-ledger/pkg/cache"
	"cinema-seat-ledger/pkg/queue"
	"cinema-seat-ledger/pkg/telemetry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookedSeats(ctx context.Context, req *request.BookedSeatsRequest) (*response.BookedSeatsResponse, error)
	GetUserBookings(ctx context.Context, by ledger.Requester, userID string) ([]response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, by ledger.Requester) (*response.BookingResponse, error)

	// Admin
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
}

type bookingService struct {
	ledger  *ledger.Ledger
	movies  repository.MovieRepository
	screens repository.ScreenRepository
	coupons CouponService
	cache   cache.Cache
	events  queue.Publisher
	metrics *telemetry.BookingMetrics
	log     *zap.Logger
}

func NewBookingService(
	l *ledger.Ledger,
	repo *repository.Repository,
	coupons CouponService,
	c cache.Cache,
	events queue.Publisher,
	metrics *telemetry.BookingMetrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		ledger:  l,
		movies:  repo.Movie,
		screens: repo.Screen,
		coupons: coupons,
		cache:   c,
		events:  events,
		metrics: metrics,
		log:     log.With(zap.String("service", "booking")),
	}
}

func seatsCacheKey(key entity.ShowKey) string { return "seats:" + key.String() }

func userBookingsCacheKey(userID uuid.UUID) string { return "bookings:user:" + userID.String() }

const allBookingsCacheKey = "bookings:all"

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (resp *response.BookingResponse, err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordCreate(ctx, outcomeOf(err), len(req.Seats), time.Since(start))
	}()

	// 1. Resolve the show
	key, screen, movie, err := s.resolveShow(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. Claim seats
	booking, err := s.ledger.CreateBooking(ctx, ledger.CreateParams{
		UserID:        userID,
		Key:           key,
		Seats:         req.Seats,
		BasePrice:     movie.Price,
		Screen:        screen,
		CouponCode:    req.CouponCode,
		PaymentMethod: req.PaymentMethod,
		ExpectedTotal: req.TotalPrice,
	})
	if err != nil {
		if !errors.Is(err, ledger.ErrConflict) && !errors.Is(err, ledger.ErrValidation) {
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("show", key.String()),
			)
		}
		return nil, err
	}

	// The booking is committed from here on. Follow-up failures are logged
	// and never undo it.
	detached := context.WithoutCancel(ctx)

	// 3. Coupon usage
	if booking.CouponCode != nil {
		if err := s.coupons.ApplyUsage(detached, *booking.CouponCode, booking.ID); err != nil {
			s.log.Warn("Failed to apply coupon usage",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("code", *booking.CouponCode),
			)
		}
	}

	// 4. Drop cached reads that no longer hold
	s.invalidate(detached, booking)

	// 5. Notify
	s.publish(detached, event.BookingCreated, event.BookingCreatedEvent{
		BookingID:  booking.ID.String(),
		OrderID:    booking.OrderID,
		UserID:     booking.UserID.String(),
		MovieID:    booking.MovieID.String(),
		ShowDate:   booking.ShowDate,
		ShowTime:   booking.ShowTime,
		TheatreID:  optionalID(booking.TheatreID),
		ScreenID:   optionalID(booking.ScreenID),
		Seats:      booking.Seats,
		TotalPrice: booking.TotalPrice.StringFixed(2),
		CouponCode: derefString(booking.CouponCode),
		CreatedAt:  booking.CreatedAt,
	})

	out := response.BookingToResponse(booking)
	out.MovieTitle = movie.Title
	return &out, nil
}

// resolveShow turns the request into a show key, loading the movie for its
// base price and the screen for its layout when one is named.
func (s *bookingService) resolveShow(ctx context.Context, req *request.CreateBookingRequest) (entity.ShowKey, *entity.Screen, *entity.Movie, error) {
	var key entity.ShowKey

	movieID, err := parseID("movie_id", req.MovieID)
	if err != nil {
		return key, nil, nil, err
	}
	key = entity.ShowKey{MovieID: movieID, ShowDate: req.ShowDate, ShowTime: req.ShowTime}

	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie for booking", zap.Error(err), zap.String("movie_id", req.MovieID))
		return key, nil, nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return key, nil, nil, notFound("movie")
	}

	if req.ScreenID == "" && req.TheatreID == "" {
		return key, nil, movie, nil
	}

	theatreID, err := parseID("theatre_id", req.TheatreID)
	if err != nil {
		return key, nil, nil, err
	}
	screenID, err := parseID("screen_id", req.ScreenID)
	if err != nil {
		return key, nil, nil, err
	}

	screen, err := s.screens.FindByID(ctx, screenID)
	if err != nil {
		s.log.Error("Failed to get screen for booking", zap.Error(err), zap.String("screen_id", req.ScreenID))
		return key, nil, nil, fmt.Errorf("get screen %s: %w", screenID, err)
	}
	if screen == nil {
		return key, nil, nil, notFound("screen")
	}
	if screen.TheatreID != theatreID {
		return key, nil, nil, &ledger.ValidationError{Field: "screen_id", Message: "screen does not belong to theatre"}
	}

	key.TheatreID = theatreID
	key.ScreenID = screenID
	return key, screen, movie, nil
}

func (s *bookingService) GetBookedSeats(ctx context.Context, req *request.BookedSeatsRequest) (*response.BookedSeatsResponse, error) {
	movieID, err := parseID("movie_id", req.MovieID)
	if err != nil {
		return nil, err
	}
	key := entity.ShowKey{MovieID: movieID, ShowDate: req.ShowDate, ShowTime: req.ShowTime}
	if req.TheatreID != "" || req.ScreenID != "" {
		if key.TheatreID, err = parseID("theatre_id", req.TheatreID); err != nil {
			return nil, err
		}
		if key.ScreenID, err = parseID("screen_id", req.ScreenID); err != nil {
			return nil, err
		}
	}

	cacheKey := seatsCacheKey(key)

	seats, err := s.ledger.BookedSeats(ctx, key)
	if err != nil {
		if !errors.Is(err, ledger.ErrUnavailable) {
			s.log.Error("Failed to get booked seats", zap.Error(err), zap.String("show", key.String()))
			return nil, err
		}

		var cached response.BookedSeatsResponse
		if hit, cerr := s.cache.GetJSON(ctx, cacheKey, &cached); cerr == nil && hit {
			s.log.Warn("Storage unavailable, serving cached booked seats", zap.String("show", key.String()))
			return &cached, nil
		}
		s.log.Warn("Storage unavailable, serving no booked seats", zap.String("show", key.String()))
		return &response.BookedSeatsResponse{BookedSeats: []string{}}, nil
	}

	resp := &response.BookedSeatsResponse{BookedSeats: seats}
	if err := s.cache.SetJSON(ctx, cacheKey, resp); err != nil {
		s.log.Warn("Failed to cache booked seats", zap.Error(err))
	}

	return resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, by ledger.Requester, userID string) ([]response.BookingResponse, error) {
	id, err := parseID("user_id", userID)
	if err != nil {
		return nil, err
	}
	if !by.Admin && by.UserID != id {
		return nil, ledger.ErrForbidden
	}

	return s.listBookings(ctx, userBookingsCacheKey(id), func() ([]*entity.Booking, error) {
		return s.ledger.ListBookingsForUser(ctx, id)
	})
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	return s.listBookings(ctx, allBookingsCacheKey, func() ([]*entity.Booking, error) {
		return s.ledger.ListAllBookings(ctx)
	})
}

// listBookings runs list and keeps its result as the fallback for outages.
func (s *bookingService) listBookings(ctx context.Context, cacheKey string, list func() ([]*entity.Booking, error)) ([]response.BookingResponse, error) {
	bookings, err := list()
	if err != nil {
		if !errors.Is(err, ledger.ErrUnavailable) {
			s.log.Error("Failed to list bookings", zap.Error(err), zap.String("cache_key", cacheKey))
			return nil, err
		}

		var cached []response.BookingResponse
		if hit, cerr := s.cache.GetJSON(ctx, cacheKey, &cached); cerr == nil && hit {
			s.log.Warn("Storage unavailable, serving cached bookings", zap.String("cache_key", cacheKey))
			return cached, nil
		}
		s.log.Warn("Storage unavailable, serving no bookings", zap.String("cache_key", cacheKey))
		return []response.BookingResponse{}, nil
	}

	resp := response.BookingsToResponse(bookings)
	if err := s.cache.SetJSON(ctx, cacheKey, resp); err != nil {
		s.log.Warn("Failed to cache bookings", zap.Error(err))
	}
	return resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, by ledger.Requester) (*response.BookingResponse, error) {
	id, err := parseID("booking_id", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.ledger.CancelBooking(ctx, id, by)
	if err != nil {
		if !errors.Is(err, ledger.ErrNotFound) && !errors.Is(err, ledger.ErrForbidden) {
			s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		}
		return nil, err
	}

	detached := context.WithoutCancel(ctx)
	s.invalidate(detached, booking)
	s.metrics.RecordCancel(detached, by.Admin)

	s.publish(detached, event.BookingCancelled, event.BookingCancelledEvent{
		BookingID:   booking.ID.String(),
		UserID:      booking.UserID.String(),
		MovieID:     booking.MovieID.String(),
		ShowDate:    booking.ShowDate,
		ShowTime:    booking.ShowTime,
		Seats:       booking.Seats,
		CancelledBy: by.UserID.String(),
		CancelledAt: time.Now().UTC(),
	})

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// invalidate drops every cached read that includes b: the exact show, the
// any-date view of it, and the owner's and admin's lists.
func (s *bookingService) invalidate(ctx context.Context, b *entity.Booking) {
	key := b.ShowKey()
	anyDate := key
	anyDate.ShowDate = ""

	if err := s.cache.Delete(ctx,
		seatsCacheKey(key),
		seatsCacheKey(anyDate),
		userBookingsCacheKey(b.UserID),
		allBookingsCacheKey,
	); err != nil {
		s.log.Warn("Failed to invalidate booking cache", zap.Error(err), zap.String("booking_id", b.ID.String()))
	}
}

func (s *bookingService) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.events.Publish(ctx, routingKey, payload); err != nil {
		s.log.Warn("Failed to publish event", zap.Error(err), zap.String("routing_key", routingKey))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeCreated
	case errors.Is(err, ledger.ErrConflict):
		return telemetry.OutcomeConflict
	case errors.Is(err, ledger.ErrValidation), errors.Is(err, ErrNotFound):
		return telemetry.OutcomeInvalid
	case errors.Is(err, ledger.ErrUnavailable):
		return telemetry.OutcomeUnavailable
	default:
		return telemetry.OutcomeError
	}
}

func optionalID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

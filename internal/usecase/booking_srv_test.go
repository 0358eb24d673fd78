package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cinema-seat-ledger/internal/data/entity"
	"cinema-seat-ledger/internal/dto/event"
	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/dto/response"
	"cinema-seat-ledger/internal/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	svc     *bookingService
	movies  *mockMovieRepo
	screens *mockScreenRepo
	coupons *mockCouponRepo
	cache   *memCache
	events  *recordingPublisher
	movie   *entity.Movie
}

func newBookingFixture(t *testing.T, store ledger.Store) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		movies:  new(mockMovieRepo),
		screens: new(mockScreenRepo),
		coupons: new(mockCouponRepo),
		cache:   newMemCache(),
		events:  &recordingPublisher{},
		movie: &entity.Movie{
			Base:  entity.Base{ID: uuid.New()},
			Title: "Dune: Part Two",
			Price: decimal.NewFromInt(250),
		},
	}
	f.movies.On("FindByID", mock.Anything, f.movie.ID).Return(f.movie, nil).Maybe()

	coupons := newCouponService(f.coupons, zap.NewNop(), func() time.Time { return couponNow })
	f.svc = &bookingService{
		ledger:  ledger.New(store, coupons, zap.NewNop()),
		movies:  f.movies,
		screens: f.screens,
		coupons: coupons,
		cache:   f.cache,
		events:  f.events,
		log:     zap.NewNop(),
	}
	return f
}

func (f *bookingFixture) request(seats ...string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		MovieID:       f.movie.ID.String(),
		ShowDate:      "2025-06-01",
		ShowTime:      "18:00",
		Seats:         seats,
		PaymentMethod: "card",
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	f := newBookingFixture(t, ledger.NewMemoryStore())
	ctx := context.Background()
	user := uuid.New()

	key := entity.ShowKey{MovieID: f.movie.ID, ShowDate: "2025-06-01", ShowTime: "18:00"}
	anyDate := key
	anyDate.ShowDate = ""
	require.NoError(t, f.cache.SetJSON(ctx, seatsCacheKey(key), response.BookedSeatsResponse{BookedSeats: []string{}}))
	require.NoError(t, f.cache.SetJSON(ctx, seatsCacheKey(anyDate), response.BookedSeatsResponse{BookedSeats: []string{}}))

	resp, err := f.svc.CreateBooking(ctx, user, f.request("C1", "C2"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(resp.TotalPrice))
	assert.Equal(t, "Dune: Part Two", resp.MovieTitle)
	assert.Equal(t, user.String(), resp.UserID)

	assert.False(t, f.cache.has(seatsCacheKey(key)))
	assert.False(t, f.cache.has(seatsCacheKey(anyDate)))

	require.Len(t, f.events.events, 1)
	assert.Equal(t, event.BookingCreated, f.events.events[0].routingKey)
	created := f.events.events[0].event.(event.BookingCreatedEvent)
	assert.Equal(t, "500.00", created.TotalPrice)
	assert.Equal(t, []string{"C1", "C2"}, created.Seats)

	_, err = f.svc.CreateBooking(ctx, uuid.New(), f.request("C2", "D1"))
	var conflict *ledger.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"C2"}, conflict.Seats)
	assert.Len(t, f.events.events, 1)

	seats, err := f.svc.GetBookedSeats(ctx, &request.BookedSeatsRequest{MovieID: f.movie.ID.String(), ShowTime: "18:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "C2"}, seats.BookedSeats)
}

func TestBookingService_CreateBookingWithCoupon(t *testing.T) {
	f := newBookingFixture(t, ledger.NewMemoryStore())
	f.coupons.On("FindByCode", mock.Anything, "SAVE10").Return(&entity.Coupon{
		Code:               "SAVE10",
		DiscountPercentage: percent(10),
		MaxUsage:           5,
		ExpiryDate:         couponNow.Add(time.Hour),
		Active:             true,
	}, nil)
	f.coupons.On("Redeem", mock.Anything, "SAVE10", mock.AnythingOfType("uuid.UUID")).Return(true, nil).Once()

	req := f.request("C1", "C2")
	req.CouponCode = "save10"
	expected := decimal.NewFromInt(450)
	req.TotalPrice = &expected

	resp, err := f.svc.CreateBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(resp.Discount))
	assert.True(t, expected.Equal(resp.TotalPrice))
	f.coupons.AssertExpectations(t)
}

func TestBookingService_CouponRedeemFailureKeepsBooking(t *testing.T) {
	f := newBookingFixture(t, ledger.NewMemoryStore())
	f.coupons.On("FindByCode", mock.Anything, "SAVE10").Return(&entity.Coupon{
		Code:               "SAVE10",
		DiscountPercentage: percent(10),
		MaxUsage:           1,
		ExpiryDate:         couponNow.Add(time.Hour),
		Active:             true,
	}, nil)
	f.coupons.On("Redeem", mock.Anything, "SAVE10", mock.Anything).Return(false, ledger.ErrCouponExhausted)

	req := f.request("A1")
	req.CouponCode = "SAVE10"

	resp, err := f.svc.CreateBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

func TestBookingService_CreateBookingRejects(t *testing.T) {
	t.Run("unknown movie", func(t *testing.T) {
		f := newBookingFixture(t, ledger.NewMemoryStore())
		missing := uuid.New()
		f.movies.On("FindByID", mock.Anything, missing).Return(nil, nil)

		req := f.request("A1")
		req.MovieID = missing.String()
		_, err := f.svc.CreateBooking(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("movie lookup unavailable", func(t *testing.T) {
		f := newBookingFixture(t, ledger.NewMemoryStore())
		down := uuid.New()
		f.movies.On("FindByID", mock.Anything, down).Return(nil, fmt.Errorf("find movie: %w", ledger.ErrUnavailable))

		req := f.request("A1")
		req.MovieID = down.String()
		_, err := f.svc.CreateBooking(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, ledger.ErrUnavailable)
		assert.Empty(t, f.events.events)
	})

	t.Run("screen of another theatre", func(t *testing.T) {
		f := newBookingFixture(t, ledger.NewMemoryStore())
		screen := &entity.Screen{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
			TheatreID:    uuid.New(),
			Name:         "Screen 2",
			Type:         entity.ScreenStandard,
			Rows:         []string{"A"},
			SeatsPerRow:  10,
		}
		f.screens.On("FindByID", mock.Anything, screen.ID).Return(screen, nil)

		req := f.request("A1")
		req.TheatreID = uuid.New().String()
		req.ScreenID = screen.ID.String()
		_, err := f.svc.CreateBooking(context.Background(), uuid.New(), req)

		var ve *ledger.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "screen_id", ve.Field)
	})

	t.Run("total mismatch", func(t *testing.T) {
		f := newBookingFixture(t, ledger.NewMemoryStore())
		req := f.request("A1")
		wrong := decimal.NewFromInt(1)
		req.TotalPrice = &wrong

		_, err := f.svc.CreateBooking(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, ledger.ErrValidation)
	})
}

func TestBookingService_ScreenBooking(t *testing.T) {
	f := newBookingFixture(t, ledger.NewMemoryStore())
	theatre := uuid.New()
	screen := &entity.Screen{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		TheatreID:    theatre,
		Name:         "Premium 1",
		Type:         entity.ScreenPremium,
		Rows:         []string{"A", "B", "C", "D", "E", "F"},
		SeatsPerRow:  8,
		PremiumRows:  []string{"E", "F"},
	}
	f.screens.On("FindByID", mock.Anything, screen.ID).Return(screen, nil)

	req := f.request("F8")
	req.TheatreID = theatre.String()
	req.ScreenID = screen.ID.String()

	resp, err := f.svc.CreateBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	// 250 x 1.2 premium row x 1.3 premium screen
	assert.True(t, decimal.NewFromInt(390).Equal(resp.TotalPrice), "total %s", resp.TotalPrice)
	assert.Equal(t, screen.ID.String(), resp.ScreenID)
	assert.Equal(t, theatre.String(), resp.TheatreID)

	// same seat on the plain show of that movie is still free
	plain, err := f.svc.CreateBooking(context.Background(), uuid.New(), f.request("F8"))
	require.NoError(t, err)
	assert.Empty(t, plain.ScreenID)
	assert.Empty(t, plain.TheatreID)
}

func TestBookingService_CancelBooking(t *testing.T) {
	f := newBookingFixture(t, ledger.NewMemoryStore())
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.svc.CreateBooking(ctx, owner, f.request("B1", "B2"))
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, created.ID, ledger.Requester{UserID: uuid.New()})
	assert.ErrorIs(t, err, ledger.ErrForbidden)

	cancelled, err := f.svc.CancelBooking(ctx, created.ID, ledger.Requester{UserID: owner})
	require.NoError(t, err)
	assert.Equal(t, created.ID, cancelled.ID)

	require.Len(t, f.events.events, 2)
	assert.Equal(t, event.BookingCancelled, f.events.events[1].routingKey)

	_, err = f.svc.CancelBooking(ctx, created.ID, ledger.Requester{UserID: owner})
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = f.svc.CreateBooking(ctx, uuid.New(), f.request("B2"))
	assert.NoError(t, err)
}

func TestBookingService_GetUserBookings(t *testing.T) {
	f := newBookingFixture(t, ledger.NewMemoryStore())
	ctx := context.Background()
	owner := uuid.New()

	_, err := f.svc.CreateBooking(ctx, owner, f.request("A1"))
	require.NoError(t, err)

	mine, err := f.svc.GetUserBookings(ctx, ledger.Requester{UserID: owner}, owner.String())
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.GetUserBookings(ctx, ledger.Requester{UserID: uuid.New()}, owner.String())
	assert.ErrorIs(t, err, ledger.ErrForbidden)

	asAdmin, err := f.svc.GetUserBookings(ctx, ledger.Requester{UserID: uuid.New(), Admin: true}, owner.String())
	require.NoError(t, err)
	assert.Len(t, asAdmin, 1)
}

// downStore fails every read as an unreachable database would.
type downStore struct {
	*ledger.MemoryStore
}

func (downStore) BookedSeats(context.Context, entity.ShowKey) ([]string, error) {
	return nil, fmt.Errorf("query: %w", ledger.ErrUnavailable)
}

func (downStore) ListByUser(context.Context, uuid.UUID) ([]*entity.Booking, error) {
	return nil, fmt.Errorf("query: %w", ledger.ErrUnavailable)
}

func (downStore) ListAll(context.Context) ([]*entity.Booking, error) {
	return nil, fmt.Errorf("query: %w", ledger.ErrUnavailable)
}

func TestBookingService_ReadsDegrade(t *testing.T) {
	f := newBookingFixture(t, downStore{ledger.NewMemoryStore()})
	ctx := context.Background()
	req := &request.BookedSeatsRequest{MovieID: f.movie.ID.String(), ShowDate: "2025-06-01", ShowTime: "18:00"}

	seats, err := f.svc.GetBookedSeats(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, seats.BookedSeats)
	assert.NotNil(t, seats.BookedSeats)

	key := entity.ShowKey{MovieID: f.movie.ID, ShowDate: "2025-06-01", ShowTime: "18:00"}
	require.NoError(t, f.cache.SetJSON(ctx, seatsCacheKey(key), response.BookedSeatsResponse{BookedSeats: []string{"D4"}}))

	seats, err = f.svc.GetBookedSeats(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"D4"}, seats.BookedSeats)

	all, err := f.svc.GetAllBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// writes fail fast
	_, err = f.svc.CreateBooking(ctx, uuid.New(), f.request("A1"))
	assert.ErrorIs(t, err, ledger.ErrUnavailable)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, "created", outcomeOf(nil))
	assert.Equal(t, "conflict", outcomeOf(&ledger.ConflictError{Seats: []string{"A1"}}))
	assert.Equal(t, "invalid", outcomeOf(ledger.ErrCouponExpired))
	assert.Equal(t, "invalid", outcomeOf(notFound("movie")))
	assert.Equal(t, "unavailable", outcomeOf(fmt.Errorf("x: %w", ledger.ErrUnavailable)))
	assert.Equal(t, "error", outcomeOf(fmt.Errorf("boom")))
}

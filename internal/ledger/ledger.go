// Package ledger is the single authority over seat claims. It checks a
// booking request against the seats already claimed for the same show and
// commits it in one step, so two live bookings never share a seat.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"cinema-seat-ledger/internal/data/entity"
	"cinema-seat-ledger/internal/pricing"
	"cinema-seat-ledger/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const showDateLayout = "2006-01-02"

type Ledger struct {
	store   Store
	coupons CouponResolver
	locks   *keyLock
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Ledger)

// WithClock overrides the clock used for booking timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New builds a ledger over store. coupons may be nil, in which case every
// coupon code is rejected as invalid.
func New(store Store, coupons CouponResolver, log *zap.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		store:   store,
		coupons: coupons,
		locks:   newKeyLock(),
		now:     time.Now,
		log:     log.With(zap.String("component", "ledger")),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type CreateParams struct {
	UserID    uuid.UUID
	Key       entity.ShowKey
	Seats     []string
	BasePrice decimal.Decimal
	// Screen is the layout of Key's screen. When nil the default row tiers
	// apply and seat labels are not checked against a layout.
	Screen        *entity.Screen
	CouponCode    string
	PaymentMethod string
	// ExpectedTotal, when set, must equal the computed total at cent
	// precision or nothing is committed.
	ExpectedTotal *decimal.Decimal
}

// Requester is the caller of a cancellation.
type Requester struct {
	UserID uuid.UUID
	Admin  bool
}

// BookedSeats returns the sorted, de-duplicated seats claimed for key.
func (l *Ledger) BookedSeats(ctx context.Context, key entity.ShowKey) ([]string, error) {
	seats, err := l.store.BookedSeats(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get booked seats %s: %w", key, err)
	}
	slices.Sort(seats)
	return slices.Compact(seats), nil
}

// CreateBooking claims p.Seats for p.Key and stores the priced booking.
// It returns a *ValidationError for bad input or an unusable coupon, and a
// *ConflictError naming the seats that are already taken.
func (l *Ledger) CreateBooking(ctx context.Context, p CreateParams) (*entity.Booking, error) {
	seats, err := validateCreate(p)
	if err != nil {
		return nil, err
	}

	unlock, err := l.locks.Lock(ctx, p.Key)
	if err != nil {
		return nil, fmt.Errorf("lock show %s: %w", p.Key, err)
	}
	defer unlock()

	// Claims must be read after the lock is held.
	claimed, err := l.store.BookedSeats(ctx, p.Key)
	if err != nil {
		return nil, fmt.Errorf("get booked seats %s: %w", p.Key, err)
	}
	claimedSet := make(map[string]struct{}, len(claimed))
	for _, seat := range claimed {
		claimedSet[seat] = struct{}{}
	}
	if taken := overlap(seats, claimedSet); len(taken) > 0 {
		l.log.Info("Seats already booked",
			zap.String("show", p.Key.String()),
			zap.Strings("seats", taken),
		)
		return nil, &ConflictError{Seats: taken}
	}

	tiers, screenType := pricing.DefaultRowTiers(), entity.ScreenType("")
	if p.Screen != nil {
		tiers, screenType = pricing.RowTiersForScreen(p.Screen), p.Screen.Type
	}
	subtotal := pricing.TotalForSeats(seats, p.BasePrice, tiers, screenType)

	var (
		coupon     *entity.Coupon
		couponCode *string
	)
	if code := NormalizeCouponCode(p.CouponCode); code != "" {
		if l.coupons == nil {
			return nil, ErrCouponInvalid
		}
		coupon, err = l.coupons.Resolve(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("resolve coupon %s: %w", code, err)
		}
		couponCode = &code
	}
	discount, total := pricing.ApplyDiscount(subtotal, coupon)

	if p.ExpectedTotal != nil && !p.ExpectedTotal.Round(2).Equal(total.Round(2)) {
		return nil, invalid("total_price", fmt.Sprintf("total price does not match, expected %s", total.StringFixed(2)))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate booking id: %w", err)
	}
	now := l.now()

	booking := &entity.Booking{
		ID:            id,
		OrderID:       utils.GenerateOrderID(id, now),
		UserID:        p.UserID,
		MovieID:       p.Key.MovieID,
		ShowDate:      p.Key.ShowDate,
		ShowTime:      p.Key.ShowTime,
		TheatreID:     p.Key.TheatreID,
		ScreenID:      p.Key.ScreenID,
		Seats:         seats,
		Subtotal:      subtotal,
		Discount:      discount,
		TotalPrice:    total,
		CouponCode:    couponCode,
		PaymentMethod: p.PaymentMethod,
		CreatedAt:     now,
	}

	if err := l.store.Insert(ctx, booking); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			// Another process committed between our read and insert.
			l.log.Warn("Seat claim rejected by store",
				zap.String("show", p.Key.String()),
				zap.Strings("seats", conflict.Seats),
			)
			return nil, err
		}
		return nil, fmt.Errorf("insert booking %s: %w", id, err)
	}

	l.log.Info("Booking committed",
		zap.String("booking_id", id.String()),
		zap.String("show", p.Key.String()),
		zap.Strings("seats", seats),
		zap.String("total_price", total.String()),
	)

	return booking, nil
}

// CancelBooking deletes a booking and frees its seats. Only the owner or an
// admin may cancel. Unknown ids return ErrNotFound, including a second
// cancel of the same booking.
func (l *Ledger) CancelBooking(ctx context.Context, id uuid.UUID, by Requester) (*entity.Booking, error) {
	booking, err := l.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}

	if !by.Admin && booking.UserID != by.UserID {
		return nil, ErrForbidden
	}

	if err := l.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete booking %s: %w", id, err)
	}

	l.log.Info("Booking cancelled",
		zap.String("booking_id", id.String()),
		zap.String("show", booking.ShowKey().String()),
		zap.Bool("by_admin", by.Admin),
	)

	return booking, nil
}

func (l *Ledger) ListBookingsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	bookings, err := l.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

func (l *Ledger) ListAllBookings(ctx context.Context) ([]*entity.Booking, error) {
	bookings, err := l.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// validateCreate checks p and returns its seat labels trimmed and upper-cased.
func validateCreate(p CreateParams) ([]string, error) {
	if len(p.Seats) == 0 || p.Key.MovieID == uuid.Nil || p.Key.ShowDate == "" || p.Key.ShowTime == "" {
		return nil, ErrMissingFields
	}
	if _, err := time.Parse(showDateLayout, p.Key.ShowDate); err != nil {
		return nil, invalid("show_date", "show date must be formatted as YYYY-MM-DD")
	}
	if p.BasePrice.IsNegative() {
		return nil, invalid("base_price", "base price must not be negative")
	}
	if p.Screen != nil && p.Screen.ID != p.Key.ScreenID {
		return nil, invalid("screen_id", "screen does not belong to this show")
	}

	seats := make([]string, 0, len(p.Seats))
	seen := make(map[string]struct{}, len(p.Seats))
	for _, raw := range p.Seats {
		seat := strings.ToUpper(strings.TrimSpace(raw))
		if seat == "" {
			return nil, invalid("seats", "seat label must not be empty")
		}
		if _, dup := seen[seat]; dup {
			return nil, invalid("seats", fmt.Sprintf("seat %s requested more than once", seat))
		}
		if p.Screen != nil && !onScreen(seat, p.Screen) {
			return nil, invalid("seats", fmt.Sprintf("seat %s does not exist on screen %s", seat, p.Screen.Name))
		}
		seen[seat] = struct{}{}
		seats = append(seats, seat)
	}
	return seats, nil
}

func onScreen(seat string, s *entity.Screen) bool {
	row := pricing.RowOf(seat)
	if !slices.ContainsFunc(s.Rows, func(r string) bool { return strings.EqualFold(r, row) }) {
		return false
	}
	n, err := strconv.Atoi(seat[1:])
	return err == nil && n >= 1 && n <= s.SeatsPerRow
}

package ledger

import (
	"context"

	"cinema-seat-ledger/internal/data/entity"

	"github.com/google/uuid"
)

// Store persists bookings. Implementations must make Insert an atomic
// check-and-commit: if any seat of b is already claimed under b's ShowKey it
// returns a *ConflictError and stores nothing.
//
// Lookups of unknown ids return ErrNotFound. Failures caused by the backing
// service being unreachable should wrap ErrUnavailable.
type Store interface {
	// BookedSeats returns every seat claimed by live bookings matching key.
	// An empty key.ShowDate matches all dates.
	BookedSeats(ctx context.Context, key entity.ShowKey) ([]string, error)
	Insert(ctx context.Context, b *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// ListByUser and ListAll return newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	ListAll(ctx context.Context) ([]*entity.Booking, error)
}

// CouponResolver looks up a usable coupon by code. It returns ErrCouponInvalid,
// ErrCouponExpired or ErrCouponExhausted when the coupon cannot be applied.
type CouponResolver interface {
	Resolve(ctx context.Context, code string) (*entity.Coupon, error)
}

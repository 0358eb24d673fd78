package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-seat-ledger/internal/data/entity"
	"cinema-seat-ledger/internal/ledger"
	"cinema-seat-ledger/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BookingRepository is the PostgreSQL ledger.Store. Seats are kept twice:
// as a JSON array on the booking for display order, and one row per seat in
// booking_seats whose primary key is (show key, seat).
type BookingRepository interface {
	ledger.Store
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, order_id, user_id, movie_id, show_date, show_time, theatre_id, screen_id,
	seats, subtotal::text, discount::text, total_price::text, coupon_code, payment_method, created_at`

const showKeyFilter = `
	movie_id = $1 AND ($2 = '' OR show_date = $2) AND show_time = $3
	AND theatre_id = $4 AND screen_id = $5`

func (r *bookingRepository) BookedSeats(ctx context.Context, key entity.ShowKey) ([]string, error) {
	query := `SELECT seat FROM booking_seats WHERE ` + showKeyFilter

	rows, err := r.db.Query(ctx, query, key.MovieID, key.ShowDate, key.ShowTime, key.TheatreID, key.ScreenID)
	if err != nil {
		r.log.Error("Failed to query booked seats",
			zap.Error(err),
			zap.String("show", key.String()),
		)
		return nil, fmt.Errorf("query booked seats %s: %w", key, classify(err))
	}

	seats, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan booked seats %s: %w", key, classify(err))
	}
	if seats == nil {
		seats = []string{}
	}

	return seats, nil
}

// Insert commits b in one transaction. A transaction-scoped advisory lock on
// the show key serialises writers across processes, and the booking_seats
// primary key rejects anything that still slips through.
func (r *bookingRepository) Insert(ctx context.Context, b *entity.Booking) error {
	key := b.ShowKey()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", classify(err))
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key.String()); err != nil {
		return fmt.Errorf("lock show %s: %w", key, classify(err))
	}

	taken, err := r.takenSeats(ctx, tx, key, b.Seats)
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		return &ledger.ConflictError{Seats: taken}
	}

	insertBooking := `
		INSERT INTO bookings (id, order_id, user_id, movie_id, show_date, show_time, theatre_id, screen_id,
		                      seats, subtotal, discount, total_price, coupon_code, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.Exec(ctx, insertBooking,
		b.ID,
		b.OrderID,
		b.UserID,
		b.MovieID,
		b.ShowDate,
		b.ShowTime,
		b.TheatreID,
		b.ScreenID,
		b.Seats,
		b.Subtotal.String(),
		b.Discount.String(),
		b.TotalPrice.String(),
		b.CouponCode,
		b.PaymentMethod,
		b.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("order_id", b.OrderID),
			zap.String("user_id", b.UserID.String()),
		)
		return fmt.Errorf("insert booking %s: %w", b.OrderID, classify(err))
	}

	seatRows := make([][]any, len(b.Seats))
	for i, seat := range b.Seats {
		seatRows[i] = []any{b.ID, b.MovieID, b.ShowDate, b.ShowTime, b.TheatreID, b.ScreenID, seat}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"booking_seats"},
		[]string{"booking_id", "movie_id", "show_date", "show_time", "theatre_id", "screen_id", "seat"},
		pgx.CopyFromRows(seatRows),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return r.conflictAfterViolation(ctx, b)
		}
		return fmt.Errorf("insert booking seats %s: %w", b.OrderID, classify(err))
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return r.conflictAfterViolation(ctx, b)
		}
		return fmt.Errorf("commit booking %s: %w", b.OrderID, classify(err))
	}

	return nil
}

func (r *bookingRepository) takenSeats(ctx context.Context, q pgx.Tx, key entity.ShowKey, seats []string) ([]string, error) {
	query := `SELECT seat FROM booking_seats WHERE ` + showKeyFilter + ` AND seat = ANY($6)`

	rows, err := q.Query(ctx, query, key.MovieID, key.ShowDate, key.ShowTime, key.TheatreID, key.ScreenID, seats)
	if err != nil {
		return nil, fmt.Errorf("check seats %s: %w", key, classify(err))
	}
	claimed, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan claimed seats %s: %w", key, classify(err))
	}

	return intersect(seats, claimed), nil
}

// conflictAfterViolation reports which seats beat us once the transaction
// has been aborted by the unique index.
func (r *bookingRepository) conflictAfterViolation(ctx context.Context, b *entity.Booking) error {
	r.log.Warn("Seat unique index rejected booking", zap.String("order_id", b.OrderID))

	claimed, err := r.BookedSeats(ctx, b.ShowKey())
	if err != nil {
		return &ledger.ConflictError{Seats: b.Seats}
	}
	if taken := intersect(b.Seats, claimed); len(taken) > 0 {
		return &ledger.ConflictError{Seats: taken}
	}
	return &ledger.ConflictError{Seats: b.Seats}
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id, classify(err))
	}

	if result.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, classify(err))
	}

	return booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	bookings, err := r.queryBookings(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list bookings for user %s: %w", userID, err)
	}

	return bookings, nil
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC, id DESC`

	bookings, err := r.queryBookings(ctx, query)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings for user %s: %w", userID, classify(err))
	}

	return count, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	bookings := []*entity.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return bookings, nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		b                         entity.Booking
		subtotal, discount, total string
	)
	err := row.Scan(
		&b.ID,
		&b.OrderID,
		&b.UserID,
		&b.MovieID,
		&b.ShowDate,
		&b.ShowTime,
		&b.TheatreID,
		&b.ScreenID,
		&b.Seats,
		&subtotal,
		&discount,
		&total,
		&b.CouponCode,
		&b.PaymentMethod,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if b.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("parse subtotal: %w", err)
	}
	if b.Discount, err = decimal.NewFromString(discount); err != nil {
		return nil, fmt.Errorf("parse discount: %w", err)
	}
	if b.TotalPrice, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total price: %w", err)
	}

	return &b, nil
}

// intersect returns the elements of requested that appear in claimed, in
// request order.
func intersect(requested, claimed []string) []string {
	set := make(map[string]struct{}, len(claimed))
	for _, seat := range claimed {
		set[seat] = struct{}{}
	}

	var out []string
	for _, seat := range requested {
		if _, ok := set[seat]; ok {
			out = append(out, seat)
		}
	}
	return out
}

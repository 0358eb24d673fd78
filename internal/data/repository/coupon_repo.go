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

var ErrCouponCodeTaken = errors.New("coupon code already exists")

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)
	FindAll(ctx context.Context) ([]*entity.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Redeem records one use of the coupon for bookingID. It reports false
	// without touching the counter when the booking already redeemed it, and
	// returns ledger.ErrCouponExhausted when the usage cap is reached.
	Redeem(ctx context.Context, code string, bookingID uuid.UUID) (bool, error)
}

type couponRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCouponRepository(db database.PgxIface, log *zap.Logger) CouponRepository {
	return &couponRepository{
		db:  db,
		log: log.With(zap.String("repository", "coupon")),
	}
}

const couponColumns = `
	id, code, discount_percentage::text, discount_amount::text, max_usage, usage_count,
	expiry_date, active, created_at, updated_at`

func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, discount_percentage, discount_amount, max_usage,
		                     usage_count, expiry_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		decimalPtrArg(coupon.DiscountPercentage),
		decimalPtrArg(coupon.DiscountAmount),
		coupon.MaxUsage,
		coupon.UsageCount,
		coupon.ExpiryDate,
		coupon.Active,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrCouponCodeTaken
	}
	if err != nil {
		r.log.Error("Failed to create coupon",
			zap.Error(err),
			zap.String("code", coupon.Code),
		)
		return fmt.Errorf("create coupon %s: %w", coupon.Code, classify(err))
	}

	return nil
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	coupon, err := scanCoupon(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coupon",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find coupon %s: %w", code, classify(err))
	}

	return coupon, nil
}

func (r *couponRepository) FindAll(ctx context.Context) ([]*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list coupons", zap.Error(err))
		return nil, fmt.Errorf("list coupons: %w", classify(err))
	}
	defer rows.Close()

	coupons := []*entity.Coupon{}
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, coupon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coupons: %w", classify(err))
	}

	return coupons, nil
}

func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete coupon",
			zap.Error(err),
			zap.String("coupon_id", id.String()),
		)
		return fmt.Errorf("delete coupon %s: %w", id, classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete coupon %s: %w", id, ErrNoRows)
	}

	return nil
}

func (r *couponRepository) Redeem(ctx context.Context, code string, bookingID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin redeem tx: %w", classify(err))
	}
	defer tx.Rollback(ctx)

	inserted, err := tx.Exec(ctx, `
		INSERT INTO coupon_redemptions (booking_id, coupon_code, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (booking_id) DO NOTHING`,
		bookingID, code,
	)
	if err != nil {
		return false, fmt.Errorf("record redemption of %s: %w", code, classify(err))
	}
	if inserted.RowsAffected() == 0 {
		return false, nil
	}

	updated, err := tx.Exec(ctx, `
		UPDATE coupons
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE code = $1 AND usage_count < max_usage`,
		code,
	)
	if err != nil {
		return false, fmt.Errorf("increment usage of %s: %w", code, classify(err))
	}
	if updated.RowsAffected() == 0 {
		return false, ledger.ErrCouponExhausted
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit redemption of %s: %w", code, classify(err))
	}

	r.log.Info("Coupon redeemed",
		zap.String("code", code),
		zap.String("booking_id", bookingID.String()),
	)

	return true, nil
}

func scanCoupon(row pgx.Row) (*entity.Coupon, error) {
	var (
		c           entity.Coupon
		pct, amount *string
	)
	err := row.Scan(
		&c.ID,
		&c.Code,
		&pct,
		&amount,
		&c.MaxUsage,
		&c.UsageCount,
		&c.ExpiryDate,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if c.DiscountPercentage, err = parseDecimalPtr(pct); err != nil {
		return nil, fmt.Errorf("parse discount percentage: %w", err)
	}
	if c.DiscountAmount, err = parseDecimalPtr(amount); err != nil {
		return nil, fmt.Errorf("parse discount amount: %w", err)
	}

	return &c, nil
}

func decimalPtrArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

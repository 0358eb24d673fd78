package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-seat-ledger/internal/data/entity"
	"cinema-seat-ledger/internal/data/repository"
	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/dto/response"
	"cinema-seat-ledger/internal/ledger"
	"cinema-seat-ledger/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CouponService interface {
	ledger.CouponResolver

	Validate(ctx context.Context, code string) (*response.ValidateCouponResponse, error)
	// ApplyUsage consumes one use of code for bookingID. Repeating it for the
	// same booking has no further effect.
	ApplyUsage(ctx context.Context, code string, bookingID uuid.UUID) error
	GetCoupons(ctx context.Context) ([]response.CouponResponse, error)
	CreateCoupon(ctx context.Context, req *request.CreateCouponRequest) (*response.CouponResponse, error)
	DeleteCoupon(ctx context.Context, couponID string) error
}

type couponService struct {
	repo repository.CouponRepository
	now  func() time.Time
	log  *zap.Logger
}

func NewCouponService(repo repository.CouponRepository, log *zap.Logger) CouponService {
	return newCouponService(repo, log, time.Now)
}

func newCouponService(repo repository.CouponRepository, log *zap.Logger, now func() time.Time) *couponService {
	return &couponService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "coupon")),
	}
}

func (s *couponService) Resolve(ctx context.Context, code string) (*entity.Coupon, error) {
	code = ledger.NormalizeCouponCode(code)
	if code == "" {
		return nil, ledger.ErrCouponInvalid
	}

	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		s.log.Error("Failed to find coupon", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find coupon %s: %w", code, err)
	}

	if err := ledger.CheckCoupon(coupon, s.now()); err != nil {
		s.log.Info("Coupon rejected", zap.String("code", code), zap.String("reason", err.Error()))
		return nil, err
	}

	return coupon, nil
}

func (s *couponService) Validate(ctx context.Context, code string) (*response.ValidateCouponResponse, error) {
	coupon, err := s.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	return &response.ValidateCouponResponse{
		Valid:  true,
		Coupon: response.CouponToResponse(coupon),
	}, nil
}

func (s *couponService) ApplyUsage(ctx context.Context, code string, bookingID uuid.UUID) error {
	code = ledger.NormalizeCouponCode(code)

	applied, err := s.repo.Redeem(ctx, code, bookingID)
	if err != nil {
		return fmt.Errorf("redeem coupon %s for booking %s: %w", code, bookingID, err)
	}

	if !applied {
		s.log.Debug("Coupon usage already recorded",
			zap.String("code", code),
			zap.String("booking_id", bookingID.String()),
		)
	}

	return nil
}

func (s *couponService) GetCoupons(ctx context.Context) ([]response.CouponResponse, error) {
	coupons, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get coupons", zap.Error(err))
		return nil, fmt.Errorf("get coupons: %w", err)
	}

	out := make([]response.CouponResponse, len(coupons))
	for i, c := range coupons {
		out[i] = response.CouponToResponse(c)
	}
	return out, nil
}

func (s *couponService) CreateCoupon(ctx context.Context, req *request.CreateCouponRequest) (*response.CouponResponse, error) {
	code := ledger.NormalizeCouponCode(req.Code)

	switch {
	case req.DiscountPercentage != nil:
		pct := *req.DiscountPercentage
		if !pct.IsPositive() || pct.GreaterThan(decimal.NewFromInt(100)) {
			return nil, &utils.ValidationError{Field: "discount_percentage", Message: "discount percentage must be between 0 and 100"}
		}
	case req.DiscountAmount != nil:
		if !req.DiscountAmount.IsPositive() {
			return nil, &utils.ValidationError{Field: "discount_amount", Message: "discount amount must be positive"}
		}
	default:
		return nil, &utils.ValidationError{Field: "discount_percentage", Message: "a discount percentage or amount is required"}
	}

	now := s.now()
	coupon := &entity.Coupon{
		BaseNoDelete:       entity.NewBaseNoDelete(now),
		Code:               code,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		MaxUsage:           req.MaxUsage,
		ExpiryDate:         req.ExpiryDate,
		Active:             true,
	}
	// percentage wins when both are sent
	if coupon.DiscountPercentage != nil {
		coupon.DiscountAmount = nil
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrCouponCodeTaken) {
			return nil, &DuplicateError{Field: "code", Message: fmt.Sprintf("coupon code %s already exists", code)}
		}
		s.log.Error("Failed to create coupon", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("create coupon: %w", err)
	}

	s.log.Info("Coupon created", zap.String("coupon_id", coupon.ID.String()), zap.String("code", code))

	resp := response.CouponToResponse(coupon)
	return &resp, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, couponID string) error {
	id, err := parseID("coupon_id", couponID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return notFound("coupon")
		}
		s.log.Error("Failed to delete coupon", zap.Error(err), zap.String("coupon_id", couponID))
		return fmt.Errorf("delete coupon: %w", err)
	}

	s.log.Info("Coupon deleted", zap.String("coupon_id", couponID))
	return nil
}

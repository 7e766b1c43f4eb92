package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
)

// CouponService implements CouponProvider over the coupon tables.
type CouponService struct {
	db *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// Validate checks the code against every redemption rule and returns
// the discount it grants on the supplied base amount. Each failure has
// its own error so the POS can show staff the exact reason.
func (s *CouponService) Validate(tenantID uint, code string, subtotal float64, customerID *uint) (float64, uint, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var coupon models.Coupon
	err := s.db.Where("tenant_id = ? AND code = ?", tenantID, code).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrCouponNotFound
		}
		return 0, 0, err
	}

	if !coupon.IsActive {
		return 0, 0, ErrCouponInactive
	}

	now := time.Now()
	if coupon.StartDate != nil && now.Before(*coupon.StartDate) {
		return 0, 0, ErrCouponNotYetValid
	}
	if coupon.EndDate != nil && now.After(*coupon.EndDate) {
		return 0, 0, ErrCouponExpired
	}

	if subtotal < coupon.MinOrderAmount {
		return 0, 0, &CouponBelowMinimumError{Minimum: coupon.MinOrderAmount}
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return 0, 0, ErrCouponLimitReached
	}

	if coupon.OncePerCustomer && customerID != nil {
		var used int64
		if err := s.db.Model(&models.CouponUsage{}).
			Where("coupon_id = ? AND customer_id = ?", coupon.ID, *customerID).
			Count(&used).Error; err != nil {
			return 0, 0, err
		}
		if used > 0 {
			return 0, 0, ErrCouponAlreadyUsed
		}
	}

	var discount float64
	switch coupon.Type {
	case models.CouponPercentage:
		discount = subtotal * coupon.Value / 100
		if coupon.MaxDiscountAmount > 0 && discount > coupon.MaxDiscountAmount {
			discount = coupon.MaxDiscountAmount
		}
	default: // fixed
		if subtotal < coupon.Value {
			return 0, 0, ErrCouponAmountTooLow
		}
		discount = coupon.Value
	}

	return round2(discount), coupon.ID, nil
}

// RecordUsage writes the redemption row and bumps the usage counter.
// Callers treat a failure here as non-fatal; a priced order never rolls
// back because bookkeeping failed.
func (s *CouponService) RecordUsage(tenantID, couponID, orderID uint, customerID *uint) error {
	usage := models.CouponUsage{
		TenantID:   tenantID,
		CouponID:   couponID,
		OrderID:    orderID,
		CustomerID: customerID,
	}
	if err := s.db.Create(&usage).Error; err != nil {
		return err
	}
	return s.db.Model(&models.Coupon{}).
		Where("id = ? AND tenant_id = ?", couponID, tenantID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}
